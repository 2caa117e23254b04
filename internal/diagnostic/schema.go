// Package diagnostic validates prepared target time-series data against the
// Amazon Forecast dataset domains before it is imported. Catching schema and
// data problems locally is much cheaper than waiting for a failed import job.
package diagnostic

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// AttributeType is a Forecast schema attribute type.
type AttributeType string

const (
	TypeString    AttributeType = "string"
	TypeInteger   AttributeType = "integer"
	TypeFloat     AttributeType = "float"
	TypeTimestamp AttributeType = "timestamp"
)

// ValidTypes lists the attribute types the Forecast API accepts.
var ValidTypes = []AttributeType{TypeString, TypeInteger, TypeFloat, TypeTimestamp}

// attributeNameRegex matches valid Forecast schema attribute names.
var attributeNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Attribute is a single schema attribute, mirroring the Forecast API's
// SchemaAttribute shape.
type Attribute struct {
	Name string
	Type AttributeType
}

// NewAttribute builds an attribute, rejecting invalid names or types.
func NewAttribute(name string, attrType AttributeType) (Attribute, error) {
	if !IsValidName(name) {
		return Attribute{}, fmt.Errorf("%q is not a valid schema attribute name", name)
	}
	if !IsValidType(attrType) {
		return Attribute{}, fmt.Errorf("%q is not a valid schema attribute type", attrType)
	}
	return Attribute{Name: name, Type: attrType}, nil
}

// Schema describes the columns of a target time-series dataset, in order.
type Schema struct {
	Attributes []Attribute
}

// Names returns the attribute names in column order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Attributes))
	for i, a := range s.Attributes {
		names[i] = a.Name
	}
	return names
}

// Find returns the attribute with the given name, if present.
func (s *Schema) Find(name string) (Attribute, bool) {
	for _, a := range s.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// IsValidName reports whether name is a valid schema attribute name.
func IsValidName(name string) bool {
	return attributeNameRegex.MatchString(name)
}

// IsValidType reports whether attrType is a valid schema attribute type.
func IsValidType(attrType AttributeType) bool {
	switch attrType {
	case TypeString, TypeInteger, TypeFloat, TypeTimestamp:
		return true
	default:
		return false
	}
}

// timestampLayouts are the timestamp formats Forecast accepts, most specific
// first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseTimestamp parses a cell value as a timestamp, trying each accepted
// layout.
func ParseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// InferType infers the attribute type of a single cell value. Integers win
// over floats, timestamps over strings.
func InferType(value string) AttributeType {
	if value == "" {
		return TypeString
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return TypeInteger
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return TypeFloat
	}
	if _, ok := ParseTimestamp(value); ok {
		return TypeTimestamp
	}
	return TypeString
}

// isNumericOrTimestamp reports whether a cell looks like data rather than a
// column heading.
func isNumericOrTimestamp(value string) bool {
	t := InferType(value)
	return t == TypeInteger || t == TypeFloat || t == TypeTimestamp
}

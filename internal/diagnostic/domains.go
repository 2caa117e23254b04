package diagnostic

import (
	"fmt"
	"sort"
)

// Domain is a Forecast dataset domain: the required and optional target
// time-series fields, and which field carries the quantity to predict.
type Domain struct {
	Name        string
	TargetField string
	Required    []Attribute
	Optional    []Attribute
}

// Domains are the Forecast dataset domains, keyed by name.
var Domains = map[string]Domain{
	"RETAIL": {
		Name:        "RETAIL",
		TargetField: "demand",
		Required: []Attribute{
			{Name: "item_id", Type: TypeString},
			{Name: "timestamp", Type: TypeTimestamp},
			{Name: "demand", Type: TypeFloat},
		},
		Optional: []Attribute{
			{Name: "location", Type: TypeString},
		},
	},
	"CUSTOM": {
		Name:        "CUSTOM",
		TargetField: "target_value",
		Required: []Attribute{
			{Name: "item_id", Type: TypeString},
			{Name: "timestamp", Type: TypeTimestamp},
			{Name: "target_value", Type: TypeFloat},
		},
	},
	"INVENTORY_PLANNING": {
		Name:        "INVENTORY_PLANNING",
		TargetField: "demand",
		Required: []Attribute{
			{Name: "item_id", Type: TypeString},
			{Name: "timestamp", Type: TypeTimestamp},
			{Name: "demand", Type: TypeFloat},
		},
		Optional: []Attribute{
			{Name: "location", Type: TypeString},
		},
	},
	"EC2_CAPACITY": {
		Name:        "EC2_CAPACITY",
		TargetField: "number_of_instances",
		Required: []Attribute{
			{Name: "instance_type", Type: TypeString},
			{Name: "timestamp", Type: TypeTimestamp},
			{Name: "number_of_instances", Type: TypeInteger},
		},
		Optional: []Attribute{
			{Name: "location", Type: TypeString},
		},
	},
	"WORK_FORCE": {
		Name:        "WORK_FORCE",
		TargetField: "workforce_demand",
		Required: []Attribute{
			{Name: "workforce_type", Type: TypeString},
			{Name: "timestamp", Type: TypeTimestamp},
			{Name: "workforce_demand", Type: TypeFloat},
		},
		Optional: []Attribute{
			{Name: "location", Type: TypeString},
		},
	},
	"WEB_TRAFFIC": {
		Name:        "WEB_TRAFFIC",
		TargetField: "value",
		Required: []Attribute{
			{Name: "item_id", Type: TypeString},
			{Name: "timestamp", Type: TypeTimestamp},
			{Name: "value", Type: TypeFloat},
		},
	},
	"METRICS": {
		Name:        "METRICS",
		TargetField: "metric_value",
		Required: []Attribute{
			{Name: "metric_name", Type: TypeString},
			{Name: "timestamp", Type: TypeTimestamp},
			{Name: "metric_value", Type: TypeFloat},
		},
	},
}

// DomainNames returns the supported domain names, sorted.
func DomainNames() []string {
	names := make([]string, 0, len(Domains))
	for name := range Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classification describes how a schema's fields map onto a domain.
type Classification struct {
	// Required are the field names the domain mandates.
	Required []string
	// Optional are the domain's optional fields the schema uses with
	// matching types.
	Optional []string
	// Custom are schema fields the domain does not specify.
	Custom []string
	// Warnings note optional fields used with a different type than the
	// domain specifies.
	Warnings []string
}

// ValidateSchema checks that a target time-series schema conforms to a
// domain: every required field present with the required type.
func ValidateSchema(schema *Schema, domainName string) (*Classification, error) {
	domain, ok := Domains[domainName]
	if !ok {
		return nil, fmt.Errorf("domain %q is not in supported list %v", domainName, DomainNames())
	}

	cls := &Classification{}

	for _, required := range domain.Required {
		found, ok := schema.Find(required.Name)
		if !ok {
			return nil, fmt.Errorf("schema is missing required field %q for domain %q", required.Name, domainName)
		}
		if found.Type != required.Type {
			return nil, fmt.Errorf("schema has type %q for required field %q, which domain %q specifies as %q",
				found.Type, required.Name, domainName, required.Type)
		}
		cls.Required = append(cls.Required, required.Name)
	}

	optionalUsed := make(map[string]bool)
	for _, optional := range domain.Optional {
		found, ok := schema.Find(optional.Name)
		if !ok {
			continue
		}
		if found.Type == optional.Type {
			cls.Optional = append(cls.Optional, optional.Name)
			optionalUsed[optional.Name] = true
		} else {
			cls.Warnings = append(cls.Warnings, fmt.Sprintf(
				"field %q, which domain %q specifies as optional with type %q, is used with type %q",
				optional.Name, domainName, optional.Type, found.Type))
		}
	}

	requiredSet := make(map[string]bool, len(cls.Required))
	for _, name := range cls.Required {
		requiredSet[name] = true
	}
	for _, name := range schema.Names() {
		if !requiredSet[name] && !optionalUsed[name] {
			cls.Custom = append(cls.Custom, name)
		}
	}

	return cls, nil
}

// InferDomain returns the first domain (in sorted name order) whose required
// fields are all present in the schema with matching types.
func InferDomain(schema *Schema) (string, error) {
	for _, name := range DomainNames() {
		if _, err := ValidateSchema(schema, name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no supported domain matches schema fields %v", schema.Names())
}

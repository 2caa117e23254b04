// Package template synthesizes the CloudFormation description that provisions
// the Forecast POC notebook environment: one SageMaker execution role and one
// notebook instance pre-loaded with the onboarding repository.
//
// The template is purely declarative. Creation ordering (role before notebook),
// rollback on partial failure, and idempotent re-application are all handled by
// the CloudFormation engine, not by this package.
package template

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FormatVersion is the CloudFormation template format version marker.
const FormatVersion = "2010-09-09"

// Template models a CloudFormation stack template: a format version marker,
// a parameters section, a resources section, and an outputs section.
type Template struct {
	AWSTemplateFormatVersion string               `yaml:"AWSTemplateFormatVersion"`
	Description              string               `yaml:"Description,omitempty"`
	Parameters               map[string]Parameter `yaml:"Parameters,omitempty"`
	Resources                map[string]Resource  `yaml:"Resources"`
	Outputs                  map[string]Output    `yaml:"Outputs,omitempty"`
}

// Parameter declares a template input with its type, default, and constraints.
// Constraints are enforced by the CloudFormation engine before any resource is
// created; internal/config mirrors them for local pre-flight validation.
type Parameter struct {
	Type                  string   `yaml:"Type"`
	Default               any      `yaml:"Default,omitempty"`
	AllowedValues         []string `yaml:"AllowedValues,omitempty,flow"`
	MinValue              *int     `yaml:"MinValue,omitempty"`
	MaxValue              *int     `yaml:"MaxValue,omitempty"`
	Description           string   `yaml:"Description,omitempty"`
	ConstraintDescription string   `yaml:"ConstraintDescription,omitempty"`
}

// Resource declares a single cloud resource by type tag and properties.
// Properties may reference parameters or other resources via intrinsics.
type Resource struct {
	Type       string         `yaml:"Type"`
	Properties map[string]any `yaml:"Properties"`
}

// Output declares a stack output value.
type Output struct {
	Description string `yaml:"Description,omitempty"`
	Value       any    `yaml:"Value"`
}

// Ref returns a CloudFormation Ref intrinsic referencing a parameter or
// resource by logical name.
func Ref(name string) map[string]any {
	return map[string]any{"Ref": name}
}

// GetAtt returns a CloudFormation Fn::GetAtt intrinsic referencing an
// attribute of another declared resource.
func GetAtt(logicalID, attribute string) map[string]any {
	return map[string]any{"Fn::GetAtt": []string{logicalID, attribute}}
}

// Render serializes the template to CloudFormation YAML, suitable for
// submission as a stack template body.
func (t *Template) Render() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return data, nil
}

// intPtr is a small helper for optional numeric constraint fields.
func intPtr(v int) *int {
	return &v
}

// Package config defines the forecastpoc configuration schema, loading, and
// validation. The config mirrors the stack template's declared parameter
// constraints so invalid submissions are rejected locally, before any
// CloudFormation call is made.
package config

import (
	"github.com/apac-ml-tfc/forecast-poc/internal/template"
)

// DefaultConfigFilename is the default configuration filename.
const DefaultConfigFilename = "forecastpoc.yaml"

// DefaultStackName is the CloudFormation stack name used when none is set.
const DefaultStackName = "ForecastPOC"

// DefaultRegion is the AWS region used when none is set. Amazon Forecast is
// not available in every region; us-east-1 always carries it.
const DefaultRegion = "us-east-1"

// Config is the forecastpoc configuration.
type Config struct {
	// StackName is the CloudFormation stack name, used for resource naming.
	StackName string `yaml:"stack_name"`

	// Region is the AWS region the stack is created in.
	Region string `yaml:"region"`

	// Profile is an optional shared-config profile for AWS credentials.
	Profile string `yaml:"profile,omitempty"`

	// Credentials holds optional explicit AWS credentials. When empty the
	// default credential chain applies.
	Credentials CredentialsConfig `yaml:"credentials,omitempty"`

	// Notebook configures the provisioned notebook instance.
	Notebook NotebookConfig `yaml:"notebook"`

	// Studio configures the optional Studio-domain deployment variant.
	Studio StudioConfig `yaml:"studio,omitempty"`
}

// CredentialsConfig holds explicit static AWS credentials.
type CredentialsConfig struct {
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
}

// IsSet reports whether explicit credentials were configured.
func (c CredentialsConfig) IsSet() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// NotebookConfig maps onto the stack template's parameters.
type NotebookConfig struct {
	// Name is the notebook instance name.
	Name string `yaml:"name"`

	// InstanceType is the notebook size class. Must be in the template's
	// allow-list.
	InstanceType string `yaml:"instance_type"`

	// VolumeSizeGB is the attached EBS volume size in gigabytes.
	VolumeSizeGB int `yaml:"volume_size_gb"`

	// RepoURL is the Git repository cloned into the notebook at creation.
	RepoURL string `yaml:"repo_url"`
}

// StudioConfig maps onto the Studio-variant template's parameters. When
// Enabled the stack provisions a SageMaker Studio domain instead of a
// notebook instance. VpcID and SubnetIDs left empty are discovered from the
// account's default VPC at deploy time.
type StudioConfig struct {
	// Enabled selects the Studio-domain variant.
	Enabled bool `yaml:"enabled,omitempty"`

	// DomainName is the Studio domain name.
	DomainName string `yaml:"domain_name,omitempty"`

	// VpcID pins the domain to a specific VPC.
	VpcID string `yaml:"vpc_id,omitempty"`

	// SubnetIDs pins the domain to specific subnets within VpcID.
	SubnetIDs []string `yaml:"subnet_ids,omitempty"`
}

// Default returns a configuration carrying the template's parameter defaults.
func Default() *Config {
	return &Config{
		StackName: DefaultStackName,
		Region:    DefaultRegion,
		Notebook: NotebookConfig{
			Name:         template.DefaultNotebookName,
			InstanceType: template.DefaultInstanceType,
			VolumeSizeGB: template.DefaultVolumeSizeGB,
			RepoURL:      template.DefaultRepoURL,
		},
	}
}

// applyDefaults fills unset fields with the template defaults.
func (c *Config) applyDefaults() {
	if c.StackName == "" {
		c.StackName = DefaultStackName
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Notebook.Name == "" {
		c.Notebook.Name = template.DefaultNotebookName
	}
	if c.Notebook.InstanceType == "" {
		c.Notebook.InstanceType = template.DefaultInstanceType
	}
	if c.Notebook.VolumeSizeGB == 0 {
		c.Notebook.VolumeSizeGB = template.DefaultVolumeSizeGB
	}
	if c.Notebook.RepoURL == "" {
		c.Notebook.RepoURL = template.DefaultRepoURL
	}
	if c.Studio.Enabled && c.Studio.DomainName == "" {
		c.Studio.DomainName = template.DefaultDomainName
	}
}

// Parameters returns the stack parameter overrides for this configuration,
// keyed by template parameter name.
func (c *Config) Parameters() map[string]string {
	return map[string]string{
		template.ParamNotebookName: c.Notebook.Name,
		template.ParamRepoURL:      c.Notebook.RepoURL,
		template.ParamInstanceType: c.Notebook.InstanceType,
		template.ParamVolumeSize:   itoa(c.Notebook.VolumeSizeGB),
	}
}

// StudioParameters returns the Studio-variant stack parameters. The VPC and
// subnets come from the caller because discovery happens at deploy time, after
// validation, outside this package.
func (c *Config) StudioParameters(vpcID string, subnetIDs []string) map[string]string {
	return map[string]string{
		template.ParamDomainName: c.Studio.DomainName,
		template.ParamVpcID:      vpcID,
		template.ParamSubnetIDs:  join(subnetIDs),
	}
}

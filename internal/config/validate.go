package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/apac-ml-tfc/forecast-poc/internal/template"
)

// stackNameRegex matches valid CloudFormation stack names: must start with a
// letter, then letters, digits, and hyphens.
var stackNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// notebookNameRegex matches valid SageMaker notebook instance names.
var notebookNameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

const (
	maxStackNameLength    = 128
	maxNotebookNameLength = 63
)

// allowedInstanceTypes is the template allow-list as a set, for lookup.
var allowedInstanceTypes = func() map[string]bool {
	set := make(map[string]bool, len(template.AllowedInstanceTypes))
	for _, it := range template.AllowedInstanceTypes {
		set[it] = true
	}
	return set
}()

// Validate checks the configuration against the same constraints the stack
// template declares and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	if c.StackName == "" {
		return fmt.Errorf("stack_name is required")
	}
	if !stackNameRegex.MatchString(c.StackName) || len(c.StackName) > maxStackNameLength {
		return fmt.Errorf("invalid stack_name %q: must start with a letter and contain only letters, digits, and hyphens (max %d chars)", c.StackName, maxStackNameLength)
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}

	if err := c.Notebook.validate(); err != nil {
		return fmt.Errorf("notebook validation failed: %w", err)
	}

	if c.Studio.Enabled {
		if err := c.Studio.validate(); err != nil {
			return fmt.Errorf("studio validation failed: %w", err)
		}
	}

	return nil
}

// validate checks the Studio parameters. Network fields are optional; when
// left empty they are discovered at deploy time.
func (s *StudioConfig) validate() error {
	if s.DomainName == "" {
		return fmt.Errorf("domain_name is required")
	}
	if !notebookNameRegex.MatchString(s.DomainName) || len(s.DomainName) > maxNotebookNameLength {
		return fmt.Errorf("invalid domain_name %q: must be alphanumeric with interior hyphens (max %d chars)", s.DomainName, maxNotebookNameLength)
	}
	if len(s.SubnetIDs) > 0 && s.VpcID == "" {
		return fmt.Errorf("subnet_ids requires vpc_id to be set")
	}
	return nil
}

// validate checks the notebook parameters against the template constraints.
func (n *NotebookConfig) validate() error {
	if n.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !notebookNameRegex.MatchString(n.Name) || len(n.Name) > maxNotebookNameLength {
		return fmt.Errorf("invalid name %q: must be alphanumeric with interior hyphens (max %d chars)", n.Name, maxNotebookNameLength)
	}

	if !allowedInstanceTypes[n.InstanceType] {
		return fmt.Errorf("invalid instance_type %q: must be one of %v", n.InstanceType, template.AllowedInstanceTypes)
	}

	if n.VolumeSizeGB < template.MinVolumeSizeGB || n.VolumeSizeGB > template.MaxVolumeSizeGB {
		return fmt.Errorf("invalid volume_size_gb %d: must be between %d and %d",
			n.VolumeSizeGB, template.MinVolumeSizeGB, template.MaxVolumeSizeGB)
	}

	if n.RepoURL != "" {
		u, err := url.Parse(n.RepoURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid repo_url %q: must be an absolute URL", n.RepoURL)
		}
	}

	return nil
}

// itoa is strconv.Itoa, aliased so config.go stays free of the import.
func itoa(v int) string {
	return strconv.Itoa(v)
}

// join renders a subnet list as the comma-separated form CloudFormation
// expects for List<AWS::EC2::Subnet::Id> parameters.
func join(values []string) string {
	return strings.Join(values, ",")
}

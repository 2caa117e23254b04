package template

// Studio-variant parameter and logical IDs. The Studio template shares the
// execution role with the notebook template but swaps the notebook instance
// for a SageMaker Studio domain, which additionally needs a VPC placement.
const (
	ParamDomainName = "DomainName"
	ParamVpcID      = "VpcId"
	ParamSubnetIDs  = "SubnetIds"

	DomainLogicalID = "StudioDomain"

	OutputDomainID  = "DomainId"
	OutputStudioURL = "StudioUrl"
	OutputEfsID     = "HomeEfsFileSystemId"

	DefaultDomainName = "ForecastPOCStudio"
)

// NewStudio builds the Studio-domain stack template. Unlike the notebook
// instance, a domain has no sensible region-independent network default, so
// the VPC and subnets arrive as required parameters resolved by the caller.
func NewStudio() *Template {
	return &Template{
		AWSTemplateFormatVersion: FormatVersion,
		Description:              "Forecast POC: SageMaker Studio domain and execution role for the guided Amazon Forecast walkthrough.",
		Parameters: map[string]Parameter{
			ParamDomainName: {
				Type:        "String",
				Default:     DefaultDomainName,
				Description: "Name of the SageMaker Studio domain.",
			},
			ParamVpcID: {
				Type:        "AWS::EC2::VPC::Id",
				Description: "VPC the Studio domain attaches to.",
			},
			ParamSubnetIDs: {
				Type:        "List<AWS::EC2::Subnet::Id>",
				Description: "Subnets the Studio domain attaches to.",
			},
		},
		Resources: map[string]Resource{
			RoleLogicalID:   executionRole(),
			DomainLogicalID: studioDomain(),
		},
		Outputs: map[string]Output{
			OutputRoleArn: {
				Description: "ARN of the Studio execution role.",
				Value:       GetAtt(RoleLogicalID, "Arn"),
			},
			OutputDomainID: {
				Description: "ID of the provisioned Studio domain.",
				Value:       Ref(DomainLogicalID),
			},
			OutputStudioURL: {
				Description: "URL of the Studio domain.",
				Value:       GetAtt(DomainLogicalID, "Url"),
			},
			OutputEfsID: {
				Description: "EFS file system backing the domain's home directories.",
				Value:       GetAtt(DomainLogicalID, "HomeEfsFileSystemId"),
			},
		},
	}
}

// studioDomain declares the Studio domain in IAM auth mode. Every user
// profile created under the domain inherits the shared execution role.
func studioDomain() Resource {
	return Resource{
		Type: "AWS::SageMaker::Domain",
		Properties: map[string]any{
			"DomainName": Ref(ParamDomainName),
			"AuthMode":   "IAM",
			"VpcId":      Ref(ParamVpcID),
			"SubnetIds":  Ref(ParamSubnetIDs),
			"DefaultUserSettings": map[string]any{
				"ExecutionRole": GetAtt(RoleLogicalID, "Arn"),
			},
		},
	}
}

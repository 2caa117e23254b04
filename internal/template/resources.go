package template

// Parameter and resource logical IDs. Referenced by the provisioner when it
// maps stack outputs back into state.
const (
	ParamNotebookName = "NotebookName"
	ParamRepoURL      = "DefaultRepoUrl"
	ParamInstanceType = "InstanceType"
	ParamVolumeSize   = "VolumeSize"

	RoleLogicalID     = "SageMakerIamRole"
	NotebookLogicalID = "ForecastNotebookInstance"

	OutputRoleArn      = "RoleArn"
	OutputNotebookName = "NotebookInstanceName"
)

// Parameter defaults and constraints. These must match the declared template
// constraints exactly; internal/config validates against the same values.
const (
	DefaultNotebookName = "ForecastPOCNotebook"
	DefaultRepoURL      = "https://github.com/apac-ml-tfc/forecast-poc.git"
	DefaultInstanceType = "ml.t3.medium"
	DefaultVolumeSizeGB = 10
	MinVolumeSizeGB     = 5
	MaxVolumeSizeGB     = 16384
)

// pinnedInstanceType is the instance type the notebook resource actually
// declares. The upstream template carries an InstanceType parameter with a
// default of ml.t3.medium but pins the resource property to ml.t2.medium
// without referencing the parameter. The mismatch is preserved rather than
// fixed because the original intent is ambiguous.
// TODO: decide whether ForecastNotebookInstance should Ref InstanceType and
// retire the pin; needs a check against stacks already deployed from the
// upstream template.
const pinnedInstanceType = "ml.t2.medium"

// AllowedInstanceTypes is the allow-list of notebook instance size classes.
var AllowedInstanceTypes = []string{
	"ml.t2.medium",
	"ml.t3.medium",
	"ml.t3.large",
	"ml.t3.xlarge",
	"ml.m5.xlarge",
	"ml.m5.2xlarge",
	"ml.c5.xlarge",
	"ml.p3.2xlarge",
}

// ManagedPolicyARNs are the permission policies attached to the execution
// role. The notebook calls SageMaker, S3, Forecast, and IAM on the user's
// behalf during the POC walkthrough.
var ManagedPolicyARNs = []string{
	"arn:aws:iam::aws:policy/AmazonSageMakerFullAccess",
	"arn:aws:iam::aws:policy/AmazonS3FullAccess",
	"arn:aws:iam::aws:policy/AmazonForecastFullAccess",
	"arn:aws:iam::aws:policy/IAMFullAccess",
}

// New builds the Forecast POC stack template with its two resources: the
// SageMaker execution role and the notebook instance referencing it.
func New() *Template {
	return &Template{
		AWSTemplateFormatVersion: FormatVersion,
		Description:              "Forecast POC: SageMaker notebook instance and execution role for the guided Amazon Forecast walkthrough.",
		Parameters: map[string]Parameter{
			ParamNotebookName: {
				Type:        "String",
				Default:     DefaultNotebookName,
				Description: "Name of the SageMaker notebook instance.",
			},
			ParamRepoURL: {
				Type:        "String",
				Default:     DefaultRepoURL,
				Description: "Git repository cloned into the notebook at creation time.",
			},
			ParamInstanceType: {
				Type:                  "String",
				Default:               DefaultInstanceType,
				AllowedValues:         AllowedInstanceTypes,
				Description:           "Notebook instance size class.",
				ConstraintDescription: "Must be a valid SageMaker notebook instance type.",
			},
			ParamVolumeSize: {
				Type:                  "Number",
				Default:               DefaultVolumeSizeGB,
				MinValue:              intPtr(MinVolumeSizeGB),
				MaxValue:              intPtr(MaxVolumeSizeGB),
				Description:           "Size in GB of the EBS volume attached to the notebook instance.",
				ConstraintDescription: "Must be an integer between 5 and 16384 (16 TB).",
			},
		},
		Resources: map[string]Resource{
			RoleLogicalID:     executionRole(),
			NotebookLogicalID: notebookInstance(),
		},
		Outputs: map[string]Output{
			OutputRoleArn: {
				Description: "ARN of the notebook execution role.",
				Value:       GetAtt(RoleLogicalID, "Arn"),
			},
			OutputNotebookName: {
				Description: "Name of the provisioned notebook instance.",
				Value:       Ref(NotebookLogicalID),
			},
		},
	}
}

// executionRole declares the IAM role the notebook instance assumes. The
// trust policy permits the SageMaker service principal to assume the role;
// permissions come from the four attached managed policies.
func executionRole() Resource {
	return Resource{
		Type: "AWS::IAM::Role",
		Properties: map[string]any{
			"AssumeRolePolicyDocument": map[string]any{
				"Version": "2012-10-17",
				"Statement": []any{
					map[string]any{
						"Effect": "Allow",
						"Principal": map[string]any{
							"Service": "sagemaker.amazonaws.com",
						},
						"Action": "sts:AssumeRole",
					},
				},
			},
			"Path":              "/",
			"ManagedPolicyArns": ManagedPolicyARNs,
		},
	}
}

// notebookInstance declares the hosted notebook. The role reference is a
// GetAtt on the execution role, which also gives the engine the creation
// order dependency.
func notebookInstance() Resource {
	return Resource{
		Type: "AWS::SageMaker::NotebookInstance",
		Properties: map[string]any{
			"NotebookInstanceName":  Ref(ParamNotebookName),
			"InstanceType":          pinnedInstanceType,
			"RoleArn":               GetAtt(RoleLogicalID, "Arn"),
			"VolumeSizeInGB":        Ref(ParamVolumeSize),
			"DefaultCodeRepository": Ref(ParamRepoURL),
		},
	}
}

// Package ec2 resolves the VPC and subnets a SageMaker Studio domain
// attaches to. Studio requires an explicit network placement; when the
// configuration leaves it out, the account's default VPC and its default
// subnets are discovered and used.
package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Network is a resolved domain placement: one VPC and its subnets.
type Network struct {
	VpcID     string
	SubnetIDs []string
}

// NetworkDiscoverer resolves the network a Studio domain is placed in.
// Implemented by Client; replaced by mocks in tests.
type NetworkDiscoverer interface {
	// DiscoverNetwork resolves the placement. Explicitly passed IDs are kept
	// as-is; empty ones are filled by discovery.
	DiscoverNetwork(ctx context.Context, vpcID string, subnetIDs []string) (*Network, error)
}

// api is the slice of the EC2 SDK client this package uses.
type api interface {
	DescribeVpcs(ctx context.Context, params *awsec2.DescribeVpcsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, params *awsec2.DescribeSubnetsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error)
}

// Client discovers network placement through the EC2 API.
type Client struct {
	ec2 api
}

// NewClient creates an EC2-backed network discoverer.
func NewClient(awsCfg aws.Config) *Client {
	return &Client{ec2: awsec2.NewFromConfig(awsCfg)}
}

// DiscoverNetwork implements NetworkDiscoverer.
func (c *Client) DiscoverNetwork(ctx context.Context, vpcID string, subnetIDs []string) (*Network, error) {
	if vpcID == "" {
		resolved, err := c.resolveVpc(ctx)
		if err != nil {
			return nil, err
		}
		vpcID = resolved
	}

	if len(subnetIDs) == 0 {
		resolved, err := c.resolveSubnets(ctx, vpcID)
		if err != nil {
			return nil, err
		}
		subnetIDs = resolved
	}

	return &Network{VpcID: vpcID, SubnetIDs: subnetIDs}, nil
}

// resolveVpc picks the account's default VPC, falling back to the only VPC
// when no default exists. Ambiguous accounts must configure vpc_id
// explicitly.
func (c *Client) resolveVpc(ctx context.Context) (string, error) {
	out, err := c.ec2.DescribeVpcs(ctx, &awsec2.DescribeVpcsInput{})
	if err != nil {
		return "", fmt.Errorf("failed to list VPCs: %w", err)
	}
	if len(out.Vpcs) == 0 {
		return "", fmt.Errorf("no VPC exists in this region; cannot place a Studio domain")
	}

	var defaults []types.Vpc
	for _, vpc := range out.Vpcs {
		if aws.ToBool(vpc.IsDefault) {
			defaults = append(defaults, vpc)
		}
	}

	switch {
	case len(defaults) == 1:
		return aws.ToString(defaults[0].VpcId), nil
	case len(defaults) > 1:
		return "", fmt.Errorf("found %d default VPCs; set vpc_id explicitly", len(defaults))
	case len(out.Vpcs) == 1:
		return aws.ToString(out.Vpcs[0].VpcId), nil
	default:
		return "", fmt.Errorf("no default VPC among %d VPCs; set vpc_id explicitly", len(out.Vpcs))
	}
}

// resolveSubnets returns the VPC's default-for-AZ subnets, or every subnet
// when the VPC has no defaults.
func (c *Client) resolveSubnets(ctx context.Context, vpcID string) ([]string, error) {
	out, err := c.ec2.DescribeSubnets(ctx, &awsec2.DescribeSubnetsInput{
		Filters: []types.Filter{
			{Name: aws.String("vpc-id"), Values: []string{vpcID}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list subnets in %s: %w", vpcID, err)
	}
	if len(out.Subnets) == 0 {
		return nil, fmt.Errorf("VPC %s has no subnets; cannot place a Studio domain", vpcID)
	}

	var defaults, all []string
	for _, subnet := range out.Subnets {
		id := aws.ToString(subnet.SubnetId)
		all = append(all, id)
		if aws.ToBool(subnet.DefaultForAz) {
			defaults = append(defaults, id)
		}
	}

	if len(defaults) > 0 {
		return defaults, nil
	}
	return all, nil
}

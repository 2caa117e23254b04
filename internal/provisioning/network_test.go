package provisioning

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apac-ml-tfc/forecast-poc/internal/config"
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/ec2"
)

// fakeDiscoverer is a scriptable NetworkDiscoverer.
type fakeDiscoverer struct {
	network *ec2.Network
	err     error

	gotVpcID     string
	gotSubnetIDs []string
}

func (f *fakeDiscoverer) DiscoverNetwork(_ context.Context, vpcID string, subnetIDs []string) (*ec2.Network, error) {
	f.gotVpcID = vpcID
	f.gotSubnetIDs = subnetIDs
	return f.network, f.err
}

func TestNetworkPhase_StoresPlacement(t *testing.T) {
	disc := &fakeDiscoverer{network: &ec2.Network{VpcID: "vpc-123", SubnetIDs: []string{"subnet-a"}}}
	ctx := stackContext(nil)
	ctx.Network = disc

	require.NoError(t, NewNetworkPhase().Provision(ctx))
	require.NotNil(t, ctx.State.Network)
	assert.Equal(t, "vpc-123", ctx.State.Network.VpcID)
}

func TestNetworkPhase_PassesConfiguredPlacementThrough(t *testing.T) {
	disc := &fakeDiscoverer{network: &ec2.Network{VpcID: "vpc-pinned", SubnetIDs: []string{"subnet-pinned"}}}
	ctx := stackContext(nil)
	ctx.Config.Studio = config.StudioConfig{
		Enabled:    true,
		DomainName: "ForecastPOCStudio",
		VpcID:      "vpc-pinned",
		SubnetIDs:  []string{"subnet-pinned"},
	}
	ctx.Network = disc

	require.NoError(t, NewNetworkPhase().Provision(ctx))
	assert.Equal(t, "vpc-pinned", disc.gotVpcID)
	assert.Equal(t, []string{"subnet-pinned"}, disc.gotSubnetIDs)
}

func TestNetworkPhase_DiscoveryFailureSurfaces(t *testing.T) {
	ctx := stackContext(nil)
	ctx.Network = &fakeDiscoverer{err: fmt.Errorf("found 2 default VPCs; set vpc_id explicitly")}

	err := NewNetworkPhase().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network resolution failed")
	assert.Contains(t, err.Error(), "default VPCs")
}

func TestNetworkPhase_RequiresDiscoverer(t *testing.T) {
	ctx := stackContext(nil)

	err := NewNetworkPhase().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no network discoverer")
}

package analyzers

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

type mockEC2 struct {
	mock.Mock
}

func (m *mockEC2) DescribeNatGateways(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.DescribeNatGatewaysOutput), args.Error(1)
}

func (m *mockEC2) DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.DescribeAddressesOutput), args.Error(1)
}

func (m *mockEC2) DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ec2.DescribeVolumesOutput), args.Error(1)
}

func TestNATGatewayScanner(t *testing.T) {
	ctx := context.Background()

	t.Run("flags available and pending gateways only", func(t *testing.T) {
		client := new(mockEC2)
		client.On("DescribeNatGateways", ctx, mock.Anything).Return(&ec2.DescribeNatGatewaysOutput{
			NatGateways: []types.NatGateway{
				{NatGatewayId: aws.String("nat-0abc"), State: types.NatGatewayStateAvailable},
				{NatGatewayId: aws.String("nat-0def"), State: types.NatGatewayStatePending},
				{NatGatewayId: aws.String("nat-0old"), State: types.NatGatewayStateDeleted},
			},
		}, nil)

		sections, err := NewNATGatewayScanner(client).Scan(ctx)

		assert.NoError(t, err)
		assert.Len(t, sections, 1)
		assert.Equal(t, []string{"nat-0abc", "nat-0def"}, sections[0].Items)
		assert.Equal(t, domain.CategoryNATGateway, sections[0].Category)
	})

	t.Run("query failure surfaces as error", func(t *testing.T) {
		client := new(mockEC2)
		client.On("DescribeNatGateways", ctx, mock.Anything).Return(nil, errors.New("AccessDenied"))

		sections, err := NewNATGatewayScanner(client).Scan(ctx)

		assert.Error(t, err)
		assert.Nil(t, sections)
	})
}

func TestElasticIPScanner(t *testing.T) {
	ctx := context.Background()

	t.Run("flags only unassociated addresses", func(t *testing.T) {
		client := new(mockEC2)
		client.On("DescribeAddresses", ctx, mock.Anything).Return(&ec2.DescribeAddressesOutput{
			Addresses: []types.Address{
				{PublicIp: aws.String("3.3.3.3"), AssociationId: aws.String("eipassoc-1")},
				{PublicIp: aws.String("4.4.4.4")},
				{AllocationId: aws.String("eipalloc-9")},
			},
		}, nil)

		sections, err := NewElasticIPScanner(client).Scan(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []string{"4.4.4.4", "eipalloc-9"}, sections[0].Items)
	})

	t.Run("no addresses means empty items, not error", func(t *testing.T) {
		client := new(mockEC2)
		client.On("DescribeAddresses", ctx, mock.Anything).Return(&ec2.DescribeAddressesOutput{}, nil)

		sections, err := NewElasticIPScanner(client).Scan(ctx)

		assert.NoError(t, err)
		assert.Empty(t, sections[0].Items)
		assert.NoError(t, sections[0].Err)
	})
}

func TestVolumeScanner(t *testing.T) {
	ctx := context.Background()

	t.Run("oversize sub-list uses strict greater-than", func(t *testing.T) {
		client := new(mockEC2)
		client.On("DescribeVolumes", ctx, mock.MatchedBy(func(in *ec2.DescribeVolumesInput) bool {
			return len(in.Filters) == 1 && aws.ToString(in.Filters[0].Name) == "status"
		})).Return(&ec2.DescribeVolumesOutput{
			Volumes: []types.Volume{
				{VolumeId: aws.String("vol-small"), Size: aws.Int32(8)},
				{VolumeId: aws.String("vol-exact"), Size: aws.Int32(30)},
				{VolumeId: aws.String("vol-big"), Size: aws.Int32(100)},
			},
		}, nil)

		sections, err := NewVolumeScanner(client, 30).Scan(ctx)

		assert.NoError(t, err)
		assert.Len(t, sections, 2)
		assert.Equal(t, []string{"vol-small 8GiB", "vol-exact 30GiB", "vol-big 100GiB"}, sections[0].Items)
		assert.Equal(t, "Unattached EBS > 30GiB (likely billable)", sections[1].Title)
		assert.Equal(t, []string{"vol-big 100GiB"}, sections[1].Items)
	})

	t.Run("no oversize volumes means no sub-list", func(t *testing.T) {
		client := new(mockEC2)
		client.On("DescribeVolumes", ctx, mock.Anything).Return(&ec2.DescribeVolumesOutput{
			Volumes: []types.Volume{
				{VolumeId: aws.String("vol-a"), Size: aws.Int32(10)},
			},
		}, nil)

		sections, err := NewVolumeScanner(client, 30).Scan(ctx)

		assert.NoError(t, err)
		assert.Len(t, sections, 1)
	})
}

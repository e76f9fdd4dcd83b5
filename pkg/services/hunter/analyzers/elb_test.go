package analyzers

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockELBv2 struct {
	mock.Mock
}

func (m *mockELBv2) DescribeLoadBalancers(ctx context.Context, params *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elbv2.DescribeLoadBalancersOutput), args.Error(1)
}

type mockELBClassic struct {
	mock.Mock
}

func (m *mockELBClassic) DescribeLoadBalancers(ctx context.Context, params *elb.DescribeLoadBalancersInput, optFns ...func(*elb.Options)) (*elb.DescribeLoadBalancersOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elb.DescribeLoadBalancersOutput), args.Error(1)
}

func TestLoadBalancerScanner(t *testing.T) {
	ctx := context.Background()

	t.Run("merges both API generations", func(t *testing.T) {
		v2 := new(mockELBv2)
		v2.On("DescribeLoadBalancers", ctx, mock.Anything).Return(&elbv2.DescribeLoadBalancersOutput{
			LoadBalancers: []elbv2types.LoadBalancer{
				{LoadBalancerArn: aws.String("arn:lb/app-1"), Type: elbv2types.LoadBalancerTypeEnumApplication},
			},
		}, nil)
		classic := new(mockELBClassic)
		classic.On("DescribeLoadBalancers", ctx, mock.Anything).Return(&elb.DescribeLoadBalancersOutput{
			LoadBalancerDescriptions: []elbtypes.LoadBalancerDescription{
				{LoadBalancerName: aws.String("legacy-lb")},
			},
		}, nil)

		sections, err := NewLoadBalancerScanner(v2, classic).Scan(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []string{"arn:lb/app-1 (application)", "legacy-lb"}, sections[0].Items)
	})

	t.Run("one generation failing still returns the other", func(t *testing.T) {
		v2 := new(mockELBv2)
		v2.On("DescribeLoadBalancers", ctx, mock.Anything).Return(nil, errors.New("throttled"))
		classic := new(mockELBClassic)
		classic.On("DescribeLoadBalancers", ctx, mock.Anything).Return(&elb.DescribeLoadBalancersOutput{
			LoadBalancerDescriptions: []elbtypes.LoadBalancerDescription{
				{LoadBalancerName: aws.String("legacy-lb")},
			},
		}, nil)

		sections, err := NewLoadBalancerScanner(v2, classic).Scan(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []string{"legacy-lb"}, sections[0].Items)
	})

	t.Run("both failing marks the category", func(t *testing.T) {
		v2 := new(mockELBv2)
		v2.On("DescribeLoadBalancers", ctx, mock.Anything).Return(nil, errors.New("throttled"))
		classic := new(mockELBClassic)
		classic.On("DescribeLoadBalancers", ctx, mock.Anything).Return(nil, errors.New("denied"))

		sections, err := NewLoadBalancerScanner(v2, classic).Scan(ctx)

		assert.Error(t, err)
		assert.Nil(t, sections)
	})
}

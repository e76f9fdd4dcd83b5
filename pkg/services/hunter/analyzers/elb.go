package analyzers

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

// LoadBalancerScanner flags every load balancer, modern or classic; any LB
// bills for as long as it exists. The two API generations are queried
// separately; one failing still lets the other's results through, and only
// both failing marks the category as errored.
type LoadBalancerScanner struct {
	v2      ELBv2API
	classic ELBClassicAPI
}

func NewLoadBalancerScanner(v2 ELBv2API, classic ELBClassicAPI) *LoadBalancerScanner {
	return &LoadBalancerScanner{v2: v2, classic: classic}
}

func (s *LoadBalancerScanner) Category() domain.ResourceCategory {
	return domain.CategoryLoadBalancer
}

func (s *LoadBalancerScanner) Title() string {
	return "Load Balancers (billable)"
}

func (s *LoadBalancerScanner) Scan(ctx context.Context) ([]domain.Section, error) {
	var items []string

	v2Resp, v2Err := s.v2.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{})
	if v2Err == nil {
		for _, lb := range v2Resp.LoadBalancers {
			items = append(items, fmt.Sprintf("%s (%s)", aws.ToString(lb.LoadBalancerArn), lb.Type))
		}
	}

	classicResp, classicErr := s.classic.DescribeLoadBalancers(ctx, &elb.DescribeLoadBalancersInput{})
	if classicErr == nil {
		for _, lb := range classicResp.LoadBalancerDescriptions {
			items = append(items, aws.ToString(lb.LoadBalancerName))
		}
	}

	if v2Err != nil && classicErr != nil {
		return nil, fmt.Errorf("failed to describe load balancers: %w", errors.Join(v2Err, classicErr))
	}

	return []domain.Section{{Category: s.Category(), Title: s.Title(), Items: items}}, nil
}

package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

// NATGatewayScanner flags NAT gateways in available or pending state. NAT
// gateways are never free-tier eligible.
type NATGatewayScanner struct {
	client EC2API
}

func NewNATGatewayScanner(client EC2API) *NATGatewayScanner {
	return &NATGatewayScanner{client: client}
}

func (s *NATGatewayScanner) Category() domain.ResourceCategory {
	return domain.CategoryNATGateway
}

func (s *NATGatewayScanner) Title() string {
	return "NAT Gateways (expensive)"
}

func (s *NATGatewayScanner) Scan(ctx context.Context) ([]domain.Section, error) {
	resp, err := s.client.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe NAT gateways: %w", err)
	}

	var items []string
	for _, gw := range resp.NatGateways {
		switch gw.State {
		case types.NatGatewayStateAvailable, types.NatGatewayStatePending:
			items = append(items, aws.ToString(gw.NatGatewayId))
		}
	}

	return []domain.Section{{Category: s.Category(), Title: s.Title(), Items: items}}, nil
}

// ElasticIPScanner flags allocated addresses that are not associated with
// anything; idle addresses bill hourly.
type ElasticIPScanner struct {
	client EC2API
}

func NewElasticIPScanner(client EC2API) *ElasticIPScanner {
	return &ElasticIPScanner{client: client}
}

func (s *ElasticIPScanner) Category() domain.ResourceCategory {
	return domain.CategoryElasticIP
}

func (s *ElasticIPScanner) Title() string {
	return "Unattached Elastic IPs"
}

func (s *ElasticIPScanner) Scan(ctx context.Context) ([]domain.Section, error) {
	resp, err := s.client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe addresses: %w", err)
	}

	var items []string
	for _, addr := range resp.Addresses {
		if addr.AssociationId != nil {
			continue
		}
		id := aws.ToString(addr.PublicIp)
		if id == "" {
			id = aws.ToString(addr.AllocationId)
		}
		items = append(items, id)
	}

	return []domain.Section{{Category: s.Category(), Title: s.Title(), Items: items}}, nil
}

// VolumeScanner flags unattached block volumes, and separately re-flags the
// ones whose size exceeds the free-tier ceiling. The sub-list uses a strict
// greater-than: a volume exactly at the ceiling is still assumed free.
type VolumeScanner struct {
	client     EC2API
	ceilingGiB int32
}

func NewVolumeScanner(client EC2API, ceilingGiB int32) *VolumeScanner {
	return &VolumeScanner{client: client, ceilingGiB: ceilingGiB}
}

func (s *VolumeScanner) Category() domain.ResourceCategory {
	return domain.CategoryBlockVolume
}

func (s *VolumeScanner) Title() string {
	return "Unattached EBS Volumes"
}

func (s *VolumeScanner) Scan(ctx context.Context) ([]domain.Section, error) {
	resp, err := s.client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("status"),
				Values: []string{"available"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe volumes: %w", err)
	}

	var orphans, oversize []string
	for _, vol := range resp.Volumes {
		size := aws.ToInt32(vol.Size)
		desc := fmt.Sprintf("%s %dGiB", aws.ToString(vol.VolumeId), size)
		orphans = append(orphans, desc)
		if size > s.ceilingGiB {
			oversize = append(oversize, desc)
		}
	}

	sections := []domain.Section{
		{Category: s.Category(), Title: s.Title(), Items: orphans},
	}
	if len(oversize) > 0 {
		sections = append(sections, domain.Section{
			Category: s.Category(),
			Title:    fmt.Sprintf("Unattached EBS > %dGiB (likely billable)", s.ceilingGiB),
			Items:    oversize,
		})
	}
	return sections, nil
}

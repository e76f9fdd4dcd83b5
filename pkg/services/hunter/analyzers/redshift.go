package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/redshift"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

// ClusterScanner lists every analytics cluster; like databases, these bill
// unconditionally.
type ClusterScanner struct {
	client RedshiftAPI
}

func NewClusterScanner(client RedshiftAPI) *ClusterScanner {
	return &ClusterScanner{client: client}
}

func (s *ClusterScanner) Category() domain.ResourceCategory {
	return domain.CategoryAnalyticsCluster
}

func (s *ClusterScanner) Title() string {
	return "Redshift Clusters (billable)"
}

func (s *ClusterScanner) Scan(ctx context.Context) ([]domain.Section, error) {
	resp, err := s.client.DescribeClusters(ctx, &redshift.DescribeClustersInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe Redshift clusters: %w", err)
	}

	var items []string
	for _, cluster := range resp.Clusters {
		items = append(items, aws.ToString(cluster.ClusterIdentifier))
	}

	return []domain.Section{{Category: s.Category(), Title: s.Title(), Items: items}}, nil
}

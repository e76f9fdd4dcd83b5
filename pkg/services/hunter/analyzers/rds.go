package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

// DBInstanceScanner lists every relational-database instance. All of them
// are inherently billable, so there is no threshold to apply.
type DBInstanceScanner struct {
	client RDSAPI
}

func NewDBInstanceScanner(client RDSAPI) *DBInstanceScanner {
	return &DBInstanceScanner{client: client}
}

func (s *DBInstanceScanner) Category() domain.ResourceCategory {
	return domain.CategoryRelationalDB
}

func (s *DBInstanceScanner) Title() string {
	return "RDS Instances (billable)"
}

func (s *DBInstanceScanner) Scan(ctx context.Context) ([]domain.Section, error) {
	resp, err := s.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe RDS instances: %w", err)
	}

	var items []string
	for _, db := range resp.DBInstances {
		items = append(items, aws.ToString(db.DBInstanceIdentifier))
	}

	return []domain.Section{{Category: s.Category(), Title: s.Title(), Items: items}}, nil
}

package analyzers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

// LogGroupScanner flags log groups without an explicit retention policy;
// those keep every byte forever and the storage bill grows with them.
type LogGroupScanner struct {
	client LogsAPI
}

func NewLogGroupScanner(client LogsAPI) *LogGroupScanner {
	return &LogGroupScanner{client: client}
}

func (s *LogGroupScanner) Category() domain.ResourceCategory {
	return domain.CategoryLogGroup
}

func (s *LogGroupScanner) Title() string {
	return "CloudWatch log groups with no retention"
}

func (s *LogGroupScanner) Scan(ctx context.Context) ([]domain.Section, error) {
	var items []string
	var nextToken *string

	for {
		resp, err := s.client.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe log groups: %w", err)
		}

		for _, group := range resp.LogGroups {
			if group.RetentionInDays == nil {
				items = append(items, aws.ToString(group.LogGroupName))
			}
		}

		if resp.NextToken == nil {
			break
		}
		nextToken = resp.NextToken
	}

	return []domain.Section{{Category: s.Category(), Title: s.Title(), Items: items}}, nil
}

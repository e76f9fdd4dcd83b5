package analyzers

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	logstypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockLogs struct {
	mock.Mock
}

func (m *mockLogs) DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cloudwatchlogs.DescribeLogGroupsOutput), args.Error(1)
}

func TestLogGroupScanner(t *testing.T) {
	ctx := context.Background()

	t.Run("flags groups without retention across pages", func(t *testing.T) {
		client := new(mockLogs)
		client.On("DescribeLogGroups", ctx, mock.MatchedBy(func(in *cloudwatchlogs.DescribeLogGroupsInput) bool {
			return in.NextToken == nil
		})).Return(&cloudwatchlogs.DescribeLogGroupsOutput{
			LogGroups: []logstypes.LogGroup{
				{LogGroupName: aws.String("/aws/lambda/forever")},
				{LogGroupName: aws.String("/aws/lambda/bounded"), RetentionInDays: aws.Int32(14)},
			},
			NextToken: aws.String("page-2"),
		}, nil).Once()
		client.On("DescribeLogGroups", ctx, mock.MatchedBy(func(in *cloudwatchlogs.DescribeLogGroupsInput) bool {
			return aws.ToString(in.NextToken) == "page-2"
		})).Return(&cloudwatchlogs.DescribeLogGroupsOutput{
			LogGroups: []logstypes.LogGroup{
				{LogGroupName: aws.String("/ecs/unbounded")},
			},
		}, nil).Once()

		sections, err := NewLogGroupScanner(client).Scan(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []string{"/aws/lambda/forever", "/ecs/unbounded"}, sections[0].Items)
		client.AssertExpectations(t)
	})
}

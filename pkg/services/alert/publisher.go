// Package alert publishes composed alert messages onto the notification
// channel that decouples the producers from delivery.
package alert

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

// Publisher pushes one alert onto the notification channel.
type Publisher interface {
	Publish(ctx context.Context, msg domain.AlertMessage) error
}

// SNSAPI is the slice of the SNS client the publisher needs.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type topicPublisher struct {
	client   SNSAPI
	topicARN string
}

// NewPublisher returns the channel publisher for the given topic. An empty
// topic ARN disables the channel: alerts are written to the fallback stream
// instead of being dropped.
func NewPublisher(cfg awssdk.Config, topicARN string, fallback io.Writer) Publisher {
	if topicARN == "" {
		return &streamPublisher{out: fallback}
	}
	return NewTopicPublisher(sns.NewFromConfig(cfg), topicARN)
}

// NewTopicPublisher builds a Publisher over an existing SNS client.
func NewTopicPublisher(client SNSAPI, topicARN string) Publisher {
	return &topicPublisher{client: client, topicARN: topicARN}
}

func (p *topicPublisher) Publish(ctx context.Context, msg domain.AlertMessage) error {
	_, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(msg.Subject),
		Message:  aws.String(msg.Body),
	})
	if err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("subject", msg.Subject).Msg("alert published")
	return nil
}

// streamPublisher is the no-topic fallback; the report still has to reach a
// human, so it goes to the local diagnostic stream.
type streamPublisher struct {
	out io.Writer
}

func (p *streamPublisher) Publish(ctx context.Context, msg domain.AlertMessage) error {
	zerolog.Ctx(ctx).Warn().Msg("no topic configured, writing alert to local stream")
	_, err := fmt.Fprintf(p.out, "%s\n%s\n", msg.Subject, msg.Body)
	return err
}

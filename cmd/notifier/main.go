package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/fin-tools/tier-sentinel/pkg/models/api"
	"github.com/fin-tools/tier-sentinel/pkg/services/config"
	"github.com/fin-tools/tier-sentinel/pkg/services/notifier"
)

func main() {
	lambda.Start(handle)
}

// handle fans one batch of channel records out to the configured webhooks.
func handle(ctx context.Context, event events.SNSEvent) (api.NotifyResult, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	settings := config.Load()
	client := &http.Client{Timeout: 10 * time.Second}
	fanout := notifier.NewFanout(notifier.TargetsFromSettings(settings, client)...)

	records := make([]string, 0, len(event.Records))
	for _, record := range event.Records {
		records = append(records, record.SNS.Message)
	}

	return fanout.Deliver(ctx, records), nil
}

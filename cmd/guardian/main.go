package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"

	"github.com/fin-tools/tier-sentinel/pkg/models/api"
	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
	"github.com/fin-tools/tier-sentinel/pkg/services/alert"
	"github.com/fin-tools/tier-sentinel/pkg/services/config"
	"github.com/fin-tools/tier-sentinel/pkg/services/guardian"
)

func main() {
	lambda.Start(handle)
}

// handle processes one lifecycle event from the bus. It always returns a
// structured result; failures surface as alerts, never as a crashed
// invocation.
func handle(ctx context.Context, event events.CloudWatchEvent) (api.EnforceResult, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().
		Str("source", event.Source).
		Str("detail_type", event.DetailType).
		Msg("guardian triggered")

	settings := config.Load()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.HomeRegion))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS config")
		return api.EnforceResult{
			StatusCode: 500,
			Message:    "guardian initialization failed",
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Error:      err.Error(),
		}, nil
	}

	var detail domain.LifecycleDetail
	if len(event.Detail) > 0 {
		// A malformed detail payload downgrades to a no-op event rather
		// than a crash.
		if err := json.Unmarshal(event.Detail, &detail); err != nil {
			logger.Warn().Err(err).Msg("unparseable event detail, ignoring")
		}
	}

	service := guardian.NewService(
		guardian.NewEnforcer(awsCfg, settings),
		alert.NewPublisher(awsCfg, settings.TopicARN, os.Stdout),
		settings.HomeRegion,
	)

	return service.Handle(ctx, domain.LifecycleEvent{
		Source:     event.Source,
		DetailType: event.DetailType,
		Detail:     detail,
	}), nil
}

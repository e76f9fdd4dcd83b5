package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"

	"github.com/fin-tools/tier-sentinel/pkg/models/api"
	"github.com/fin-tools/tier-sentinel/pkg/services/alert"
	"github.com/fin-tools/tier-sentinel/pkg/services/config"
	"github.com/fin-tools/tier-sentinel/pkg/services/hunter"
	"github.com/fin-tools/tier-sentinel/pkg/services/report"
)

func main() {
	lambda.Start(handle)
}

// handle runs one scheduled inventory scan. The trigger payload carries
// nothing; everything comes from the environment.
func handle(ctx context.Context) (api.ScanResult, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	settings := config.Load()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.HomeRegion))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS config")
		return api.ScanResult{}, err
	}

	scanReport := hunter.NewScanner(awsCfg, settings).Scan(ctx)
	msg := report.Compose(scanReport)

	publisher := alert.NewPublisher(awsCfg, settings.TopicARN, os.Stdout)
	published := true
	if err := publisher.Publish(ctx, msg); err != nil {
		// The scan itself succeeded; a dead channel is not worth failing
		// the invocation over.
		logger.Error().Err(err).Msg("failed to publish scan report")
		published = false
	}

	return api.ScanResult{
		OK:        true,
		Sections:  len(scanReport.Sections),
		Flagged:   scanReport.Flagged(),
		Errors:    scanReport.Failed(),
		Published: published,
		Timestamp: scanReport.GeneratedAt.Format(time.RFC3339),
	}, nil
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
	"github.com/fin-tools/tier-sentinel/pkg/services/alert"
	"github.com/fin-tools/tier-sentinel/pkg/services/config"
	"github.com/fin-tools/tier-sentinel/pkg/services/guardian"
)

type EnforceCmd struct {
	eventPath string
	logger    zerolog.Logger
}

// NewEnforceCmd replays a lifecycle event from a JSON file through the
// enforcer, for testing policy against real resources.
func NewEnforceCmd(logger zerolog.Logger) *cobra.Command {
	ec := &EnforceCmd{logger: logger}
	cmd := &cobra.Command{
		Use:   "enforce",
		Short: "Run the enforcer against a lifecycle event read from a file",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.eventPath, "event", "", "Path to a JSON file holding the lifecycle event")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

// eventFile mirrors the bus envelope the deployed enforcer receives.
type eventFile struct {
	Source     string                 `json:"source"`
	DetailType string                 `json:"detail-type"`
	Detail     domain.LifecycleDetail `json:"detail"`
}

func (ec *EnforceCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()
	ctx = ec.logger.WithContext(ctx)

	raw, err := os.ReadFile(ec.eventPath)
	if err != nil {
		return fmt.Errorf("failed to read event file: %w", err)
	}
	var event eventFile
	if err := json.Unmarshal(raw, &event); err != nil {
		return fmt.Errorf("failed to parse event file: %w", err)
	}

	settings := config.Load()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.HomeRegion))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	service := guardian.NewService(
		guardian.NewEnforcer(awsCfg, settings),
		alert.NewPublisher(awsCfg, settings.TopicARN, cmd.OutOrStdout()),
		settings.HomeRegion,
	)

	result := service.Handle(ctx, domain.LifecycleEvent{
		Source:     event.Source,
		DetailType: event.DetailType,
		Detail:     event.Detail,
	})

	return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
}

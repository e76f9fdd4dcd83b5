package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fin-tools/tier-sentinel/pkg/services/config"
	"github.com/fin-tools/tier-sentinel/pkg/services/notifier"
)

type NotifyCmd struct {
	message string
	logger  zerolog.Logger
}

// NewNotifyCmd pushes a test message through the webhook fan-out.
func NewNotifyCmd(logger zerolog.Logger) *cobra.Command {
	nc := &NotifyCmd{logger: logger}
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a test message to the configured webhooks",
		RunE:  nc.run,
	}

	cmd.Flags().StringVar(&nc.message, "message", "Tier Sentinel test notification", "Message body to deliver")

	return cmd
}

func (nc *NotifyCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	ctx = nc.logger.WithContext(ctx)

	settings := config.Load()
	client := &http.Client{Timeout: 10 * time.Second}
	fanout := notifier.NewFanout(notifier.TargetsFromSettings(settings, client)...)

	result := fanout.Deliver(ctx, []string{nc.message})
	fmt.Fprintf(cmd.OutOrStdout(), "attempted %d deliveries, %d failed\n", result.Attempted, result.Failed)
	return nil
}

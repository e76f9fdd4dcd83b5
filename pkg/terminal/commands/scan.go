// Package commands holds the local CLI commands used to exercise the
// sentinel against a live account without going through the deployed
// triggers.
package commands

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fin-tools/tier-sentinel/pkg/services/config"
	"github.com/fin-tools/tier-sentinel/pkg/services/hunter"
	"github.com/fin-tools/tier-sentinel/pkg/services/report"
)

type ScanCmd struct {
	timeout int
	logger  zerolog.Logger
}

// NewScanCmd runs a full inventory scan and prints the rendered report.
func NewScanCmd(logger zerolog.Logger) *cobra.Command {
	sc := &ScanCmd{logger: logger}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run an inventory scan and print the report",
		RunE:  sc.run,
	}

	cmd.Flags().IntVar(&sc.timeout, "timeout", 60, "Scan timeout in seconds")

	return cmd
}

func (sc *ScanCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(sc.timeout)*time.Second)
	defer cancel()
	ctx = sc.logger.WithContext(ctx)

	settings := config.Load()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.HomeRegion))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	scanReport := hunter.NewScanner(awsCfg, settings).Scan(ctx)
	fmt.Fprintln(cmd.OutOrStdout(), report.Render(scanReport))
	return nil
}

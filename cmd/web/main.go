package main

import (
	"fmt"
	"net"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fin-tools/tier-sentinel/pkg/server"
	"github.com/fin-tools/tier-sentinel/pkg/services/config"
	"github.com/fin-tools/tier-sentinel/pkg/services/hunter"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "web",
		Short: "Start the Tier Sentinel ops server",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings := config.Load()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.HomeRegion))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	scanner := hunter.NewScanner(awsCfg, settings)

	addr := net.JoinHostPort(settings.ServerHost, settings.ServerPort)
	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Scanner: scanner,
		},
	})

	return api.Start()
}

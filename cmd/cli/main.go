package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fin-tools/tier-sentinel/pkg/terminal/commands"
)

func main() {
	// A missing .env just means the environment is already set up.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	rootCmd := &cobra.Command{
		Use:   "sentinel",
		Short: "Free-tier cost sentinel: scan, enforce, and notify locally",
	}
	rootCmd.AddCommand(
		commands.NewScanCmd(logger),
		commands.NewEnforceCmd(logger),
		commands.NewNotifyCmd(logger),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command jobctl runs maintenance tasks against the job market database.
package main

import (
	"fmt"
	"os"

	"jobmarket/internal/config"
	"jobmarket/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "jobctl",
	Short:         "Job market maintenance CLI",
	Long:          "jobctl applies migrations, seeds sample data, runs ingestion and issues API tokens.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Setup(cfg.Logger)
		return nil
	},
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

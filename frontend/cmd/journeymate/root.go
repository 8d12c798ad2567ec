package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/journey-mate/journeymate/frontend/internal/session"
	"github.com/journey-mate/journeymate/shared/config"
	"github.com/journey-mate/journeymate/shared/logger"
)

var (
	apiURL    string
	storePath string
	logLevel  string
	attempts  int
)

var rootCmd = &cobra.Command{
	Use:           "journeymate",
	Short:         "Sign in to Journey Mate from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.InitializeWriter(os.Stderr, logLevel, false)
		if storePath == "" {
			path, err := session.DefaultFilePath()
			if err != nil {
				return err
			}
			storePath = path
		}
		return nil
	},
}

func init() {
	cfg := config.FromEnv()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", cfg.Public.Api.BaseURL, "backend base URL (env JOURNEYMATE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "token file (default ~/.journeymate/auth.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
}

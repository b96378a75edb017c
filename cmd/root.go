package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "class-service",
	Short: "Class service: video class scheduling, provider token issuance",
	Long:  `HTTP API for users, classes and enrollments. Commands: api, migrate, seed.`,
	RunE:  runAPI, // default: run API (same as "class-service api")
}

func init() {
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// Execute runs the root command and returns the error (for main to log.Fatal).
func Execute() error {
	return rootCmd.Execute()
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "salon-scheduler",
	Short: "Appointment availability and booking API for beauty salons.",
	Long: `salon-scheduler books one-hour appointments for salon professionals,
computes their open slots and keeps an immutable history of every change.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Optional; the environment and .env are always read.
	rootCmd.PersistentFlags().String("config", "", "config file path (yaml, json or toml)")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	return config.Load(path)
}

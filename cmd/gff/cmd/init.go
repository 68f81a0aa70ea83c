/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/auren/gff/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap a configuration file",
	Long: `Create a configuration file with a freshly generated API key. An
existing configuration is never overwritten.

Examples:
  gff init
  gff init --config ./gff.yaml --data-dir /srv/gff-data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(configPath) {
			return fmt.Errorf("configuration already exists at %s", configPath)
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return err
		}

		cmd.Printf("Configuration written to %s\n", configPath)
		cmd.Printf("Data directory: %s\n", cfg.DataDir)
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		cmd.Println("Keep the API key safe; the server requires it in the X-API-Key header.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("config", "", "Configuration file path (defaults to the per-user location)")
	initCmd.Flags().String("data-dir", "", "Data directory recorded in the configuration")
}

/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/auren/gff/pkg/gff"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build <json-file>",
	Short: "Convert a JSON tree back to a binary container",
	Long: `Read a JSON tree produced by 'gff dump' and encode it to the binary
container format.

Examples:
  gff build module.json --output module.ifo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var g gff.GFF
		if err := json.Unmarshal(raw, &g); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		data, err := gff.Encode(&g)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return err
		}
		cmd.Printf("wrote %d bytes to %s\n", len(data), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("output", "o", "", "Write the container to this file instead of stdout")
}

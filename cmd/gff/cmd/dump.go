/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/auren/gff/pkg/gff"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Convert a binary container to its JSON tree",
	Long: `Decode a container file and write its JSON tree representation to
stdout, or to the file given with --output.

Examples:
  gff dump p_bastilla.utc
  gff dump module.ifo --output module.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		g, err := gff.Decode(data)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return err
		}
		out = append(out, '\n')

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		return os.WriteFile(output, out, 0644)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringP("output", "o", "", "Write JSON to this file instead of stdout")
}

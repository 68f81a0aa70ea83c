/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auren/gff/pkg/gff"
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <file-a> <file-b>",
	Short: "Compare two binary containers",
	Long: `Decode two container files and report every field that was added,
removed or changed going from the first to the second. Field order is
ignored; values and nesting are compared.

Examples:
  gff diff before.utc after.utc`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := readContainer(args[0])
		if err != nil {
			return err
		}
		b, err := readContainer(args[1])
		if err != nil {
			return err
		}

		diffs := gff.Compare(a, b)
		if len(diffs) == 0 {
			cmd.Println("containers are identical")
			return nil
		}
		for _, d := range diffs {
			cmd.Println(d)
		}
		return fmt.Errorf("%d differences", len(diffs))
	},
}

func readContainer(path string) (*gff.GFF, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := gff.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

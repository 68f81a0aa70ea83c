/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gff",
	Short: "gff - GFF container toolkit",
	Long: `gff reads, writes and serves GFF (Generic File Format) containers,
the binary format BioWare-era game engines use for typed hierarchical
game data. It converts between the binary form and a JSON tree, compares
containers, and runs a REST API over a persistent resource store.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

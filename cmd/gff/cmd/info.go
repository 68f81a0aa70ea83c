/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/auren/gff/pkg/gff"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Summarize a binary container",
	Long: `Decode a container file and print its content type, size and the
number of structs, fields and list elements in the tree.

Examples:
  gff info p_bastilla.utc`,
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

		structs, fields, listElems := countTree(g.Root)
		cmd.Printf("file:      %s\n", args[0])
		cmd.Printf("size:      %d bytes\n", len(data))
		cmd.Printf("content:   %q", string(g.Content))
		if g.Content.Known() {
			cmd.Printf(" (known resource type)")
		}
		cmd.Println()
		cmd.Printf("version:   %s\n", gff.Version)
		cmd.Printf("structs:   %d\n", structs)
		cmd.Printf("fields:    %d\n", fields)
		cmd.Printf("list len:  %d\n", listElems)
		cmd.Printf("root id:   %d\n", g.Root.ID)

		for _, f := range g.Root.Fields() {
			cmd.Printf("  %-16s %s\n", f.Label, f.Type)
		}
		return nil
	},
}

// countTree tallies structs, fields and list elements below and including st.
func countTree(st *gff.Struct) (structs, fields, listElems int) {
	structs = 1
	for _, f := range st.Fields() {
		fields++
		switch f.Type {
		case gff.FieldStruct:
			child, _ := st.GetStruct(f.Label)
			s, fl, l := countTree(child)
			structs += s
			fields += fl
			listElems += l
		case gff.FieldList:
			list, _ := st.GetList(f.Label)
			listElems += list.Len()
			for i := 0; i < list.Len(); i++ {
				s, fl, l := countTree(list.At(i))
				structs += s
				fields += fl
				listElems += l
			}
		}
	}
	return structs, fields, listElems
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

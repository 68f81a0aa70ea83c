/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/auren/gff/cmd/gff/cmd"
)

func main() {
	cmd.Execute()
}

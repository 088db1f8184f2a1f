package main

import (
	"fmt"
	"strings"

	"github.com/scalsui/scals"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of scals",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scals version %s\n", strings.TrimSpace(scals.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

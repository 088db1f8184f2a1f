package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/scalsui/scals/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scals",
	Short: "Scals resolves server-driven UI documents and runs their actions",
	Long: `Scals turns JSON (or YAML) UI documents into fully resolved render
trees: styles flattened, bindings evaluated, actions wired to a live
state store. Use it to validate documents, drive them interactively in
the terminal, or serve them over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// commandLogger builds the logger from the persistent --log-level flag.
func commandLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

package main

import (
	"fmt"
	"os"

	"github.com/scalsui/scals"
	"github.com/scalsui/scals/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a document for consistency",
	Long: `Parses a document, resolves every action against the built-in
registry, and reports dangling style, data-source and action
references, style inheritance cycles and duplicate node ids.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Document is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	data, err := loadDocument(path)
	if err != nil {
		return err
	}

	engine, err := scals.New()
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	def, err := engine.Parse(data)
	if err != nil {
		return err
	}
	return validator.ValidateDocument(def)
}

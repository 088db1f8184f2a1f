package main

import (
	"fmt"
	"os"

	"github.com/scalsui/scals"
	"github.com/scalsui/scals/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Print a Mermaid diagram of a resolved document",
	Long: `Resolves a document against its initial state and prints the render
tree as a Mermaid flowchart. Paste the output into any Mermaid viewer
to see the structure and which nodes are interactive.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGraph(cmd, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, path string) error {
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

	session, err := engine.NewSession(cmd.Context(), "graph", def)
	if err != nil {
		return err
	}

	fmt.Print(graph.GenerateMermaid(session.Tree()))
	return nil
}

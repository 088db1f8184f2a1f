package main

import (
	"fmt"
	"os"

	"github.com/scalsui/scals"
	"github.com/scalsui/scals/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Resolve a document and drive it interactively",
	Long: `Resolves a document against a fresh state store and prints the render
tree. In interactive mode, "tap <nodeID> [event]" fires node actions
and re-renders; "quit" ends the session. With --headless the tree is
printed once and the command exits.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		headless, _ := cmd.Flags().GetBool("headless")
		plain, _ := cmd.Flags().GetBool("plain")

		if err := runRender(cmd, args[0], headless, plain); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().Bool("headless", false, "Render the tree once and exit")
	renderCmd.Flags().Bool("plain", false, "Disable terminal styling")
}

func runRender(cmd *cobra.Command, path string, headless, plain bool) error {
	data, err := loadDocument(path)
	if err != nil {
		return err
	}

	logger, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	engine, err := scals.New(scals.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	def, err := engine.Parse(data)
	if err != nil {
		return err
	}

	session, err := engine.NewSession(cmd.Context(), "local", def)
	if err != nil {
		return err
	}

	if !headless {
		tui.PrintBanner()
	}

	runner := scals.NewRunner()
	runner.Input = os.Stdin
	runner.Output = os.Stdout
	runner.Headless = headless
	if !plain {
		runner.Renderer = tui.NewRenderer()
	}
	return runner.Run(cmd.Context(), session)
}

package main

import (
	"io"

	"github.com/geange/des/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [model.yml]",
	Short: "Export the model as a Mermaid diagram",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := readModel(cmd, inputPath(args))
		if err != nil {
			return err
		}
		return writeOut(cmd, func(w io.Writer) error {
			_, err := io.WriteString(w, graph.GenerateMermaid(a))
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/geange/des"
	"github.com/geange/des/internal/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewNop()

var rootCmd = &cobra.Command{
	Use:   "desctl",
	Short: "desctl post-processes supervisory control models",
	Long: `desctl applies the local passes of a supervisory control workflow to YAML models:
removing illegal product states before trimming, and collapsing the doubled
state names produced by supcon.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}
		logger = logging.New(level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("out", "o", "-", "Output file, - for stdout")
}

// readModel loads a model from a path, or from stdin for "-".
func readModel(cmd *cobra.Command, path string) (*des.Automaton, error) {
	if path == "-" {
		return des.ReadYAML(cmd.InOrStdin())
	}
	return des.LoadFile(path)
}

// writeModel writes a model to the --out destination.
func writeModel(cmd *cobra.Command, a *des.Automaton) error {
	return writeOut(cmd, func(w io.Writer) error {
		return des.WriteYAML(w, a)
	})
}

func writeOut(cmd *cobra.Command, write func(io.Writer) error) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "-" || out == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package main

import (
	"fmt"

	"github.com/geange/des"
	"github.com/spf13/cobra"
)

var canonicalizeCmd = &cobra.Command{
	Use:   "canonicalize [model.yml]",
	Short: "Collapse doubled supcon state names",
	Long:  `Renames every state ((c1,c2),(c1,c2)) to (c1,c2), along with its layout text. Nothing else changes.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := readModel(cmd, inputPath(args))
		if err != nil {
			return err
		}
		if err := des.Canonicalize(a, des.WithLogger(logger)); err != nil {
			return fmt.Errorf("canonicalize %s: %w", a.Name, err)
		}
		logger.Info("canonicalized state names", "automaton", a.Name, "states", a.NumStates())
		return writeModel(cmd, a)
	},
}

func init() {
	rootCmd.AddCommand(canonicalizeCmd)
}

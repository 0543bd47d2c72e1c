package main

import (
	"fmt"

	"github.com/geange/des"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [model.yml]",
	Short: "Check a model for consistency",
	Long: `Loads the model (which checks that every transition references existing
states and events) and reports states unreachable from the initial state.
With --tuple, every state name must also parse as a tuple.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := readModel(cmd, inputPath(args))
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		if tuple, _ := cmd.Flags().GetBool("tuple"); tuple {
			for _, name := range a.StateNames() {
				if _, err := des.ParseTupleLabel(name); err != nil {
					return fmt.Errorf("validation failed: %w", err)
				}
			}
		}

		live := des.Reachable(a)
		for s := 0; s < a.NumStates(); s++ {
			if !live.Test(uint(s)) {
				logger.Warn("unreachable state", "automaton", a.Name, "state", a.State(s).Name)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", a)
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("tuple", false, "Require tuple-encoded state names")
	rootCmd.AddCommand(validateCmd)
}

package main

import (
	"fmt"

	"github.com/geange/des/workspace/redis"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish model.yml...",
	Short: "Add models to a Redis-backed workspace",
	Long: `Adds each model to the workspace. With --replace, a model already present
under the same name is replaced instead (its layout is derived again).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("redis-addr")
		password, _ := cmd.Flags().GetString("redis-password")
		db, _ := cmd.Flags().GetInt("redis-db")
		replace, _ := cmd.Flags().GetBool("replace")

		store := redis.New(addr, password, db)
		defer store.Close()

		ctx := cmd.Context()
		for _, path := range args {
			a, err := readModel(cmd, path)
			if err != nil {
				return err
			}
			if replace {
				err = store.Replace(ctx, a.Name, a)
			} else {
				err = store.Add(ctx, a)
			}
			if err != nil {
				return fmt.Errorf("publish %s: %w", a.Name, err)
			}
			logger.Info("published model", "automaton", a.Name, "replace", replace)
		}
		return nil
	},
}

func init() {
	publishCmd.Flags().String("redis-addr", "localhost:6379", "Redis address")
	publishCmd.Flags().String("redis-password", "", "Redis password")
	publishCmd.Flags().Int("redis-db", 0, "Redis database")
	publishCmd.Flags().Bool("replace", false, "Replace models that are already present")
	rootCmd.AddCommand(publishCmd)
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geange/des"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter [model.yml]",
	Short: "Remove illegal product states",
	Long: `Removes every state whose tuple name matches the rule, together with all
transitions touching it. The result is not trimmed.

Rules:
  equal      components given by --components are equal (default 0,1)
  all-equal  every component is the same
  any-equal  at least two components are the same`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rule, _ := cmd.Flags().GetString("rule")
		components, _ := cmd.Flags().GetString("components")
		pred, err := parseRule(rule, components)
		if err != nil {
			return err
		}

		a, err := readModel(cmd, inputPath(args))
		if err != nil {
			return err
		}

		result, report, err := des.FilterWithReport(a, pred, des.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("filter %s: %w", a.Name, err)
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			result.Name = name
		}
		logger.Info("removed illegal states",
			"automaton", a.Name,
			"examined", report.Examined,
			"removed", strings.Join(report.Removed, " "),
			"transitions_removed", report.TransitionsRemoved)

		return writeModel(cmd, result)
	},
}

func init() {
	filterCmd.Flags().String("rule", "equal", "Illegal state rule (equal, all-equal, any-equal)")
	filterCmd.Flags().String("components", "0,1", "Component positions compared by the equal rule")
	filterCmd.Flags().String("name", "", "Name of the resulting model")
	rootCmd.AddCommand(filterCmd)
}

func inputPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "-"
}

func parseRule(rule, components string) (des.Predicate, error) {
	switch rule {
	case "equal":
		parts := strings.Split(components, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("--components wants two positions, got %q", components)
		}
		i, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid component position: %w", err)
		}
		j, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid component position: %w", err)
		}
		return des.ComponentsEqual(i, j), nil
	case "all-equal":
		return des.AllComponentsEqual(), nil
	case "any-equal":
		return des.AnyComponentsEqual(), nil
	}
	return nil, fmt.Errorf("unknown rule %q", rule)
}

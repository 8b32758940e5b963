package main

import (
	"fmt"

	"github.com/ariaplan/kdcbs/internal/problem"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <problem.yaml>",
	Short: "Load a problem file and report whether it resolves to valid agents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pf, err := problem.Load(args[0])
		if err != nil {
			return err
		}
		inst, err := problem.Build(pf)
		if err != nil {
			return err
		}
		fmt.Printf("ok: %d agents, delta=%.4f\n", len(inst.Agents), inst.Planner.Delta)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

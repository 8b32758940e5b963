package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ariaplan/kdcbs/internal/orchestrator"
	"github.com/ariaplan/kdcbs/internal/problem"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var solveOutput string

var solveCmd = &cobra.Command{
	Use:   "solve <problem.yaml>",
	Short: "Solve a multi-agent problem file and write a run report",
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

		cfg := orchestrator.Config{
			PlanningBudget:        durationFromSeconds(pf.Planner.PlanningBudgetSeconds, viper.GetFloat64("planning_budget_seconds")),
			GoalBias:              orDefault(pf.Planner.GoalBias, viper.GetFloat64("goal_bias")),
			AddIntermediateStates: pf.Planner.AddIntermediateStates,
			Seed:                  orDefaultInt64(pf.Planner.Seed, viper.GetInt64("seed")),
			MaxIterations:         orDefaultInt(pf.Planner.MaxIterations, viper.GetInt("max_iterations")),
		}

		start := time.Now()
		term := orchestrator.Deadline(30 * time.Second)
		plan, solved, err := orchestrator.Solve(inst.Agents, cfg, term)
		elapsed := time.Since(start)
		if err != nil {
			return fmt.Errorf("solve: %w", err)
		}

		report := problem.NewRunReport(inst, plan, solved, false, elapsed)
		slog.Info("solve complete", "solved", solved, "elapsed", elapsed, "run_id", report.ID)

		if solveOutput != "" {
			if err := problem.Save(solveOutput, report); err != nil {
				return err
			}
		}

		if !solved {
			return fmt.Errorf("no solution found within the termination budget")
		}
		return nil
	},
}

func init() {
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "", "Write the run report to this YAML file")
	rootCmd.AddCommand(solveCmd)
}

func durationFromSeconds(fileValue, fallback float64) time.Duration {
	v := orDefault(fileValue, fallback)
	return time.Duration(v * float64(time.Second))
}

func orDefault(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func orDefaultInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func orDefaultInt64(v, fallback int64) int64 {
	if v != 0 {
		return v
	}
	return fallback
}

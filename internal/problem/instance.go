// Package problem is the on-disk collaborator named in spec.md §6: the core
// solver owns no persistence format, so ProblemFile (input) and RunReport
// (output) live here, loaded and saved with viper and yaml.v3 the way
// joescharf-pm's cmd package layers config on top of a YAML file.
package problem

import (
	"fmt"
	"time"

	"github.com/ariaplan/kdcbs/internal/dynamics"
	"github.com/ariaplan/kdcbs/internal/spacetime"
	"github.com/google/uuid"
)

// AgentSpec is the on-disk description of one agent: start pose, goal disc,
// rectangular footprint, and the state-space bounds it may be sampled from.
type AgentSpec struct {
	Name        string  `mapstructure:"name" yaml:"name"`
	StartX      float64 `mapstructure:"start_x" yaml:"start_x"`
	StartY      float64 `mapstructure:"start_y" yaml:"start_y"`
	StartTheta  float64 `mapstructure:"start_theta" yaml:"start_theta"`
	GoalX       float64 `mapstructure:"goal_x" yaml:"goal_x"`
	GoalY       float64 `mapstructure:"goal_y" yaml:"goal_y"`
	GoalRadius  float64 `mapstructure:"goal_radius" yaml:"goal_radius"`
	Width       float64 `mapstructure:"width" yaml:"width"`
	Length      float64 `mapstructure:"length" yaml:"length"`
	MinX        float64 `mapstructure:"min_x" yaml:"min_x"`
	MaxX        float64 `mapstructure:"max_x" yaml:"max_x"`
	MinY        float64 `mapstructure:"min_y" yaml:"min_y"`
	MaxY        float64 `mapstructure:"max_y" yaml:"max_y"`
	MaxAccel    float64 `mapstructure:"max_accel" yaml:"max_accel"`
	MaxOmega    float64 `mapstructure:"max_omega" yaml:"max_omega"`
}

// PlannerSpec is the planner-wide configuration block of a problem file,
// named in spec.md §6 as the "configuration surface."
type PlannerSpec struct {
	Delta                 float64 `mapstructure:"delta" yaml:"delta"`
	PlanningBudgetSeconds  float64 `mapstructure:"planning_budget_seconds" yaml:"planning_budget_seconds"`
	GoalBias              float64 `mapstructure:"goal_bias" yaml:"goal_bias"`
	AddIntermediateStates bool    `mapstructure:"add_intermediate_states" yaml:"add_intermediate_states"`
	Seed                  int64   `mapstructure:"seed" yaml:"seed"`
	MaxIterations         int     `mapstructure:"max_iterations" yaml:"max_iterations"`
}

// ProblemFile is the on-disk YAML representation of an Instance, per
// SPEC_FULL.md §3.
type ProblemFile struct {
	Agents  []AgentSpec `mapstructure:"agents" yaml:"agents"`
	Planner PlannerSpec `mapstructure:"planner" yaml:"planner"`
}

// Instance is the resolved, in-memory planning problem: concrete
// dynamics.Agent collaborators plus the growing solution map.
type Instance struct {
	Agents   []*dynamics.Agent
	Planner  PlannerSpec
	solution map[string]*spacetime.Trajectory
}

// Build resolves a ProblemFile into an Instance, wiring each AgentSpec into
// a concrete unicycle Agent collaborator.
func Build(pf *ProblemFile) (*Instance, error) {
	if len(pf.Agents) == 0 {
		return nil, fmt.Errorf("problem file declares no agents")
	}

	inst := &Instance{Planner: pf.Planner, solution: make(map[string]*spacetime.Trajectory)}
	prop := dynamics.NewEulerPropagator(pf.Planner.Delta)

	for i, spec := range pf.Agents {
		space := &dynamics.UniformStateSpace{MinX: spec.MinX, MaxX: spec.MaxX, MinY: spec.MinY, MaxY: spec.MaxY}
		sampler := dynamics.NewUnicycleControlSampler(prop, space)
		if spec.MaxAccel > 0 {
			sampler.MaxAccel = spec.MaxAccel
		}
		if spec.MaxOmega > 0 {
			sampler.MaxOmega = spec.MaxOmega
		}

		agent := &dynamics.Agent{
			Index:     i,
			Name:      spec.Name,
			Footprint: dynamics.FootprintSpec{W: spec.Width, L: spec.Length},
			Start:     spacetime.State{X: spec.StartX, Y: spec.StartY, Theta: spec.StartTheta, Aux: []float64{0}},
			Goal:      &dynamics.DiscGoalRegion{CX: spec.GoalX, CY: spec.GoalY, Radius: spec.GoalRadius},
			Space:     space,
			Dynamics:  prop,
			Sampler:   sampler,
		}
		inst.Agents = append(inst.Agents, agent)
	}
	return inst, nil
}

// SetSolution records the solved trajectory for the named agent, per the
// "Result delivery" collaborator contract of spec.md §6.
func (inst *Instance) SetSolution(agentName string, traj *spacetime.Trajectory) {
	if inst.solution == nil {
		inst.solution = make(map[string]*spacetime.Trajectory)
	}
	inst.solution[agentName] = traj
}

// Solution returns the trajectory recorded for agentName, if any.
func (inst *Instance) Solution(agentName string) (*spacetime.Trajectory, bool) {
	traj, ok := inst.solution[agentName]
	return traj, ok
}

// RunReport is the persisted record of one completed solve, per
// SPEC_FULL.md §3.
type RunReport struct {
	ID          uuid.UUID              `yaml:"id"`
	Solved      bool                   `yaml:"solved"`
	Approximate bool                   `yaml:"approximate"`
	Duration    time.Duration          `yaml:"duration"`
	Agents      []AgentRunResult       `yaml:"agents"`
}

// AgentRunResult is one agent's contribution to a RunReport.
type AgentRunResult struct {
	Name    string          `yaml:"name"`
	States  []spacetime.State `yaml:"states"`
	Makespan float64        `yaml:"makespan"`
}

// NewRunReport builds a RunReport from a solved plan, stamping a fresh run
// identifier.
func NewRunReport(inst *Instance, plan []*spacetime.Trajectory, solved, approximate bool, elapsed time.Duration) RunReport {
	report := RunReport{
		ID:          uuid.New(),
		Solved:      solved,
		Approximate: approximate,
		Duration:    elapsed,
	}
	for i, traj := range plan {
		if traj == nil {
			continue
		}
		name := fmt.Sprintf("agent-%d", i)
		if i < len(inst.Agents) {
			name = inst.Agents[i].Name
		}
		inst.SetSolution(name, traj)
		report.Agents = append(report.Agents, AgentRunResult{
			Name:     name,
			States:   traj.States,
			Makespan: traj.Duration(),
		})
	}
	return report
}

package problem

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ariaplan/kdcbs/internal/spacetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFile() *ProblemFile {
	return &ProblemFile{
		Agents: []AgentSpec{
			{Name: "a0", StartX: 0, StartY: 0, GoalX: 10, GoalY: 0, GoalRadius: 0.5, Width: 1, Length: 1, MinX: -5, MaxX: 15, MinY: -5, MaxY: 15},
			{Name: "a1", StartX: 0, StartY: 5, GoalX: 10, GoalY: 5, GoalRadius: 0.5, Width: 1, Length: 1, MinX: -5, MaxX: 15, MinY: -5, MaxY: 15},
		},
		Planner: PlannerSpec{Delta: 0.1, PlanningBudgetSeconds: 1, GoalBias: 0.2, Seed: 1, MaxIterations: 10000},
	}
}

func TestBuild_ResolvesAgents(t *testing.T) {
	inst, err := Build(sampleFile())
	require.NoError(t, err)
	require.Len(t, inst.Agents, 2)
	assert.Equal(t, "a0", inst.Agents[0].Name)
	assert.Equal(t, 0, inst.Agents[0].Index)
	assert.Equal(t, 1, inst.Agents[1].Index)
}

func TestBuild_RejectsEmptyAgentList(t *testing.T) {
	_, err := Build(&ProblemFile{})
	assert.Error(t, err)
}

func TestSetSolutionAndSolution(t *testing.T) {
	inst, err := Build(sampleFile())
	require.NoError(t, err)
	traj, ok := inst.Solution("a0")
	assert.False(t, ok)
	assert.Nil(t, traj)

	want := spacetime.NewTrajectory(inst.Agents[0].Start)
	inst.SetSolution("a0", want)
	got, ok := inst.Solution("a0")
	require.True(t, ok)
	assert.Same(t, want, got)
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.yaml")
	content := `
agents:
  - name: a0
    start_x: 0
    start_y: 0
    goal_x: 10
    goal_y: 0
    goal_radius: 0.5
    width: 1
    length: 1
    min_x: -5
    max_x: 15
    min_y: -5
    max_y: 15
planner:
  delta: 0.1
  planning_budget_seconds: 1
  goal_bias: 0.2
  seed: 1
  max_iterations: 10000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pf, err := Load(path)
	require.NoError(t, err)
	require.Len(t, pf.Agents, 1)
	assert.Equal(t, "a0", pf.Agents[0].Name)
	assert.InDelta(t, 0.1, pf.Planner.Delta, 1e-9)
}

func TestSave_WritesRunReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.yaml")

	inst, err := Build(sampleFile())
	require.NoError(t, err)

	traj := spacetime.NewTrajectory(inst.Agents[0].Start)
	traj.Extend(spacetime.Control{Values: []float64{0, 0}}, 0.1, inst.Agents[0].Start)
	plan := []*spacetime.Trajectory{traj, nil}

	report := NewRunReport(inst, plan, true, false, time.Second)
	require.NoError(t, Save(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "solved: true")

	solved, ok := inst.Solution("a0")
	require.True(t, ok)
	assert.Equal(t, traj, solved)
}

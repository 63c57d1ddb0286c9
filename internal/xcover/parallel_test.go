package xcover

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fourItemInstance is a small but non-trivial instance with enough
// branching to exercise the dynamic task-spawn path: 4 primary items, each
// coverable by 2 options, giving 2^4 leaves pruned by the exact-cover
// constraint. Grounded on spec.md §8's "a real but small instance" guidance
// for count-invariance testing (S6).
func fourItemInstance(t *testing.T) *Instance {
	t.Helper()
	// items 0..3 all primary. Options: each item has its own singleton
	// option, plus one option covering all four at once.
	options := []int{
		0,
		1,
		2,
		3,
		0, 1, 2, 3,
	}
	ptr := []int{0, 1, 2, 3, 4, 8}
	inst, err := NewInstance(4, 4, nil, options, ptr)
	require.NoError(t, err)
	return inst
}

// TestRunLocalMatchesSerialSolve is spec.md §8.4: the total solution count
// must be identical whether found serially or via RunLocal with any
// (workers, size, budget) configuration.
func TestRunLocalMatchesSerialSolve(t *testing.T) {
	inst := fourItemInstance(t)

	serial := NewSearchContext(inst)
	Solve(serial, SolveConfig{})

	configs := []struct{ workers, size int; budget int64 }{
		{1, 1, DefaultTaskBudget},
		{2, 1, DefaultTaskBudget},
		{4, 1, DefaultTaskBudget},
		{3, 1, 0}, // 0 selects DefaultTaskBudget
		{2, 1, 1}, // tiny budget forces most branches inline
	}
	for _, c := range configs {
		ctx := NewSearchContext(inst)
		total := RunLocal(ctx, SolveConfig{}, c.workers, 0, c.size, c.budget)
		require.EqualValues(t, serial.Solutions, total,
			"workers=%d size=%d budget=%d", c.workers, c.size, c.budget)
	}
}

// TestRunLocalAcrossSimulatedRanks is spec.md §8.4 extended across multiple
// simulated processes: summing each rank's local RunLocal total must equal
// the serial count, matching how cmd/xcover combines per-process totals via
// internal/cluster.
func TestRunLocalAcrossSimulatedRanks(t *testing.T) {
	inst := fourItemInstance(t)

	serial := NewSearchContext(inst)
	Solve(serial, SolveConfig{})

	const size = 3
	var total int64
	for rank := 0; rank < size; rank++ {
		ctx := NewSearchContext(inst)
		total += RunLocal(ctx, SolveConfig{}, 2, rank, size, DefaultTaskBudget)
	}
	require.EqualValues(t, serial.Solutions, total)
}

// TestRunLocalMaxSolutionsReportsAtLeastOne checks that with a soft stop of
// one solution per task, RunLocal still reports at least one solution; under
// parallelism the total may exceed the per-task limit.
func TestRunLocalMaxSolutionsReportsAtLeastOne(t *testing.T) {
	inst := fourItemInstance(t)
	ctx := NewSearchContext(inst)

	total := RunLocal(ctx, SolveConfig{MaxSolutions: 1}, 4, 0, 1, DefaultTaskBudget)
	require.GreaterOrEqual(t, total, int64(1))
}

func TestEngineAccumulatedStartsAtZero(t *testing.T) {
	eng := NewEngine(SolveConfig{}, 0)
	require.EqualValues(t, 0, eng.Accumulated())
	require.Equal(t, int64(DefaultTaskBudget), eng.budget)
}

package xcover

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// tinyInstance is spec.md §8's S1: items A,B, both primary, two options
// {A} and {B}; together they form the unique solution, and each alone is
// also a (different) solution branch is not possible since A,B both must
// be covered — so there is exactly one solution: {A},{B}.
func tinyInstance(t *testing.T) *Instance {
	t.Helper()
	options := []int{0, 1}
	ptr := []int{0, 1, 2}
	inst, err := NewInstance(2, 2, []string{"A", "B"}, options, ptr)
	require.NoError(t, err)
	return inst
}

func TestSolveTinyInstanceFindsOneSolution(t *testing.T) {
	inst := tinyInstance(t)
	ctx := NewSearchContext(inst)

	var solutions [][]int
	cfg := SolveConfig{
		Visit: func(_ *SearchContext, _ int, _ int64, options []int) {
			solutions = append(solutions, append([]int(nil), options...))
		},
	}
	Solve(ctx, cfg)

	require.Len(t, solutions, 1)
	require.ElementsMatch(t, []int{0, 1}, solutions[0])
}

// overlappingInstance is spec.md §8's S2: items A,B both primary; options
// {A,B} and {A} and {B}. The only exact cover is choosing {A,B} alone, or
// choosing {A} and {B} together — two solutions total.
func overlappingInstance(t *testing.T) *Instance {
	t.Helper()
	// option 0: {A,B}; option 1: {A}; option 2: {B}
	options := []int{0, 1, 0, 1}
	ptr := []int{0, 2, 3, 4}
	inst, err := NewInstance(2, 2, []string{"A", "B"}, options, ptr)
	require.NoError(t, err)
	return inst
}

func TestSolveOverlappingInstanceFindsTwoSolutions(t *testing.T) {
	inst := overlappingInstance(t)
	ctx := NewSearchContext(inst)

	Solve(ctx, SolveConfig{})
	require.EqualValues(t, 2, ctx.Solutions)
}

// TestSolveNoSolutionInstance is spec.md §8's S3: an item with no options
// covering it at all, so the search must terminate having found nothing.
func TestSolveNoSolutionInstance(t *testing.T) {
	// item 0 primary has no option mentioning it; item 1 has one option.
	options := []int{1}
	ptr := []int{0, 1}
	inst, err := NewInstance(2, 2, nil, options, ptr)
	require.NoError(t, err)

	ctx := NewSearchContext(inst)
	Solve(ctx, SolveConfig{})
	require.EqualValues(t, 0, ctx.Solutions)
}

// TestSolveDegenerateEmptyInstance is spec.md §8's S4: zero primary items
// means the empty selection is the unique solution, found at the root
// without choosing any option.
func TestSolveDegenerateEmptyInstance(t *testing.T) {
	inst, err := NewInstance(0, 0, nil, nil, []int{0})
	require.NoError(t, err)

	ctx := NewSearchContext(inst)
	var visited bool
	Solve(ctx, SolveConfig{
		Visit: func(_ *SearchContext, level int, _ int64, options []int) {
			visited = true
			require.Equal(t, 0, level)
			require.Empty(t, options)
		},
	})

	require.True(t, visited)
	require.EqualValues(t, 1, ctx.Solutions)
}

// TestSolveMaxSolutionsStopsEarly is spec.md §9.5 / §8's S6: once the
// soft-stop threshold is hit mid-search, Solve returns without completing
// the remaining sibling branches.
func TestSolveMaxSolutionsStopsEarly(t *testing.T) {
	inst := overlappingInstance(t)
	ctx := NewSearchContext(inst)

	Solve(ctx, SolveConfig{MaxSolutions: 1})
	require.EqualValues(t, 1, ctx.Solutions)
}

// TestSolveSecondaryItemAtMostOnce is spec.md §8's S5: a secondary item may
// be left uncovered by the chosen options, unlike a primary item.
func TestSolveSecondaryItemAtMostOnce(t *testing.T) {
	inst := s5Instance(t) // primary A; secondary B,C; options {A,B} {A,C} {A,B,C}
	ctx := NewSearchContext(inst)

	var solutionCount int
	Solve(ctx, SolveConfig{
		Visit: func(_ *SearchContext, _ int, _ int64, _ []int) { solutionCount++ },
	})

	// Exactly one option must be chosen (A is the sole primary item), and
	// any of the three single options satisfies the exact-cover condition
	// on A while leaving B and/or C uncovered, which is legal for secondary
	// items: three solutions.
	require.Equal(t, 3, solutionCount)
	require.EqualValues(t, 3, ctx.Solutions)
}

func TestChooseNextItemPicksSoleActiveItem(t *testing.T) {
	inst := s5Instance(t)
	ctx := NewSearchContext(inst)

	// Only A is primary/active at the root, so it must be chosen regardless
	// of its option count.
	require.Equal(t, 0, ctx.chooseNextItem())
}

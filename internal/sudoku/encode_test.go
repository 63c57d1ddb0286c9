package sudoku

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xcover/internal/xcover"
)

// solvedGrid is a known-valid complete Sudoku solution, used as a source
// of near-complete puzzles with a small, fast search space.
const solvedGrid = `534678912
672195348
198342567
859761423
426853791
713924856
961537284
287419635
345286179`

func TestParseGridAcceptsSolvedGrid(t *testing.T) {
	g, err := ParseGrid(solvedGrid)
	require.NoError(t, err)
	require.True(t, g.Complete())
	require.True(t, g.Valid())
}

func TestParseGridRejectsBadShape(t *testing.T) {
	_, err := ParseGrid("123456789\n")
	require.Error(t, err)

	_, err = ParseGrid("12345678X\n123456789\n123456789\n123456789\n123456789\n123456789\n123456789\n123456789\n123456789\n")
	require.Error(t, err)
}

func TestEncodeProducesOneOptionPerDigitForEmptyCell(t *testing.T) {
	full, err := ParseGrid(solvedGrid)
	require.NoError(t, err)

	puzzle := full
	puzzle[0][0] = 0

	inst, placements, err := Encode(puzzle)
	require.NoError(t, err)
	require.Equal(t, NItems, inst.NItems)
	require.Equal(t, NItems, inst.NPrimary) // every item is primary

	// Every filled cell contributes exactly one option (its given digit);
	// the one blanked cell contributes all 9.
	require.Equal(t, 80+9, inst.NOptions)
	require.Len(t, placements, inst.NOptions)
}

func TestEncodeSolveDecodeRecoversAValidCompleteGrid(t *testing.T) {
	full, err := ParseGrid(solvedGrid)
	require.NoError(t, err)

	puzzle := full
	puzzle[0][0] = 0
	puzzle[4][4] = 0
	puzzle[8][8] = 0

	inst, placements, err := Encode(puzzle)
	require.NoError(t, err)

	ctx := xcover.NewSearchContext(inst)
	var solved Grid
	found := false
	xcover.Solve(ctx, xcover.SolveConfig{
		Visit: func(_ *xcover.SearchContext, _ int, _ int64, options []int) {
			if found {
				return
			}
			solved = Decode(placements, options)
			found = true
		},
	})

	require.True(t, found, "expected at least one solution")
	require.True(t, solved.Complete())
	require.True(t, solved.Valid())
	// The un-blanked cells must be untouched by decoding.
	require.Equal(t, full[1][1], solved[1][1])
}

package sudoku

import (
	"fmt"

	"xcover/internal/xcover"
)

// The encoding has four constraint families, each contributing 81 primary
// items: exactly one digit per cell, exactly one cell per (row, digit),
// exactly one cell per (column, digit), and exactly one cell per (box,
// digit). A placement of digit d at (r, c) is an option covering exactly
// one item from each family.
const (
	nCells  = 81
	nDigits = 9
	NItems  = 4 * nCells
)

func cellItem(r, c int) int { return r*9 + c }
func rowItem(r, d int) int  { return nCells + r*9 + (d - 1) }
func colItem(c, d int) int  { return 2*nCells + c*9 + (d - 1) }
func boxItem(b, d int) int  { return 3*nCells + b*9 + (d - 1) }

// Placement is the (row, col, digit) a single exact-cover option
// represents; Encode returns the placements in the same order as the
// Instance's options, so a chosen option index can be decoded back to a
// cell assignment.
type Placement struct {
	Row, Col, Digit int
}

// Encode builds the exact-cover instance for grid: one option per (cell,
// digit) pair consistent with any digit grid already fixes, CSR-encoded
// for xcover.NewInstance. All 324 items are primary — a Sudoku solution
// must satisfy every constraint exactly once.
func Encode(grid Grid) (*xcover.Instance, []Placement, error) {
	names := make([]string, NItems)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			names[cellItem(r, c)] = fmt.Sprintf("cell_%d_%d", r, c)
		}
	}
	for r := 0; r < 9; r++ {
		for d := 1; d <= 9; d++ {
			names[rowItem(r, d)] = fmt.Sprintf("row_%d_%d", r, d)
		}
	}
	for c := 0; c < 9; c++ {
		for d := 1; d <= 9; d++ {
			names[colItem(c, d)] = fmt.Sprintf("col_%d_%d", c, d)
		}
	}
	for b := 0; b < 9; b++ {
		for d := 1; d <= 9; d++ {
			names[boxItem(b, d)] = fmt.Sprintf("box_%d_%d", b, d)
		}
	}

	var options []int
	ptr := []int{0}
	var placements []Placement
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			given := grid[r][c]
			for d := 1; d <= 9; d++ {
				if given != 0 && given != d {
					continue
				}
				options = append(options,
					cellItem(r, c), rowItem(r, d), colItem(c, d), boxItem(boxOf(r, c), d))
				ptr = append(ptr, len(options))
				placements = append(placements, Placement{Row: r, Col: c, Digit: d})
			}
		}
	}

	inst, err := xcover.NewInstance(NItems, NItems, names, options, ptr)
	if err != nil {
		return nil, nil, fmt.Errorf("sudoku: encoding grid as exact cover: %w", err)
	}
	return inst, placements, nil
}

// Decode turns a chosen option list (as returned by an xcover.Visitor) back
// into a solved Grid, using the placements Encode produced alongside inst.
func Decode(placements []Placement, chosenOptions []int) Grid {
	var g Grid
	for _, opt := range chosenOptions {
		p := placements[opt]
		g[p.Row][p.Col] = p.Digit
	}
	return g
}

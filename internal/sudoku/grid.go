// Package sudoku adapts the board representation from the original
// standalone Sudoku solver into a front end for the generic exact-cover
// engine: a Sudoku grid is encoded as an xcover.Instance and a chosen
// option set is decoded back into a solved grid, so the engine solves real
// puzzles without any Sudoku-specific search logic of its own.
package sudoku

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid is a 9x9 Sudoku puzzle; 0 marks an empty cell.
type Grid [9][9]int

// ParseGrid reads a grid from 9 newline-separated rows of 9 characters
// each, where '.' or '0' means empty and '1'-'9' is a given digit. Blank
// lines and surrounding whitespace are ignored.
func ParseGrid(text string) (Grid, error) {
	var g Grid
	row := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if row >= 9 {
			return g, fmt.Errorf("sudoku: more than 9 non-blank rows")
		}
		if len(line) != 9 {
			return g, fmt.Errorf("sudoku: row %d has %d characters, want 9", row, len(line))
		}
		for col, ch := range line {
			switch {
			case ch == '.' || ch == '0':
				g[row][col] = 0
			case ch >= '1' && ch <= '9':
				g[row][col] = int(ch - '0')
			default:
				return g, fmt.Errorf("sudoku: row %d col %d: invalid character %q", row, col, ch)
			}
		}
		row++
	}
	if row != 9 {
		return g, fmt.Errorf("sudoku: got %d non-blank rows, want 9", row)
	}
	return g, nil
}

// boxOf returns the 3x3 box index (0-8) containing cell (r,c).
func boxOf(r, c int) int {
	return (r/3)*3 + c/3
}

// Complete reports whether every cell is filled.
func (g Grid) Complete() bool {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if g[r][c] == 0 {
				return false
			}
		}
	}
	return true
}

// Valid reports whether every row, column and 3x3 box contains no repeated
// non-zero digit.
func (g Grid) Valid() bool {
	for i := 0; i < 9; i++ {
		seenRow, seenCol := [10]bool{}, [10]bool{}
		for j := 0; j < 9; j++ {
			if v := g[i][j]; v != 0 {
				if seenRow[v] {
					return false
				}
				seenRow[v] = true
			}
			if v := g[j][i]; v != 0 {
				if seenCol[v] {
					return false
				}
				seenCol[v] = true
			}
		}
	}
	for b := 0; b < 9; b++ {
		startRow, startCol := (b/3)*3, (b%3)*3
		seen := [10]bool{}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if v := g[startRow+i][startCol+j]; v != 0 {
					if seen[v] {
						return false
					}
					seen[v] = true
				}
			}
		}
	}
	return true
}

const gridDivider = "+-------+-------+-------+\n"

// String renders the grid in the classic three-block-per-row ASCII layout,
// one digit or "." per cell.
func (g Grid) String() string {
	var sb strings.Builder
	for r := 0; r < 9; r++ {
		if r%3 == 0 {
			sb.WriteString(gridDivider)
		}
		sb.WriteString(formatRow(g[r]))
	}
	sb.WriteString(gridDivider)
	return sb.String()
}

// formatRow joins a row's 9 cells into three space-separated blocks of
// three, bar-delimited, matching the divider's column groups.
func formatRow(row [9]int) string {
	cells := make([]string, 9)
	for c, v := range row {
		if v == 0 {
			cells[c] = "."
		} else {
			cells[c] = strconv.Itoa(v)
		}
	}
	blocks := [3]string{
		strings.Join(cells[0:3], " "),
		strings.Join(cells[3:6], " "),
		strings.Join(cells[6:9], " "),
	}
	return fmt.Sprintf("| %s | %s | %s |\n", blocks[0], blocks[1], blocks[2])
}

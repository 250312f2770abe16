// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyGrid is returned when a grid has no rows.
	ErrEmptyGrid = errors.New("grid has no rows")
	// ErrNotSquare is returned when a row's length differs from the row count.
	ErrNotSquare = errors.New("grid is not square")
)

// Grid is a square board addressed as grid[row][column].
type Grid [][]Cell

// Position addresses a single cell.
type Position struct {
	Row    int `json:"row" yaml:"row"`
	Column int `json:"column" yaml:"column"`
}

// NewGrid returns a size x size grid of empty cells.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for r := range g {
		g[r] = make([]Cell, size)
	}
	return g
}

// Size is the number of rows (and, for a valid grid, columns).
func (g Grid) Size() int {
	return len(g)
}

// Validate checks that the grid is non-empty and square.
func (g Grid) Validate() error {
	if len(g) == 0 {
		return ErrEmptyGrid
	}
	for r, row := range g {
		if len(row) != len(g) {
			return fmt.Errorf("row %d has %d cells, want %d: %w", r, len(row), len(g), ErrNotSquare)
		}
	}
	return nil
}

// Clone returns a deep copy that shares no rows with g.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether both grids have the same shape and cells.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(o[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Index returns the linear index row*size+column.
func (g Grid) Index(row, column int) int {
	return row*len(g) + column
}

// Position is the inverse of Index.
func (g Grid) Position(index int) Position {
	if len(g) == 0 {
		return Position{}
	}
	return Position{Row: index / len(g), Column: index % len(g)}
}

// Contains reports whether p addresses a cell of g.
func (g Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < len(g) && p.Column >= 0 && p.Column < len(g[p.Row])
}

// Count returns the number of occupied cells.
func (g Grid) Count() int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if !c.IsEmpty() {
				n++
			}
		}
	}
	return n
}

// Mirror returns g flipped left to right.
func (g Grid) Mirror() Grid {
	out := g.Clone()
	for _, row := range out {
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
	return out
}

// Transpose returns g flipped across its main diagonal. g must be square.
func (g Grid) Transpose() Grid {
	out := NewGrid(len(g))
	for r, row := range g {
		for c, cell := range row {
			out[c][r] = cell
		}
	}
	return out
}

// String renders the text form accepted by Parse, one row per line.
func (g Grid) String() string {
	var sb strings.Builder
	for r, row := range g {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, cell := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell.String())
		}
	}
	return sb.String()
}

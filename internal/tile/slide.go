// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tile

// Slide simulates one move: every line is compacted toward the direction and
// equal neighbours merge once, nearest the leading edge first. It returns the
// resulting grid and whether anything changed. g is not modified.
//
// Slide does not spawn a new tile; the ledger does that after a real move.
func Slide(g Grid, d Direction) (Grid, bool) {
	size := len(g)
	out := NewGrid(size)

	for line := 0; line < size; line++ {
		var tiles []Cell
		for step := 0; step < size; step++ {
			r, c := linePosition(line, step, size, d)
			if cell := g[r][c]; !cell.IsEmpty() {
				tiles = append(tiles, cell)
			}
		}

		dst := 0
		for i := 0; i < len(tiles); i++ {
			cell := tiles[i]
			if i+1 < len(tiles) && tiles[i+1] == cell {
				rank, _ := cell.Rank()
				cell = Tile(rank + 1)
				i++
			}
			r, c := linePosition(line, dst, size, d)
			out[r][c] = cell
			dst++
		}
	}

	return out, !out.Equal(g)
}

// linePosition maps (line, step) to grid coordinates, where step 0 is the
// edge tiles slide toward.
func linePosition(line, step, size int, d Direction) (row, col int) {
	pos := step
	if d.Reverse() {
		pos = size - 1 - step
	}
	if d.Vertical() {
		return pos, line
	}
	return line, pos
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"

	"github.com/apex/log"

	"github.com/tfctl/tilediff/internal/tile"
)

// Diff compares a board before and after a move in direction d and returns
// the animation hints for the move. Slide distances are recorded at the index
// where the moving tile started; merges at the index where two tiles combined.
//
// Diff assumes after was produced by a legal slide-and-merge of before. It
// fails fast with ErrPrecondition on malformed grids. Two 0×0 grids are
// identical boards and yield an empty Result; a 0×0 grid paired with a
// non-empty one is a size mismatch. If a changed destination has no source
// it still returns the partial Result together with a *GapError. Neither grid
// is modified.
func Diff(before, after tile.Grid, d tile.Direction) (Result, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("direction %d: %w", int(d), ErrPrecondition)
	}
	if len(before) == 0 && len(after) == 0 {
		return Result{}, nil
	}
	if err := checkShapes(before, after); err != nil {
		return nil, err
	}

	s := newScanner(before, after, d)
	result := Result{}
	var gaps []int

	for line := s.start; s.inBounds(line); line += s.step {
		for pos := s.start; s.inBounds(pos); pos += s.step {
			cur := s.work.at(line, pos)
			want := s.after.at(line, pos)
			if want.IsEmpty() || cur == want {
				continue
			}

			// First contributor: the nearest tile still standing in the line.
			src, ok := s.nearest(line, pos+s.step)
			if !ok {
				gaps = append(gaps, s.index(line, pos))
				continue
			}
			if !s.take(result, line, pos, src, want) || !cur.IsEmpty() {
				continue
			}

			// The destination started empty and received a merge, so a second
			// tile of the same rank slid in behind the first.
			src, ok = s.nearest(line, pos+s.step)
			if !ok {
				gaps = append(gaps, s.index(line, pos))
				continue
			}
			s.take(result, line, pos, src, want)
		}
	}

	log.Debugf("diff %s: %d hints, %d gaps", d, len(result), len(gaps))

	if len(gaps) > 0 {
		return result, &GapError{Direction: d, Indexes: gaps}
	}
	return result, nil
}

func checkShapes(before, after tile.Grid) error {
	if err := before.Validate(); err != nil {
		return fmt.Errorf("before: %w: %w", err, ErrPrecondition)
	}
	if err := after.Validate(); err != nil {
		return fmt.Errorf("after: %w: %w", err, ErrPrecondition)
	}
	if before.Size() != after.Size() {
		return fmt.Errorf("before has size %d, after has size %d: %w", before.Size(), after.Size(), ErrPrecondition)
	}
	return nil
}

// view reads a grid in scan coordinates: line is the row (or column when
// vertical) and pos the place within it.
type view struct {
	grid     tile.Grid
	vertical bool
}

func (v view) coords(line, pos int) (row, col int) {
	if v.vertical {
		return pos, line
	}
	return line, pos
}

func (v view) at(line, pos int) tile.Cell {
	r, c := v.coords(line, pos)
	return v.grid[r][c]
}

func (v view) clear(line, pos int) {
	r, c := v.coords(line, pos)
	v.grid[r][c] = tile.Empty
}

// scanner holds the per-call state of one Diff. work is a private copy of
// before in which consumed source tiles are cleared.
type scanner struct {
	work  view
	after view
	dir   tile.Direction
	size  int
	start int
	step  int
}

func newScanner(before, after tile.Grid, d tile.Direction) *scanner {
	s := &scanner{
		work:  view{grid: before.Clone(), vertical: d.Vertical()},
		after: view{grid: after, vertical: d.Vertical()},
		dir:   d,
		size:  before.Size(),
		step:  1,
	}
	if d.Reverse() {
		s.start = s.size - 1
		s.step = -1
	}
	return s
}

func (s *scanner) inBounds(i int) bool {
	return i >= 0 && i < s.size
}

func (s *scanner) index(line, pos int) int {
	r, c := s.work.coords(line, pos)
	return r*s.size + c
}

// nearest finds the first occupied working cell at or beyond from, in scan
// order. Empty and consumed cells look the same and are skipped.
func (s *scanner) nearest(line, from int) (int, bool) {
	for k := from; s.inBounds(k); k += s.step {
		if !s.work.at(line, k).IsEmpty() {
			return k, true
		}
	}
	return 0, false
}

// take consumes the source tile at src sliding into dst, annotates it, and
// reports whether it completes a merge at dst (source rank is one below the
// destination's final rank).
func (s *scanner) take(result Result, line, dst, src int, want tile.Cell) bool {
	cell := s.work.at(line, src)
	s.work.clear(line, src)

	distance := src - dst
	if distance < 0 {
		distance = -distance
	}
	result.slide(s.index(line, src), s.dir, distance)

	rank, _ := cell.Rank()
	wantRank, _ := want.Rank()
	if rank != wantRank-1 {
		return false
	}
	result.merge(s.index(line, dst), s.dir)
	return true
}

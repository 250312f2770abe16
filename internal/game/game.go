// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package game

import (
	"errors"
	"fmt"

	"github.com/tfctl/tilediff/internal/differ"
	"github.com/tfctl/tilediff/internal/log"
	"github.com/tfctl/tilediff/internal/tile"
)

// ErrUnknownDirection is returned when no direction turns one board into the
// next.
var ErrUnknownDirection = errors.New("cannot infer move direction")

// Move is one step of a game: the diff between two consecutive boards.
type Move struct {
	Seq       int            `json:"seq" yaml:"seq"`
	Direction tile.Direction `json:"direction" yaml:"direction"`
	Inferred  bool           `json:"inferred" yaml:"inferred"`
	Before    tile.Grid      `json:"before" yaml:"before"`
	After     tile.Grid      `json:"after" yaml:"after"`
	Spawned   *tile.Position `json:"spawned,omitempty" yaml:"spawned,omitempty"`
	Score     int64          `json:"score" yaml:"score"`
	Hints     differ.Result  `json:"hints" yaml:"hints"`
	Err       error          `json:"-" yaml:"-"`
}

// Moves diffs every consecutive pair of boards. After has the spawned tile
// removed, since the ledger places it once the slide is done and it takes no
// part in the animation. A move that cannot be diffed carries Err and is
// still returned so callers can fall back to a redraw.
func (g *Game) Moves() []Move {
	var moves []Move
	for i := 1; i < len(g.Boards); i++ {
		moves = append(moves, move(i, g.Boards[i-1], g.Boards[i]))
	}
	return moves
}

// Move returns the single move ending at board seq.
func (g *Game) Move(seq int) (Move, error) {
	if seq < 1 || seq >= len(g.Boards) {
		return Move{}, fmt.Errorf("move %d out of range 1..%d", seq, len(g.Boards)-1)
	}
	return move(seq, g.Boards[seq-1], g.Boards[seq]), nil
}

// Compare diffs any two boards as if next followed prev, labelling the result
// with seq. next.Direction, when set, is trusted; otherwise it is inferred.
func Compare(prev, next Board, seq int) Move {
	return move(seq, prev, next)
}

func move(seq int, prev, next Board) Move {
	m := Move{Seq: seq, Before: prev.Spaces, Score: next.Score}
	after := next.Spaces.Clone()
	spawn := next.LastTile

	if next.Direction != nil {
		m.Direction = *next.Direction
	} else {
		d, inferred, err := InferDirection(prev.Spaces, after, spawn)
		if err != nil {
			m.After = after
			m.Err = fmt.Errorf("move %d: %w", seq, err)
			return m
		}
		m.Direction, m.Inferred = d, true
		if spawn == nil {
			spawn = inferred
		}
	}

	if spawn == nil {
		if slid, _, err := slide(prev.Spaces, m.Direction); err == nil {
			spawn = spawnedTile(slid, after)
		}
	}
	if spawn != nil && after.Contains(*spawn) {
		after[spawn.Row][spawn.Column] = tile.Empty
		m.Spawned = spawn
	}
	m.After = after

	hints, err := differ.Diff(prev.Spaces, after, m.Direction)
	if err != nil {
		log.Warnf("move %d: %v", seq, err)
		err = fmt.Errorf("move %d: %w", seq, err)
	}
	m.Hints, m.Err = hints, err
	return m
}

// InferDirection finds the direction that turns before into after. When
// spawned is known that cell is ignored in after; otherwise after may hold
// one extra tile on a cell the slide left empty, whose position is returned.
// Directions are tried left, right, up, down and the first match wins.
func InferDirection(before, after tile.Grid, spawned *tile.Position) (tile.Direction, *tile.Position, error) {
	target := after
	if spawned != nil && after.Contains(*spawned) {
		target = after.Clone()
		target[spawned.Row][spawned.Column] = tile.Empty
	}

	if err := before.Validate(); err != nil {
		return 0, nil, fmt.Errorf("before: %w: %w", err, ErrUnknownDirection)
	}
	if err := target.Validate(); err != nil || target.Size() != before.Size() {
		return 0, nil, fmt.Errorf("after does not match before: %w", ErrUnknownDirection)
	}

	for _, d := range tile.Directions {
		slid, moved := tile.Slide(before, d)
		if !moved {
			continue
		}
		if slid.Equal(target) {
			log.Tracef("infer: direction=%s", d)
			return d, nil, nil
		}
		if spawned == nil {
			if p := spawnedTile(slid, target); p != nil && withoutCell(target, *p).Equal(slid) {
				log.Tracef("infer: direction=%s spawned=%v", d, *p)
				return d, p, nil
			}
		}
	}
	return 0, nil, ErrUnknownDirection
}

func slide(g tile.Grid, d tile.Direction) (tile.Grid, bool, error) {
	if err := g.Validate(); err != nil {
		return nil, false, err
	}
	slid, moved := tile.Slide(g, d)
	return slid, moved, nil
}

// spawnedTile returns the single cell that is empty in slid but filled in
// after, or nil when there is not exactly one.
func spawnedTile(slid, after tile.Grid) *tile.Position {
	var found *tile.Position
	for r := range slid {
		for c := range slid[r] {
			if r >= len(after) || c >= len(after[r]) {
				return nil
			}
			if slid[r][c].IsEmpty() && !after[r][c].IsEmpty() {
				if found != nil {
					return nil
				}
				found = &tile.Position{Row: r, Column: c}
			}
		}
	}
	return found
}

func withoutCell(g tile.Grid, p tile.Position) tile.Grid {
	out := g.Clone()
	out[p.Row][p.Column] = tile.Empty
	return out
}

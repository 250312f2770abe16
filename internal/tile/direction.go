// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tile

import (
	"fmt"
	"strings"
)

// Direction is the way tiles slide on a move. The numeric values match the
// encoding used by the game contract's move events.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction in contract order.
var Directions = []Direction{Left, Right, Up, Down}

var directionNames = map[Direction]string{
	Left:  "left",
	Right: "right",
	Up:    "up",
	Down:  "down",
}

var directionAliases = map[string]Direction{
	"left":  Left,
	"l":     Left,
	"←":     Left,
	"0":     Left,
	"right": Right,
	"r":     Right,
	"→":     Right,
	"1":     Right,
	"up":    Up,
	"u":     Up,
	"↑":     Up,
	"2":     Up,
	"down":  Down,
	"d":     Down,
	"↓":     Down,
	"3":     Down,
}

// ParseDirection accepts a name, an initial, an arrow, or the contract's
// numeric encoding.
func ParseDirection(s string) (Direction, error) {
	if d, ok := directionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return Left, fmt.Errorf("invalid direction %q: must be one of left, right, up, down", s)
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

// Vertical is true when lines are scanned as columns (up, down).
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// Reverse is true when lines are scanned from the high index (right, down).
func (d Direction) Reverse() bool {
	return d == Right || d == Down
}

// Mirror swaps left and right; up and down are unchanged.
func (d Direction) Mirror() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// Transpose maps a direction across the main diagonal: left<->up,
// right<->down.
func (d Direction) Transpose() Direction {
	switch d {
	case Left:
		return Up
	case Up:
		return Left
	case Right:
		return Down
	case Down:
		return Right
	}
	return d
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

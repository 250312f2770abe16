// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/tilediff/internal/log"
	"github.com/tfctl/tilediff/internal/tile"
)

// DefaultEmptyValue is the number the on-chain game stores in a space that
// holds no tile.
const DefaultEmptyValue = 99

// DecodeOptions tune how raw ledger values map onto cells.
type DecodeOptions struct {
	// EmptyValue is the numeric sentinel for an empty space.
	EmptyValue int
}

// DefaultDecodeOptions returns the options matching the deployed contract.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{EmptyValue: DefaultEmptyValue}
}

// Board is one snapshot in a game's history.
type Board struct {
	Spaces    tile.Grid       `json:"spaces" yaml:"spaces"`
	Score     int64           `json:"score" yaml:"score"`
	LastTile  *tile.Position  `json:"last_tile,omitempty" yaml:"last_tile,omitempty"`
	TopTile   int             `json:"top_tile" yaml:"top_tile"`
	GameOver  bool            `json:"game_over" yaml:"game_over"`
	Direction *tile.Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
	MoveCount int             `json:"move_count" yaml:"move_count"`
}

// Game is a decoded game object with its full board history, oldest first.
type Game struct {
	ID       string  `json:"id" yaml:"id"`
	Player   string  `json:"player" yaml:"player"`
	Boards   []Board `json:"boards" yaml:"boards"`
	Score    int64   `json:"score" yaml:"score"`
	TopTile  int     `json:"top_tile" yaml:"top_tile"`
	GameOver bool    `json:"game_over" yaml:"game_over"`
}

// envelopes are tried in order; the first that exists holds the payload.
var envelopes = []string{
	"details.data.fields",
	"data.content.fields",
	"content.fields",
	"fields",
}

// unwrap strips the RPC envelope, returning doc itself when none matches.
func unwrap(doc gjson.Result) gjson.Result {
	for _, path := range envelopes {
		if v := doc.Get(path); v.Exists() && v.IsObject() {
			log.Tracef("unwrap: path=%s", path)
			return v
		}
	}
	return doc
}

// DecodeBoard decodes a single board object.
func DecodeBoard(raw []byte, opts DecodeOptions) (Board, error) {
	if !gjson.ValidBytes(raw) {
		return Board{}, fmt.Errorf("board is not valid JSON")
	}
	return decodeBoard(gjson.ParseBytes(raw), opts)
}

// DecodeGame decodes a game object and every board in its history.
func DecodeGame(raw []byte, opts DecodeOptions) (*Game, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("game is not valid JSON")
	}
	doc := unwrap(gjson.ParseBytes(raw))

	g := &Game{
		ID:       doc.Get("id.id").String(),
		Player:   doc.Get("player").String(),
		Score:    doc.Get("score").Int(),
		TopTile:  int(doc.Get("top_tile").Int()),
		GameOver: doc.Get("game_over").Bool(),
	}
	if g.ID == "" {
		g.ID = doc.Get("id").String()
	}

	boards := doc.Get("boards")
	if !boards.IsArray() {
		return nil, fmt.Errorf("game %q has no boards", g.ID)
	}
	for i, b := range boards.Array() {
		board, err := decodeBoard(b, opts)
		if err != nil {
			return nil, fmt.Errorf("board %d: %w", i, err)
		}
		g.Boards = append(g.Boards, board)
	}

	if n := len(g.Boards); n > 0 {
		last := g.Boards[n-1]
		if !doc.Get("score").Exists() {
			g.Score = last.Score
		}
		if !doc.Get("top_tile").Exists() {
			g.TopTile = last.TopTile
		}
		if !doc.Get("game_over").Exists() {
			g.GameOver = last.GameOver
		}
	}

	log.Debugf("decoded game: id=%s boards=%d", g.ID, len(g.Boards))
	return g, nil
}

func decodeBoard(doc gjson.Result, opts DecodeOptions) (Board, error) {
	doc = unwrap(doc)

	spaces := doc.Get("spaces")
	if !spaces.Exists() {
		spaces = doc.Get("board_spaces")
	}
	if !spaces.IsArray() {
		return Board{}, fmt.Errorf("no spaces or board_spaces: %w", tile.ErrEmptyGrid)
	}

	var g tile.Grid
	for r, row := range spaces.Array() {
		if !row.IsArray() {
			return Board{}, fmt.Errorf("row %d is not an array", r)
		}
		var cells []tile.Cell
		for c, v := range row.Array() {
			cell, err := decodeCell(v, opts)
			if err != nil {
				return Board{}, fmt.Errorf("space %d,%d: %w", r, c, err)
			}
			cells = append(cells, cell)
		}
		g = append(g, cells)
	}
	if err := g.Validate(); err != nil {
		return Board{}, err
	}

	b := Board{
		Spaces:    g,
		Score:     doc.Get("score").Int(),
		TopTile:   int(doc.Get("top_tile").Int()),
		GameOver:  doc.Get("game_over").Bool(),
		MoveCount: int(doc.Get("move_count").Int()),
		LastTile:  decodePosition(doc.Get("last_tile")),
	}

	if d := doc.Get("direction"); d.Exists() && d.Type != gjson.Null {
		dir, err := tile.ParseDirection(d.String())
		if err != nil {
			return Board{}, err
		}
		b.Direction = &dir
	}

	return b, nil
}

// decodeCell accepts a number, a numeric string (u64 values are often
// encoded as strings), a text token, null, or a {fields: ...} wrapper around
// any of those. Options arrive as {fields: {vec: [...]}}.
func decodeCell(v gjson.Result, opts DecodeOptions) (tile.Cell, error) {
	switch v.Type {
	case gjson.Null:
		return tile.Empty, nil
	case gjson.Number:
		return rankCell(v.Int(), opts)
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return rankCell(n, opts)
		}
		return tile.ParseCell(s)
	case gjson.JSON:
		if f := v.Get("fields"); f.Exists() {
			return decodeCell(f, opts)
		}
		if vec := v.Get("vec"); vec.IsArray() {
			items := vec.Array()
			if len(items) == 0 {
				return tile.Empty, nil
			}
			return decodeCell(items[0], opts)
		}
		if val := v.Get("value"); val.Exists() {
			return decodeCell(val, opts)
		}
	}
	return tile.Empty, fmt.Errorf("unsupported space value %s", v.Raw)
}

func rankCell(n int64, opts DecodeOptions) (tile.Cell, error) {
	if n == int64(opts.EmptyValue) {
		return tile.Empty, nil
	}
	if n < 0 {
		return tile.Empty, fmt.Errorf("negative rank %d", n)
	}
	if n > tile.MaxRank {
		return tile.Empty, fmt.Errorf("rank %d above %d", n, tile.MaxRank)
	}
	return tile.Tile(int(n)), nil
}

// decodePosition reads last_tile as [row, column, ...] or {row, column}.
func decodePosition(v gjson.Result) *tile.Position {
	switch {
	case v.IsArray():
		items := v.Array()
		if len(items) < 2 {
			return nil
		}
		return &tile.Position{Row: int(items[0].Int()), Column: int(items[1].Int())}
	case v.IsObject():
		if f := v.Get("fields"); f.Exists() {
			return decodePosition(f)
		}
		if !v.Get("row").Exists() {
			return nil
		}
		return &tile.Position{Row: int(v.Get("row").Int()), Column: int(v.Get("column").Int())}
	}
	return nil
}

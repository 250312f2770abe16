// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package game

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tilediff/internal/differ"
	"github.com/tfctl/tilediff/internal/tile"
)

//go:embed testdata/*.json
var testDataFS embed.FS

func loadGame(t *testing.T) *Game {
	t.Helper()
	raw, err := testDataFS.ReadFile("testdata/game.json")
	require.NoError(t, err)
	g, err := DecodeGame(raw, DefaultDecodeOptions())
	require.NoError(t, err)
	return g
}

func TestDecodeGame(t *testing.T) {
	g := loadGame(t)

	assert.Equal(t, "0x5b1f2d0e6a4c4ee79d6a8c1f3e2b7a90c4d5e6f7", g.ID)
	assert.Equal(t, "0x8c3e9f0a1b2c3d4e5f60718293a4b5c6d7e8f901", g.Player)
	assert.Equal(t, int64(40), g.Score)
	assert.Equal(t, 2, g.TopTile)
	assert.False(t, g.GameOver)
	require.Len(t, g.Boards, 5)

	first := g.Boards[0]
	assert.True(t, tile.MustParse("0 0 . . / . . 1 . / 0 0 1 . / 1 . 1 .").Equal(first.Spaces))
	assert.Nil(t, first.Direction)
	assert.Equal(t, &tile.Position{Row: 3, Column: 2}, first.LastTile)

	second := g.Boards[1]
	assert.True(t, tile.MustParse("1 . . 0 / 1 . . . / 1 1 . . / 2 . . .").Equal(second.Spaces))
	assert.Equal(t, int64(24), second.Score)
	require.NotNil(t, second.Direction)
	assert.Equal(t, tile.Left, *second.Direction)
	assert.Equal(t, 1, second.MoveCount)
	assert.Equal(t, &tile.Position{Row: 0, Column: 3}, second.LastTile)

	assert.Nil(t, g.Boards[3].LastTile)
	assert.True(t, g.Boards[4].GameOver)
}

func TestDecodeBoard(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		opts  DecodeOptions
		want  string
		err   bool
		check func(t *testing.T, b Board)
	}{
		{
			name: "bare",
			raw:  `{"spaces":[[0,99],[99,3]]}`,
			opts: DefaultDecodeOptions(),
			want: "0 . / . 3",
		},
		{
			name: "content envelope",
			raw:  `{"data":{"content":{"fields":{"board_spaces":[[99,99],[1,1]],"direction":"2"}}}}`,
			opts: DefaultDecodeOptions(),
			want: ". . / 1 1",
			check: func(t *testing.T, b Board) {
				require.NotNil(t, b.Direction)
				assert.Equal(t, tile.Up, *b.Direction)
			},
		},
		{
			name: "nulls and wrappers",
			raw:  `{"fields":{"spaces":[[null,{"fields":{"value":"2"}}],[{"fields":{"vec":[]}},{"vec":[4]}]]}}`,
			opts: DefaultDecodeOptions(),
			want: ". 2 / . 4",
		},
		{
			name: "custom empty value",
			raw:  `{"spaces":[[0,1],[0,0]],"last_tile":{"row":1,"column":0}}`,
			opts: DecodeOptions{EmptyValue: 0},
			want: ". 1 / . .",
			check: func(t *testing.T, b Board) {
				assert.Equal(t, &tile.Position{Row: 1, Column: 0}, b.LastTile)
			},
		},
		{name: "not square", raw: `{"spaces":[[0,1],[0]]}`, opts: DefaultDecodeOptions(), err: true},
		{name: "no spaces", raw: `{"score":4}`, opts: DefaultDecodeOptions(), err: true},
		{name: "negative rank", raw: `{"spaces":[[-1]]}`, opts: DefaultDecodeOptions(), err: true},
		{
			name: "largest rank",
			raw:  `{"spaces":[[29,"29"],[99,99]]}`,
			opts: DefaultDecodeOptions(),
			want: "29 29 / . .",
		},
		{name: "rank too large", raw: `{"spaces":[[30]]}`, opts: DefaultDecodeOptions(), err: true},
		{name: "rank too large as string", raw: `{"spaces":[["64"]]}`, opts: DefaultDecodeOptions(), err: true},
		{name: "rank overflowing int", raw: `{"spaces":[[9223372036854775807]]}`, opts: DefaultDecodeOptions(), err: true},
		{name: "bad direction", raw: `{"spaces":[[0]],"direction":9}`, opts: DefaultDecodeOptions(), err: true},
		{name: "invalid json", raw: `{"spaces":`, opts: DefaultDecodeOptions(), err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := DecodeBoard([]byte(tt.raw), tt.opts)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tile.MustParse(tt.want).Equal(b.Spaces), "got:\n%s", b.Spaces)
			if tt.check != nil {
				tt.check(t, b)
			}
		})
	}
}

func TestDecodeGameWithoutBoards(t *testing.T) {
	_, err := DecodeGame([]byte(`{"id":"0x1"}`), DefaultDecodeOptions())
	assert.Error(t, err)
}

func TestMoves(t *testing.T) {
	moves := loadGame(t).Moves()
	require.Len(t, moves, 4)

	tests := []struct {
		direction tile.Direction
		inferred  bool
		spawned   *tile.Position
		merges    []int
		slides    map[int]int
	}{
		{
			direction: tile.Left,
			spawned:   &tile.Position{Row: 0, Column: 3},
			merges:    []int{0, 8, 12},
			slides:    map[int]int{1: 1, 6: 2, 9: 1, 10: 1, 14: 2},
		},
		{
			direction: tile.Up,
			inferred:  true,
			spawned:   &tile.Position{Row: 3, Column: 3},
			merges:    []int{0},
			slides:    map[int]int{4: 1, 8: 1, 9: 2, 12: 1},
		},
		{
			direction: tile.Right,
			inferred:  true,
			spawned:   &tile.Position{Row: 2, Column: 0},
			slides:    map[int]int{0: 1, 1: 1, 4: 3, 8: 3},
		},
	}

	for i, tt := range tests {
		m := moves[i]
		require.NoError(t, m.Err, "move %d", m.Seq)
		assert.Equal(t, i+1, m.Seq)
		assert.Equal(t, tt.direction, m.Direction, "move %d", m.Seq)
		assert.Equal(t, tt.inferred, m.Inferred, "move %d", m.Seq)
		assert.Equal(t, tt.spawned, m.Spawned, "move %d", m.Seq)
		assert.True(t, m.After[tt.spawned.Row][tt.spawned.Column].IsEmpty())
		if len(tt.merges) == 0 {
			assert.Empty(t, m.Hints.Merges(), "move %d", m.Seq)
		} else {
			assert.Equal(t, tt.merges, m.Hints.Merges(), "move %d", m.Seq)
		}
		assert.Equal(t, tt.slides, m.Hints.Slides(), "move %d", m.Seq)
	}

	last := moves[3]
	assert.ErrorIs(t, last.Err, ErrUnknownDirection)
	assert.Nil(t, last.Hints)
	assert.Equal(t, int64(40), last.Score)
}

func TestMoveDoesNotTouchHistory(t *testing.T) {
	g := loadGame(t)
	before := g.Boards[1].Spaces.Clone()

	m, err := g.Move(2)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Seq)
	assert.True(t, before.Equal(g.Boards[1].Spaces))
	assert.False(t, g.Boards[2].Spaces[3][3].IsEmpty())

	_, err = g.Move(0)
	assert.Error(t, err)
	_, err = g.Move(5)
	assert.Error(t, err)
}

func TestMoveGap(t *testing.T) {
	// Ledger says left, but two tiles appeared that nothing could have
	// produced.
	left := tile.Left
	g := &Game{Boards: []Board{
		{Spaces: tile.MustParse(". . / . 0")},
		{Spaces: tile.MustParse("1 . / 1 ."), Direction: &left},
	}}

	moves := g.Moves()
	require.Len(t, moves, 1)
	assert.ErrorIs(t, moves[0].Err, differ.ErrInvariantGap)
	assert.NotNil(t, moves[0].Hints)
}

func TestInferDirection(t *testing.T) {
	before := tile.MustParse("0 0 . . / . . 1 . / 0 0 1 . / 1 . 1 .")

	for _, d := range tile.Directions {
		slid, _ := tile.Slide(before, d)
		got, spawn, err := InferDirection(before, slid, nil)
		require.NoError(t, err, d.String())
		assert.Equal(t, d, got)
		assert.Nil(t, spawn)
	}

	// One extra tile is taken as the spawn.
	after := tile.MustParse("1 . . 0 / 1 . . . / 1 1 . . / 2 . . .")
	got, spawn, err := InferDirection(before, after, nil)
	require.NoError(t, err)
	assert.Equal(t, tile.Left, got)
	assert.Equal(t, &tile.Position{Row: 0, Column: 3}, spawn)

	// A known spawn is ignored rather than returned.
	got, spawn, err = InferDirection(before, after, &tile.Position{Row: 0, Column: 3})
	require.NoError(t, err)
	assert.Equal(t, tile.Left, got)
	assert.Nil(t, spawn)

	_, _, err = InferDirection(before, before, nil)
	assert.ErrorIs(t, err, ErrUnknownDirection)

	_, _, err = InferDirection(before, tile.MustParse(". . / . ."), nil)
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestCompare(t *testing.T) {
	prev := Board{Spaces: tile.MustParse(". 0 / . .")}
	next := Board{Spaces: tile.MustParse("0 . / . ."), Score: 8}

	m := Compare(prev, next, 7)
	require.NoError(t, m.Err)
	assert.Equal(t, 7, m.Seq)
	assert.Equal(t, tile.Left, m.Direction)
	assert.True(t, m.Inferred)
	assert.Equal(t, map[int]int{1: 1}, m.Hints.Slides())
	assert.Equal(t, int64(8), m.Score)

	right := tile.Right
	next.Direction = &right
	m = Compare(prev, next, 7)
	require.NoError(t, m.Err)
	assert.False(t, m.Inferred)
	assert.Equal(t, tile.Right, m.Direction)
	// Nothing slides right, so the new tile can only be the spawn.
	assert.Equal(t, &tile.Position{Row: 0, Column: 0}, m.Spawned)
	assert.Empty(t, m.Hints)
}

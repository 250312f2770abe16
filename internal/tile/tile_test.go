// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCell(t *testing.T) {
	assert.True(t, Empty.IsEmpty())
	assert.Equal(t, ".", Empty.String())
	assert.Equal(t, 0, Empty.Value())

	zero := Tile(0)
	assert.False(t, zero.IsEmpty())
	assert.NotEqual(t, Empty, zero, "rank 0 must be distinct from empty")
	rank, ok := zero.Rank()
	assert.True(t, ok)
	assert.Equal(t, 0, rank)
	assert.Equal(t, 2, zero.Value())
	assert.Equal(t, 2048, Tile(10).Value())
	assert.Equal(t, Tile(0), Tile(-3))
	assert.Equal(t, Tile(MaxRank), Tile(64))
	assert.Equal(t, 1<<30, Tile(MaxRank).Value())
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		token   string
		want    Cell
		wantErr bool
	}{
		{token: ".", want: Empty},
		{token: "E", want: Empty},
		{token: "-", want: Empty},
		{token: "null", want: Empty},
		{token: "0", want: Tile(0)},
		{token: " 11 ", want: Tile(11)},
		{token: "29", want: Tile(MaxRank)},
		{token: "-1", wantErr: true},
		{token: "30", wantErr: true},
		{token: "63", wantErr: true},
		{token: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseCell(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellJSON(t *testing.T) {
	row := []Cell{Tile(0), Empty, Tile(3)}
	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `[0,null,3]`, string(data))

	var got []Cell
	require.NoError(t, json.Unmarshal([]byte(`[0, null, "E", "2"]`), &got))
	assert.Equal(t, []Cell{Tile(0), Empty, Empty, Tile(2)}, got)

	assert.Error(t, json.Unmarshal([]byte(`[-2]`), &got))
}

func TestCellYAML(t *testing.T) {
	var got []Cell
	require.NoError(t, yaml.Unmarshal([]byte(`[0, ~, E, 4, .]`), &got))
	assert.Equal(t, []Cell{Tile(0), Empty, Empty, Tile(4), Empty}, got)

	out, err := yaml.Marshal([]Cell{Empty, Tile(1)})
	require.NoError(t, err)
	assert.Equal(t, "- null\n- 1\n", string(out))
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "left", want: Left},
		{in: "RIGHT", want: Right},
		{in: "u", want: Up},
		{in: "↓", want: Down},
		{in: "1", want: Right},
		{in: "3", want: Down},
		{in: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectionAxes(t *testing.T) {
	assert.False(t, Left.Vertical())
	assert.False(t, Left.Reverse())
	assert.False(t, Right.Vertical())
	assert.True(t, Right.Reverse())
	assert.True(t, Up.Vertical())
	assert.False(t, Up.Reverse())
	assert.True(t, Down.Vertical())
	assert.True(t, Down.Reverse())

	assert.Equal(t, Right, Left.Mirror())
	assert.Equal(t, Up, Up.Mirror())
	assert.Equal(t, Up, Left.Transpose())
	assert.Equal(t, Down, Right.Transpose())
	assert.False(t, Direction(9).Valid())
}

func TestParse(t *testing.T) {
	g, err := Parse("0 0 E E\n. . 1 .\n0,0,1,-\n1 E 1 E")
	require.NoError(t, err)
	assert.Equal(t, 4, g.Size())
	assert.Equal(t, Tile(1), g[1][2])
	assert.Equal(t, Empty, g[3][3])
	assert.Equal(t, "0 0 . .\n. . 1 .\n0 0 1 .\n1 . 1 .", g.String())

	slashed, err := Parse("0 0 / . 1")
	require.NoError(t, err)
	assert.Equal(t, Grid{{Tile(0), Tile(0)}, {Empty, Tile(1)}}, slashed)

	_, err = Parse("0 0 0\n0 0 0")
	assert.ErrorIs(t, err, ErrNotSquare)

	_, err = Parse("# nothing here\n")
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestDecode(t *testing.T) {
	want := MustParse("0 . / 1 2")

	tests := []struct {
		name string
		data string
	}{
		{name: "json rows", data: `[[0, null], [1, 2]]`},
		{name: "json document", data: `{"board": [[0, null], [1, 2]]}`},
		{name: "json spaces", data: `{"spaces": [[0, "E"], [1, 2]]}`},
		{name: "yaml flow rows", data: "- [0, ~]\n- [1, 2]\n"},
		{name: "yaml document", data: "board:\n  - [0, E]\n  - [1, 2]\n"},
		{name: "text", data: "0 .\n1 2\n"},
		{name: "text with dash empties", data: "0 -\n1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data))
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %v", got)
		})
	}

	_, err := Decode([]byte("  "))
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = Decode([]byte(`[[0, 1, 2], [0, 1, 2]]`))
	assert.ErrorIs(t, err, ErrNotSquare)
}

func TestGridHelpers(t *testing.T) {
	g := MustParse("0 1 2 / . . 3 / 4 . .")

	clone := g.Clone()
	clone[0][0] = Empty
	assert.Equal(t, Tile(0), g[0][0], "clone must not share rows")

	assert.Equal(t, 5, g.Index(1, 2))
	assert.Equal(t, Position{Row: 1, Column: 2}, g.Position(5))
	assert.True(t, g.Contains(Position{Row: 2, Column: 2}))
	assert.False(t, g.Contains(Position{Row: 3, Column: 0}))
	assert.Equal(t, 5, g.Count())

	assert.True(t, MustParse("2 1 0 / 3 . . / . . 4").Equal(g.Mirror()))
	assert.True(t, MustParse("0 . 4 / 1 . . / 2 3 .").Equal(g.Transpose()))
	assert.False(t, g.Equal(g.Mirror()))
}

func TestSlide(t *testing.T) {
	before := MustParse("0 0 E E / E E 1 E / 0 0 1 E / 1 E 1 E")

	tests := []struct {
		dir  Direction
		want string
	}{
		{dir: Left, want: "1 . . . / 1 . . . / 1 1 . . / 2 . . ."},
		{dir: Right, want: ". . . 1 / . . . 1 / . . 1 1 / . . . 2"},
		{dir: Up, want: "1 1 2 . / 1 . 1 . / . . . . / . . . ."},
		{dir: Down, want: ". . . . / . . . . / 1 . 1 . / 1 1 2 ."},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			got, moved := Slide(before, tt.dir)
			assert.True(t, moved)
			assert.Equal(t, MustParse(tt.want).String(), got.String())
		})
	}

	t.Run("single merge per tile", func(t *testing.T) {
		got, _ := Slide(MustParse("0 0 0 0 / . . . . / . . . . / . . . ."), Left)
		assert.Equal(t, "1 1 . .", got.String()[:7])
	})

	t.Run("no movement", func(t *testing.T) {
		g := MustParse("0 1 / . .")
		got, moved := Slide(g, Left)
		assert.False(t, moved)
		assert.True(t, g.Equal(got))
	})
}

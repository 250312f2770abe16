// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cell is a single board space. The zero value is Empty; a filled cell holds a
// tile rank where rank 0 is the smallest tile (2) and each merge adds one.
type Cell struct {
	rank  int
	tiled bool
}

// Empty is the cell with no tile on it. It never compares equal to any rank.
var Empty = Cell{}

// MaxRank is the largest rank a cell can hold. Its face value, 2<<MaxRank,
// still fits a 32-bit int.
const MaxRank = 29

// Tile returns a cell holding a tile of the given rank. Ranks are clamped to
// [0, MaxRank]; use ParseCell when reading untrusted input.
func Tile(rank int) Cell {
	rank = min(max(rank, 0), MaxRank)
	return Cell{rank: rank, tiled: true}
}

// Rank returns the tile rank and true, or 0 and false for an empty cell.
func (c Cell) Rank() (int, bool) {
	return c.rank, c.tiled
}

// IsEmpty reports whether no tile occupies the cell.
func (c Cell) IsEmpty() bool {
	return !c.tiled
}

// Value is the face value shown on the tile (2, 4, 8, ...). Empty is 0.
func (c Cell) Value() int {
	if !c.tiled {
		return 0
	}
	return 2 << c.rank
}

// String renders the text form: "." for empty, the rank otherwise.
func (c Cell) String() string {
	if !c.tiled {
		return "."
	}
	return strconv.Itoa(c.rank)
}

// emptyTokens are the spellings accepted for an empty cell in text and YAML.
var emptyTokens = map[string]bool{
	".":    true,
	"-":    true,
	"_":    true,
	"e":    true,
	"~":    true,
	"null": true,
}

// ParseCell reads a single token of the text form.
func ParseCell(token string) (Cell, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if emptyTokens[t] {
		return Empty, nil
	}
	rank, err := strconv.Atoi(t)
	if err != nil {
		return Empty, fmt.Errorf("invalid cell %q", token)
	}
	if rank < 0 {
		return Empty, fmt.Errorf("invalid cell %q: negative rank", token)
	}
	if rank > MaxRank {
		return Empty, fmt.Errorf("invalid cell %q: rank above %d", token, MaxRank)
	}
	return Tile(rank), nil
}

// MarshalJSON encodes Empty as null and tiles as their rank.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.tiled {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(c.rank)), nil
}

// UnmarshalJSON accepts null, a rank number, or a text-form token string.
func (c *Cell) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*c = Empty
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var token string
		if err := json.Unmarshal(data, &token); err != nil {
			return err
		}
		parsed, err := ParseCell(token)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	parsed, err := ParseCell(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes Empty as null and tiles as their rank.
func (c Cell) MarshalYAML() (interface{}, error) {
	if !c.tiled {
		return nil, nil
	}
	return c.rank, nil
}

// UnmarshalYAML accepts null/~, the empty tokens, or a rank.
func (c *Cell) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: cell must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*c = Empty
		return nil
	}
	parsed, err := ParseCell(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

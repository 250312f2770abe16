// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// cellSeparator splits a text row into cell tokens.
var cellSeparator = regexp.MustCompile(`[\s,]+`)

// document is the keyed form of a board in JSON or YAML.
type document struct {
	Board  Grid `json:"board" yaml:"board"`
	Spaces Grid `json:"spaces" yaml:"spaces"`
}

func (d document) grid() Grid {
	if len(d.Board) > 0 {
		return d.Board
	}
	return d.Spaces
}

// Parse reads the text form: one row per line (or rows separated by "/"),
// cells separated by whitespace or commas. Blank lines and lines starting with
// "#" are ignored. The result is validated to be square.
func Parse(text string) (Grid, error) {
	var g Grid

	lines := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '/'
	})
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var row []Cell
		for _, token := range cellSeparator.Split(line, -1) {
			if token == "" {
				continue
			}
			cell, err := ParseCell(token)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", len(g), err)
			}
			row = append(row, cell)
		}
		g = append(g, row)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// MustParse is Parse for fixtures; it panics on error.
func MustParse(text string) Grid {
	g, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return g
}

// Decode reads a board in any supported form: a JSON array of rows, a JSON or
// YAML document with a "board" or "spaces" key, a YAML sequence of rows, or
// the text form.
func Decode(data []byte) (Grid, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyGrid
	}

	var g Grid
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &g); err != nil {
			return nil, fmt.Errorf("failed to decode JSON board: %w", err)
		}
	case '{':
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON board: %w", err)
		}
		g = doc.grid()
	default:
		if !bytes.ContainsRune(trimmed, ':') {
			if parsed, err := Parse(string(trimmed)); err == nil {
				return parsed, nil
			}
		}
		parsed, err := decodeYAML(trimmed)
		if err != nil {
			return nil, err
		}
		g = parsed
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// decodeYAML handles both a bare sequence of rows and a keyed document.
func decodeYAML(data []byte) (Grid, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode YAML board: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, ErrEmptyGrid
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var g Grid
		if err := root.Decode(&g); err != nil {
			return nil, fmt.Errorf("failed to decode YAML board: %w", err)
		}
		return g, nil
	case yaml.MappingNode:
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode YAML board: %w", err)
		}
		return doc.grid(), nil
	default:
		return nil, errors.New("unrecognized board format")
	}
}

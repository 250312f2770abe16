// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tfctl/tilediff/internal/differ"
)

// DefaultAttrs are the row columns shown when --attrs adds nothing.
const DefaultAttrs = "index,row,column,direction,slide,merge,class"

// Row is the flat form of one hint.
type Row struct {
	Index     int    `json:"index"`
	Row       int    `json:"row"`
	Column    int    `json:"column"`
	Direction string `json:"direction"`
	Slide     int    `json:"slide"`
	Merge     bool   `json:"merge"`
	Class     string `json:"class"`
}

// Rows flattens a Result for a board of the given size, in index order.
func Rows(result differ.Result, size int) []Row {
	if size < 1 {
		return nil
	}

	rows := make([]Row, 0, len(result))
	for _, i := range result.Indexes() {
		h := result[i]
		rows = append(rows, Row{
			Index:     i,
			Row:       i / size,
			Column:    i % size,
			Direction: h.Direction.String(),
			Slide:     h.Slide,
			Merge:     h.Merge,
			Class:     Class(h),
		})
	}
	return rows
}

// Class is the renderer hint for a cell: slide-<direction>-<distance>, merge,
// or both separated by a space.
func Class(h differ.Hint) string {
	var classes []string
	if h.HasSlide() {
		classes = append(classes, fmt.Sprintf("slide-%s-%d", h.Direction, h.Slide))
	}
	if h.Merge {
		classes = append(classes, "merge")
	}
	return strings.Join(classes, " ")
}

// Buffer marshals v into the raw JSON document SliceDiceSpit consumes.
func Buffer(v interface{}) (bytes.Buffer, error) {
	var raw bytes.Buffer
	if err := json.NewEncoder(&raw).Encode(v); err != nil {
		return raw, fmt.Errorf("failed to marshal rows: %w", err)
	}
	return raw, nil
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/tfctl/tilediff/internal/differ"
	"github.com/tfctl/tilediff/internal/tile"
)

var arrows = map[tile.Direction]string{
	tile.Left:  "←",
	tile.Right: "→",
	tile.Up:    "↑",
	tile.Down:  "↓",
}

// CellLabel is the text shown for one board space: the tile's face value (or
// "." when empty), an arrow and distance when the tile slides away, and "+"
// when the space is a merge terminus.
func CellLabel(c tile.Cell, h differ.Hint, annotated bool) string {
	label := "."
	if !c.IsEmpty() {
		label = strconv.Itoa(c.Value())
	}
	if !annotated {
		return label
	}
	if h.HasSlide() {
		label += arrows[h.Direction] + strconv.Itoa(h.Slide)
	}
	if h.Merge {
		label += "+"
	}
	return label
}

// BoardWriter renders a board as a bordered grid. Hints may be nil. With color
// set, merge termini and slide sources use the colors.merge and colors.slide
// styles. If w is nil, os.Stdout is used.
func BoardWriter(w io.Writer, g tile.Grid, hints differ.Result, color bool) error {
	if w == nil {
		w = os.Stdout
	}

	if err := g.Validate(); err != nil {
		return fmt.Errorf("cannot render board: %w", err)
	}

	size := g.Size()
	rows := make([][]string, size)
	for r := range g {
		rows[r] = make([]string, size)
		for c := range g[r] {
			h, ok := hints[g.Index(r, c)]
			rows[r][c] = CellLabel(g[r][c], h, ok)
		}
	}

	var (
		cellStyle  = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
		mergeStyle = cellStyle
		slideStyle = cellStyle
	)

	if color {
		mergeColor, slideColor := getHintColors("colors")
		mergeStyle = mergeStyle.Foreground(mergeColor).Bold(true)
		slideStyle = slideStyle.Foreground(slideColor)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= size || col >= size {
				return cellStyle
			}
			h, ok := hints[g.Index(row, col)]
			switch {
			case !ok:
				return cellStyle
			case h.Merge:
				return mergeStyle
			case h.HasSlide():
				return slideStyle
			default:
				return cellStyle
			}
		}).
		Rows(rows...)

	_, err := fmt.Fprintln(w, t)
	return err
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/tilediff/internal/attrs"
	"github.com/tfctl/tilediff/internal/config"
	"github.com/tfctl/tilediff/internal/filters"
)

// InterfaceToString converts supported primitive or composite values to a
// string. Nil, empty strings, false and empty collections use the empty value,
// which may be customized. Numbers always render, so index 0 reads as 0.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		// Row values are whole numbers; JSON parsing hands them over as floats.
		return fmt.Sprintf("%.0f", value)
	case bool:
		if !value {
			return emptyValue[0]
		}
		return strconv.FormatBool(value)
	default:
		if reflect.ValueOf(value).IsZero() {
			return emptyValue[0]
		}
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit orchestrates filtering, transforming, sorting and rendering
// of a JSON array of rows according to command flags and attribute
// specifications. If w is nil, os.Stdout is used.
func SliceDiceSpit(raw bytes.Buffer,
	attrs attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) error {

	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	output := cmd.String("output")
	if output == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	fullDataset := gjson.Parse(raw.String())

	// Filter out the rows we don't want. Do it here so that the following
	// processes are slightly more efficient since they'll be working on a smaller
	// dataset.
	filteredDataset := filters.FilterDataset(fullDataset, attrs, cmd.String("filter"))

	// Transform each value in each row.
	for _, row := range filteredDataset {
		for _, attr := range attrs {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(filteredDataset, cmd.String("sort"))

	// Excluded attrs only served filtering and sorting.
	projected := project(filteredDataset, attrs)

	switch output {
	case "json":
		jsonOutput, err := json.Marshal(projected)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(projected)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		TableWriter(filteredDataset, attrs, cmd, w)
	}

	return nil
}

// project drops the keys of excluded attrs. An empty dataset stays a non-nil
// slice so json renders [] rather than null.
func project(dataset []map[string]interface{}, attrs attrs.AttrList) []map[string]interface{} {
	projected := make([]map[string]interface{}, 0, len(dataset))
	for _, row := range dataset {
		out := make(map[string]interface{}, len(row))
		for _, attr := range attrs {
			if attr.Include {
				out[attr.OutputKey] = row[attr.OutputKey]
			}
		}
		projected = append(projected, out)
	}
	return projected
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. Output is written to w. If w is nil, os.Stdout
// is used.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	// We render the header even when there are no rows, so that a move without
	// visible changes still shows up.
	var headerStyle = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
	if cmd.Bool("color") {
		headerColor, _, _ := getColors("colors")
		headerStyle = headerStyle.Foreground(headerColor)
	}

	if cmd.Metadata["header"] != nil {
		fmt.Fprintln(w, headerStyle.Render(cmd.Metadata["header"].(string)))
	}

	if len(resultSet) == 0 {
		return
	}

	// We initialize the table styles.
	var (
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	// And then color styles if --color is present.
	if cmd.Bool("color") {
		_, evenColor, oddColor := getColors("colors")

		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	// We build the table rows from the result set.
	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range attrs {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	pad := cmd.Int("padding")
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(attrs.Included()...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if cmd.Metadata["footer"] != nil {
		fmt.Fprintln(w, headerStyle.Render(cmd.Metadata["footer"].(string)))
	}
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	header = resolveColor(key+".title", "#b08800", "#f6be00", isDark)
	even = resolveColor(key+".even", "#333333", "#ffffff", isDark)
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0", isDark)

	return
}

// getHintColors returns the board colors for merge termini and slide sources.
func getHintColors(key string) (merge, slide color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	merge = resolveColor(key+".merge", "#b03060", "#ff6f91", isDark)
	slide = resolveColor(key+".slide", "#0088a0", "#00c8f0", isDark)

	return
}

// resolveColor uses the explicit color if found in the config and leaves it
// up to the user to choose appropriate colors for their theme. If not found,
// it picks a reasonable default based on terminal background.
func resolveColor(key string, light string, dark string, isDark bool) color.Color {
	colorCfg, err := config.GetString(key)
	if err == nil && colorCfg != "" {
		return lipgloss.Color(colorCfg)
	}
	log.Debugf("color %s not configured: %v", key, err)

	if isDark {
		return lipgloss.Color(dark)
	}
	return lipgloss.Color(light)
}

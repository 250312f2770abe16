// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tilediff/internal/attrs"
	"github.com/tfctl/tilediff/internal/game"
	"github.com/tfctl/tilediff/internal/meta"
	"github.com/tfctl/tilediff/internal/output"
	"github.com/tfctl/tilediff/internal/tile"
)

// redrawNotice is printed when hints cannot be trusted and the front end must
// repaint the whole board instead of animating it.
const redrawNotice = "full redraw required"

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	err = al.SetGlobalTransformSpec()
	return
}

// DumpSchemaIfRequested writes the row schema for the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t, stdout(cmd))
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// EmitRows runs rows through the common output pipeline. header, when not
// empty, is printed above text output.
func EmitRows(cmd *cli.Command, rows any, al attrs.AttrList, header string) error {
	raw, err := output.Buffer(rows)
	if err != nil {
		return err
	}

	if cmd.Metadata == nil {
		cmd.Metadata = map[string]any{}
	}
	cmd.Metadata["header"] = nil
	if header != "" {
		cmd.Metadata["header"] = header
	}

	return output.SliceDiceSpit(raw, al, cmd, stdout(cmd))
}

// readInput returns the bytes of path, or of the command's reader when path is
// "-".
func readInput(cmd *cli.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin(cmd))
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}
	return data, nil
}

// readBoard reads one board argument. JSON objects are ledger objects and go
// through the game decoder; anything else is a bare board in text, JSON or
// YAML form. The raw bytes are returned for --delta.
func readBoard(cmd *cli.Command, path string) (tile.Grid, []byte, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, nil, err
	}

	var g tile.Grid
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' && gjson.ValidBytes(trimmed) {
		var b game.Board
		if b, err = game.DecodeBoard(trimmed, GetMeta(cmd).Decode); err == nil {
			g = b.Spaces
		} else if g, err = tile.Decode(data); err != nil {
			log.Debugf("readBoard: not a ledger board either: %v", err)
		}
	} else {
		g, err = tile.Decode(data)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", displayName(path), err)
	}

	log.Debugf("readBoard: path=%s size=%d", path, g.Size())
	return g, data, nil
}

// deltaDocuments returns the two documents --delta compares. Raw JSON is kept
// when both sides are JSON of the same kind (two ledger objects, or two bare
// arrays); otherwise both sides fall back to the JSON form of their grids.
func deltaDocuments(beforeRaw []byte, before tile.Grid, afterRaw []byte, after tile.Grid) ([]byte, []byte, error) {
	if kind := jsonKind(beforeRaw); kind != notJSON && kind == jsonKind(afterRaw) {
		return beforeRaw, afterRaw, nil
	}

	left, err := json.Marshal(before)
	if err != nil {
		return nil, nil, err
	}
	right, err := json.Marshal(after)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

type docKind int

const (
	notJSON docKind = iota
	jsonObject
	jsonArray
)

func jsonKind(data []byte) docKind {
	if !gjson.ValidBytes(data) {
		return notJSON
	}
	switch r := gjson.ParseBytes(data); {
	case r.IsObject():
		return jsonObject
	case r.IsArray():
		return jsonArray
	}
	return notJSON
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

// stdout is the root command's writer so that tests can capture output.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

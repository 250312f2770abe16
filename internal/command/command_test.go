// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	beforeBoard = "0 0 . 1\n. . . .\n. . . .\n. . . .\n"
	afterBoard  = "1 1 . .\n. . . .\n. . . .\n. . . .\n"
	gameID      = "0x5b1f2d0e6a4c4ee79d6a8c1f3e2b7a90c4d5e6f7"
)

// runApp runs tilediff with args, feeding stdin and capturing both writers.
func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfg := filepath.Join(t.TempDir(), "tilediff.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("ledger:\n  empty: 99\n"), 0o600))
	t.Setenv("TILEDIFF_CFG_FILE", cfg)
	t.Setenv("TILEDIFF_SOURCE", "")

	args = append([]string{"tilediff"}, args...)
	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader(stdin)

	err = app.Run(context.Background(), args)
	return out.String(), errOut.String(), err
}

// writeFile writes content into a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func gameDir(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile("testdata/game.json")
	require.NoError(t, err)
	return filepath.Dir(writeFile(t, gameID+".json", string(raw)))
}

func decodeRows(t *testing.T, out string) []map[string]interface{} {
	t.Helper()
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows), out)
	return rows
}

func TestDiffCommand(t *testing.T) {
	before := writeFile(t, "before.txt", beforeBoard)
	after := writeFile(t, "after.txt", afterBoard)

	tests := []struct {
		name    string
		args    []string
		indexes []float64
		classes []string
	}{
		{
			name:    "all hints",
			args:    []string{"diff", "--direction", "left", "-o", "json", before, after},
			indexes: []float64{0, 1, 3},
			classes: []string{"merge", "slide-left-1", "slide-left-2"},
		},
		{
			name:    "merges only",
			args:    []string{"diff", "-d", "l", "-o", "json", "--filter", "merge", before, after},
			indexes: []float64{0},
			classes: []string{"merge"},
		},
		{
			name:    "sorted descending",
			args:    []string{"diff", "-d", "0", "-o", "json", "--sort", "-index", before, after},
			indexes: []float64{3, 1, 0},
			classes: []string{"slide-left-2", "slide-left-1", "merge"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runApp(t, "", tt.args...)
			require.NoError(t, err)

			rows := decodeRows(t, out)
			require.Len(t, rows, len(tt.indexes))
			for i, row := range rows {
				assert.Equal(t, tt.indexes[i], row["index"])
				assert.Equal(t, tt.classes[i], row["class"])
			}
		})
	}
}

func TestDiffCommandStdin(t *testing.T) {
	after := writeFile(t, "after.txt", afterBoard)

	out, _, err := runApp(t, beforeBoard, "diff", "-d", "left", "-o", "json", "-", after)
	require.NoError(t, err)
	assert.Len(t, decodeRows(t, out), 3)

	_, _, err = runApp(t, beforeBoard, "diff", "-d", "left", "-", "-")
	assert.ErrorContains(t, err, "stdin")
}

func TestDiffCommandLedgerBoards(t *testing.T) {
	before := writeFile(t, "before.json", `{"fields":{"spaces":[[0,0,99,1],[99,99,99,99],[99,99,99,99],[99,99,99,99]],"score":0}}`)
	after := writeFile(t, "after.json", `{"fields":{"spaces":[["1","1","99","99"],["99","99","99","99"],["99","99","99","99"],["99","99","99","99"]],"score":"8"}}`)

	out, _, err := runApp(t, "", "diff", "-d", "left", "-o", "json", "--attrs", "!row,!column", before, after)
	require.NoError(t, err)

	rows := decodeRows(t, out)
	require.Len(t, rows, 3)
	assert.NotContains(t, rows[0], "row")
	assert.Equal(t, true, rows[0]["merge"])
}

func TestDiffCommandGap(t *testing.T) {
	before := writeFile(t, "before.txt", ". 0\n. .\n")
	after := writeFile(t, "after.txt", "0 .\n. 1\n")

	out, errOut, err := runApp(t, "", "diff", "-d", "left", "-o", "json", before, after)
	require.NoError(t, err)
	assert.Contains(t, errOut, redrawNotice)
	assert.Len(t, decodeRows(t, out), 1)
}

func TestDiffCommandErrors(t *testing.T) {
	before := writeFile(t, "before.txt", beforeBoard)
	small := writeFile(t, "small.txt", ". 0\n. .\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "one board",
			args: []string{"diff", "-d", "left", before},
			want: "BEFORE and AFTER",
		},
		{
			name: "no direction",
			args: []string{"diff", before, before},
			want: "--direction",
		},
		{
			name: "bad direction",
			args: []string{"diff", "-d", "sideways", before, before},
			want: "sideways",
		},
		{
			name: "size mismatch",
			args: []string{"diff", "-d", "left", before, small},
		},
		{
			name: "missing file",
			args: []string{"diff", "-d", "left", before, filepath.Join(t.TempDir(), "nope")},
			want: "failed to read board",
		},
		{
			name: "bad output",
			args: []string{"diff", "-d", "left", "-o", "xml", before, before},
			want: "must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, "", tt.args...)
			require.Error(t, err)
			if tt.want != "" {
				assert.ErrorContains(t, err, tt.want)
			}
		})
	}
}

func TestDiffCommandBoard(t *testing.T) {
	before := writeFile(t, "before.txt", beforeBoard)
	after := writeFile(t, "after.txt", afterBoard)

	out, _, err := runApp(t, "", "diff", "-d", "left", "--board", "--color=false", before, after)
	require.NoError(t, err)
	assert.Contains(t, out, "2+")
	assert.Contains(t, out, "2←1")
	assert.Contains(t, out, "4←2")
}

func TestDiffCommandDelta(t *testing.T) {
	ledgerBefore := `{"fields":{"spaces":[[0,0,99,1],[99,99,99,99],[99,99,99,99],[99,99,99,99]],"score":0}}`
	ledgerAfter := `{"fields":{"spaces":[[1,1,99,99],[99,99,99,99],[99,99,99,99],[99,99,99,99]],"score":8}}`

	tests := []struct {
		name     string
		before   string
		after    string
		contains []string
	}{
		{
			name:   "text boards",
			before: beforeBoard,
			after:  afterBoard,
		},
		{
			name:     "ledger objects keep their fields",
			before:   ledgerBefore,
			after:    ledgerAfter,
			contains: []string{`"score": 0`, `"score": 8`},
		},
		{
			name:   "text board against ledger object",
			before: beforeBoard,
			after:  ledgerAfter,
		},
		{
			name:   "json array against ledger object",
			before: `[[0,0,null,1],[null,null,null,null],[null,null,null,null],[null,null,null,null]]`,
			after:  ledgerAfter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := writeFile(t, "before", tt.before)
			after := writeFile(t, "after", tt.after)

			out, _, err := runApp(t, "", "diff", "-d", "left", "--delta", "--color=false", "-o", "json", before, after)
			require.NoError(t, err)

			// The delta comes first, then the rows.
			idx := strings.LastIndex(out, "[{")
			require.Positive(t, idx)
			delta := out[:idx]
			assert.NotEmpty(t, strings.TrimSpace(delta))
			assert.NotContains(t, delta, "identical")
			for _, s := range tt.contains {
				assert.Contains(t, delta, s)
			}
			assert.Len(t, decodeRows(t, out[idx:]), 3)
		})
	}
}

func TestDiffCommandSchema(t *testing.T) {
	out, _, err := runApp(t, "", "diff", "--schema")
	require.NoError(t, err)
	for _, name := range []string{"index", "row", "column", "direction", "slide", "merge", "class"} {
		assert.Contains(t, out, name)
	}
}

func TestReplayCommand(t *testing.T) {
	dir := gameDir(t)

	out, errOut, err := runApp(t, "", "replay", "--source", dir, "-o", "json", gameID)
	require.NoError(t, err)
	assert.Contains(t, errOut, "move 4: "+redrawNotice)

	rows := decodeRows(t, out)
	require.Len(t, rows, 17)

	perMove := map[float64]int{}
	for _, row := range rows {
		perMove[row["move"].(float64)]++
	}
	assert.Equal(t, map[float64]int{1: 8, 2: 5, 3: 4}, perMove)
}

func TestReplayCommandSeveralGames(t *testing.T) {
	dir := gameDir(t)
	raw, err := os.ReadFile(filepath.Join(dir, gameID+".json"))
	require.NoError(t, err)
	other := strings.ReplaceAll(string(raw), gameID, "0xbeef")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0xbeef.json"), []byte(other), 0o600))

	t.Run("rows", func(t *testing.T) {
		out, errOut, err := runApp(t, "", "replay", "--source", dir, "-o", "json", "--attrs", "game", gameID, "0xbeef")
		require.NoError(t, err)
		assert.Contains(t, errOut, "0xbeef move 4: "+redrawNotice)

		rows := decodeRows(t, out)
		require.Len(t, rows, 34)

		perGame := map[string]int{}
		for _, row := range rows {
			perGame[row["game"].(string)]++
		}
		assert.Equal(t, map[string]int{gameID: 17, "0xbeef": 17}, perGame)
		assert.Equal(t, gameID, rows[0]["game"])
		assert.Equal(t, "0xbeef", rows[len(rows)-1]["game"])
	})

	t.Run("text headers", func(t *testing.T) {
		out, _, err := runApp(t, "", "replay", "--source", dir, "--color=false", "0xbeef", "testdata/game.json")
		require.NoError(t, err)

		first := strings.Index(out, "0xbeef 1st move: left")
		second := strings.Index(out, gameID+" 1st move: left")
		require.GreaterOrEqual(t, first, 0, out)
		assert.Greater(t, second, first, out)
	})

	t.Run("missing id", func(t *testing.T) {
		_, _, err := runApp(t, "", "replay", "--source", dir, gameID, "0xmissing")
		assert.ErrorContains(t, err, "0xmissing")
	})
}

func TestReplayCommandSourceFromEnv(t *testing.T) {
	dir := gameDir(t)

	args := []string{"tilediff", "replay", "-o", "json", "--move", "2", gameID}
	cfg := filepath.Join(t.TempDir(), "tilediff.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("ledger:\n  empty: 99\n"), 0o600))
	t.Setenv("TILEDIFF_CFG_FILE", cfg)
	t.Setenv(EnvSource, dir)

	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}

	require.NoError(t, app.Run(context.Background(), args))
	rows := decodeRows(t, out.String())
	require.Len(t, rows, 5)
	for _, row := range rows {
		assert.Equal(t, float64(2), row["move"])
	}
}

func TestReplayCommandFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{
			name: "single move",
			args: []string{"--move", "1"},
			want: 8,
		},
		{
			name: "merges across the game",
			args: []string{"--filter", "merge"},
			want: 4,
		},
		{
			name: "direction override",
			args: []string{"--move", "3", "--direction", "right"},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"replay", "-o", "json"}, tt.args...)
			out, _, err := runApp(t, "", append(args, "testdata/game.json")...)
			require.NoError(t, err)
			assert.Len(t, decodeRows(t, out), tt.want)
		})
	}
}

func TestReplayCommandText(t *testing.T) {
	out, _, err := runApp(t, "", "replay", "--color=false", "testdata/game.json")
	require.NoError(t, err)

	first := strings.Index(out, "1st move: left, score 24, new tile at 0,3")
	second := strings.Index(out, "2nd move: up (inferred), score 36, new tile at 3,3")
	fourth := strings.Index(out, "4th move: unknown, score 40")
	require.GreaterOrEqual(t, first, 0, out)
	require.Greater(t, second, first, out)
	require.Greater(t, fourth, second, out)
	assert.Contains(t, out, "slide-up-2")
}

func TestReplayCommandErrors(t *testing.T) {
	dir := gameDir(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no game",
			args: []string{"replay"},
			want: "at least one GAME",
		},
		{
			name: "move with several games",
			args: []string{"replay", "--move", "1", "testdata/game.json", "testdata/game.json"},
			want: "single GAME",
		},
		{
			name: "stdin twice",
			args: []string{"replay", "-", "-"},
			want: "only one game",
		},
		{
			name: "unknown id",
			args: []string{"replay", "--source", dir, "0xmissing"},
			want: "not found",
		},
		{
			name: "move out of range",
			args: []string{"replay", "--move", "9", "testdata/game.json"},
			want: "out of range",
		},
		{
			name: "direction without move",
			args: []string{"replay", "--direction", "up", "testdata/game.json"},
			want: "--move or --pick",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, "", tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSlideCommand(t *testing.T) {
	board := writeFile(t, "board.txt", beforeBoard)

	out, errOut, err := runApp(t, "", "slide", "--direction", "left", board)
	require.NoError(t, err)
	assert.Equal(t, afterBoard, out)
	assert.Empty(t, errOut)

	out, _, err = runApp(t, "", "slide", "-d", "right", "--board", "--color=false", board)
	require.NoError(t, err)
	assert.Contains(t, out, "2→2")
	assert.Contains(t, out, "2→1")
	assert.Contains(t, out, ".+")

	packed := "1 0 . .\n. . . .\n. . . .\n. . . .\n"
	out, errOut, err = runApp(t, packed, "slide", "-d", "left", "-")
	require.NoError(t, err)
	assert.Equal(t, packed, out)
	assert.Contains(t, errOut, "nothing moves left")

	_, _, err = runApp(t, "", "slide", board)
	assert.Error(t, err)
}

func TestShowCommand(t *testing.T) {
	out, _, err := runApp(t, "[[0, null], [null, 3]]", "show", "--color=false", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "16")

	_, _, err = runApp(t, "0 1\n2\n", "show", "-")
	assert.Error(t, err)
}

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{shell: "bash", want: "complete -F _tilediff tilediff"},
		{shell: "zsh", want: "#compdef tilediff"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, _, err := runApp(t, "", "completion", tt.shell)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}

	t.Setenv("SHELL", "/bin/fish")
	_, errOut, err := runApp(t, "", "completion")
	require.NoError(t, err)
	assert.Contains(t, errOut, "usage: tilediff completion")
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tilediff/internal/config"
	"github.com/tfctl/tilediff/internal/differ"
	"github.com/tfctl/tilediff/internal/game"
	"github.com/tfctl/tilediff/internal/ledger"
	"github.com/tfctl/tilediff/internal/meta"
	"github.com/tfctl/tilediff/internal/output"
	"github.com/tfctl/tilediff/internal/tile"
)

// MoveRow is a hint row tagged with the game and move it belongs to, used when
// whole games are emitted as a single dataset.
type MoveRow struct {
	Game string `json:"game"`
	Move int    `json:"move"`
	output.Row
}

// replayCommandAction is the action handler for the "replay" subcommand.
func replayCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(MoveRow{})) {
		return nil
	}

	config.Config.Namespace = "replay"

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("replay needs at least one GAME")
	}
	if len(args) > 1 && (cmd.Bool("pick") || cmd.IsSet("move")) {
		return errors.New("--move and --pick take a single GAME")
	}

	var override *tile.Direction
	if cmd.IsSet("direction") {
		d, err := tile.ParseDirection(cmd.String("direction"))
		if err != nil {
			return err
		}
		override = &d
	}

	raws, err := loadGames(ctx, cmd, args)
	if err != nil {
		return err
	}

	var replays []replay
	for i, raw := range raws {
		g, err := game.DecodeGame(raw, m.Decode)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(args[i]), err)
		}
		log.Debugf("replay: game=%s boards=%d", g.ID, len(g.Boards))

		moves, err := selectMoves(cmd, g, override)
		if err != nil || moves == nil {
			return err
		}

		r := replay{id: g.ID, moves: moves}
		if r.id == "" {
			r.id = displayName(args[i])
		}
		if len(raws) > 1 {
			r.prefix = r.id + " "
		}
		replays = append(replays, r)
	}

	for _, r := range replays {
		for _, mv := range r.moves {
			if mv.Err != nil {
				log.WithError(mv.Err).Warn("hints are partial")
				fmt.Fprintf(stderr(cmd), "warning: %smove %d: %s: %v\n", r.prefix, mv.Seq, redrawNotice, mv.Err)
			}
		}
	}

	if cmd.Bool("board") {
		for _, r := range replays {
			for _, mv := range r.moves {
				fmt.Fprintln(stdout(cmd), r.prefix+moveHeader(mv))
				if err := output.BoardWriter(stdout(cmd), mv.Before, mv.Hints, cmd.Bool("color")); err != nil {
					return err
				}
			}
		}
		return nil
	}

	al, err := BuildAttrs(cmd, "move,"+output.DefaultAttrs)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al)

	// Text output gets one table per move; the structured formats get every
	// game as one dataset.
	if cmd.String("output") == "text" {
		for _, r := range replays {
			for _, mv := range r.moves {
				if err := EmitRows(cmd, moveRows(r.id, mv), al, r.prefix+moveHeader(mv)); err != nil {
					return err
				}
			}
		}
		return nil
	}

	rows := []MoveRow{}
	for _, r := range replays {
		for _, mv := range r.moves {
			rows = append(rows, moveRows(r.id, mv)...)
		}
	}
	return EmitRows(cmd, rows, al, "")
}

// replay is one decoded game and the moves selected from it. prefix labels
// headers and warnings when several games are replayed together.
type replay struct {
	id     string
	prefix string
	moves  []game.Move
}

// loadGames reads each GAME from stdin, a file, or the ledger source. Ledger
// ids are fetched together in one batch; results keep the order of refs.
func loadGames(ctx context.Context, cmd *cli.Command, refs []string) ([][]byte, error) {
	out := make([][]byte, len(refs))

	var (
		ids   []string
		slots []int
		stdin bool
	)
	for i, ref := range refs {
		if ref == "-" || isExistingFile(ref) {
			if ref == "-" {
				if stdin {
					return nil, errors.New("only one game can be read from stdin")
				}
				stdin = true
			}
			raw, err := readInput(cmd, ref)
			if err != nil {
				return nil, err
			}
			out[i] = raw
			continue
		}
		ids = append(ids, ref)
		slots = append(slots, i)
	}

	if len(ids) == 0 {
		return out, nil
	}

	src, err := ledger.NewSource(ctx, cmd.String("source"))
	if err != nil {
		return nil, err
	}

	raws, err := src.Objects(ctx, ids...)
	if ledger.IsNotFound(err) {
		return nil, fmt.Errorf("game not found in %s: %w", src, err)
	}
	if err != nil {
		return nil, err
	}

	for j, raw := range raws {
		out[slots[j]] = raw
	}
	return out, nil
}

// selectMoves resolves --pick, --move or the full history. A nil slice with a
// nil error means the user quit the picker.
func selectMoves(cmd *cli.Command, g *game.Game, override *tile.Direction) ([]game.Move, error) {
	switch {
	case cmd.Bool("pick"):
		if len(g.Boards) < 2 {
			return nil, errors.New("game has fewer than two boards to pick from")
		}
		pair := differ.SelectPair(candidates(g), tea.WithOutput(stderr(cmd)))
		if pair == nil {
			return nil, nil
		}
		prev, next := g.Boards[pair[0].Seq], g.Boards[pair[1].Seq]
		if pair[1].Seq-pair[0].Seq > 1 {
			// The stored direction only describes the last step.
			next.Direction = nil
		}
		return []game.Move{game.Compare(prev, withDirection(next, override), pair[1].Seq)}, nil

	case cmd.IsSet("move"):
		seq := int(cmd.Int("move"))
		mv, err := g.Move(seq)
		if err != nil {
			return nil, err
		}
		if override != nil {
			mv = game.Compare(g.Boards[seq-1], withDirection(g.Boards[seq], override), seq)
		}
		return []game.Move{mv}, nil

	default:
		if override != nil {
			return nil, errors.New("--direction needs --move or --pick")
		}
		moves := g.Moves()
		if moves == nil {
			moves = []game.Move{}
		}
		return moves, nil
	}
}

func withDirection(b game.Board, d *tile.Direction) game.Board {
	if d != nil {
		b.Direction = d
	}
	return b
}

// candidates lists every board of g for the picker.
func candidates(g *game.Game) []differ.Candidate {
	items := make([]differ.Candidate, 0, len(g.Boards))
	for i, b := range g.Boards {
		label := fmt.Sprintf("board %d  score %s  tiles %d", i, humanize.Comma(b.Score), b.Spaces.Count())
		if b.Direction != nil {
			label += "  " + b.Direction.String()
		}
		items = append(items, differ.Candidate{ID: strconv.Itoa(i), Seq: i, Label: label})
	}
	return items
}

// moveHeader renders e.g. "3rd move: left (inferred), score 1,024".
func moveHeader(mv game.Move) string {
	dir := mv.Direction.String()
	switch {
	case errors.Is(mv.Err, game.ErrUnknownDirection):
		dir = "unknown"
	case mv.Inferred:
		dir += " (inferred)"
	}

	header := fmt.Sprintf("%s move: %s, score %s", humanize.Ordinal(mv.Seq), dir, humanize.Comma(mv.Score))
	if mv.Spawned != nil {
		header += fmt.Sprintf(", new tile at %d,%d", mv.Spawned.Row, mv.Spawned.Column)
	}
	return header
}

func moveRows(id string, mv game.Move) []MoveRow {
	rows := []MoveRow{}
	for _, r := range output.Rows(mv.Hints, mv.Before.Size()) {
		rows = append(rows, MoveRow{Game: id, Move: mv.Seq, Row: r})
	}
	return rows
}

// isExistingFile checks if the given path exists and is a file.
func isExistingFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// replayCommandBuilder constructs the cli.Command for "replay".
func replayCommandBuilder(meta meta.Meta) *cli.Command {
	return (&RowCommandBuilder{
		Name:      "replay",
		Usage:     "animation hints for a game's move history",
		UsageText: "tilediff replay GAME... [options]\n\nGAME is a ledger object id, a JSON file, or - for stdin. Ledger ids\nare fetched in one batch.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "board",
				Aliases: []string{"b"},
				Usage:   "render each move's board with hint markers",
			},
			&cli.IntFlag{
				Name:    "move",
				Aliases: []string{"m"},
				Usage:   "replay only the move ending at this board",
			},
			&cli.BoolFlag{
				Name:    "pick",
				Aliases: []string{"p"},
				Usage:   "interactively pick two boards to diff",
			},
			NewSourceFlag("replay", meta.Config.Source),
		},
		Action:    replayCommandAction,
		Meta:      meta,
		Direction: NewDirectionFlag(false),
	}).Build()
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tilediff/internal/differ"
	"github.com/tfctl/tilediff/internal/meta"
	"github.com/tfctl/tilediff/internal/output"
	"github.com/tfctl/tilediff/internal/tile"
)

// slideCommandAction prints the board a move in --direction would produce,
// before any new tile spawns.
func slideCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("slide needs exactly one BOARD, got %d argument(s)", len(args))
	}

	g, _, err := readBoard(cmd, args[0])
	if err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("%s: %w", displayName(args[0]), err)
	}

	d, err := tile.ParseDirection(cmd.String("direction"))
	if err != nil {
		return err
	}

	next, moved := tile.Slide(g, d)
	if !moved {
		fmt.Fprintf(stderr(cmd), "nothing moves %s\n", d)
	}

	if cmd.Bool("board") {
		hints, err := differ.Diff(g, next, d)
		if err != nil {
			return err
		}
		return output.BoardWriter(stdout(cmd), g, hints, cmd.Bool("color"))
	}

	_, err = fmt.Fprintln(stdout(cmd), next.String())
	return err
}

func slideCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "slide",
		Usage:     "preview the board after a move",
		UsageText: "tilediff slide BOARD --direction DIR [--board]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "board",
				Aliases: []string{"b"},
				Usage:   "render the starting board with the move's hint markers",
			},
			NewColorFlag(),
			NewDirectionFlag(true),
		},
		Action: slideCommandAction,
	}
}

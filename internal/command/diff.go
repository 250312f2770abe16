// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tilediff/internal/config"
	"github.com/tfctl/tilediff/internal/differ"
	"github.com/tfctl/tilediff/internal/meta"
	"github.com/tfctl/tilediff/internal/output"
	"github.com/tfctl/tilediff/internal/tile"
)

// diffCommandAction is the action handler for the "diff" subcommand. It reads
// two boards, diffs them for the given direction and emits the hints as rows,
// an annotated board, or both boards' structural delta.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if DumpSchemaIfRequested(cmd, reflect.TypeOf(output.Row{})) {
		return nil
	}

	config.Config.Namespace = "diff"

	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("diff needs BEFORE and AFTER boards, got %d argument(s)", len(args))
	}
	if args[0] == "-" && args[1] == "-" {
		return errors.New("only one board can be read from stdin")
	}

	before, beforeRaw, err := readBoard(cmd, args[0])
	if err != nil {
		return err
	}
	after, afterRaw, err := readBoard(cmd, args[1])
	if err != nil {
		return err
	}

	if !cmd.IsSet("direction") {
		return errors.New("diff needs --direction")
	}
	d, err := tile.ParseDirection(cmd.String("direction"))
	if err != nil {
		return err
	}

	result, err := differ.Diff(before, after, d)
	switch {
	case errors.Is(err, differ.ErrInvariantGap):
		log.WithError(err).Warn("hints are partial")
		fmt.Fprintf(stderr(cmd), "warning: %s: %v\n", redrawNotice, err)
	case err != nil:
		return err
	}

	if cmd.Bool("delta") {
		left, right, err := deltaDocuments(beforeRaw, before, afterRaw, after)
		if err != nil {
			return err
		}
		if err := differ.Delta(stdout(cmd), left, right, cmd.Bool("color")); err != nil {
			return err
		}
	}

	if cmd.Bool("board") {
		return output.BoardWriter(stdout(cmd), before, result, cmd.Bool("color"))
	}

	al, err := BuildAttrs(cmd, output.DefaultAttrs)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al)

	return EmitRows(cmd, output.Rows(result, before.Size()), al, "")
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&RowCommandBuilder{
		Name:      "diff",
		Usage:     "animation hints between two boards",
		UsageText: "tilediff diff BEFORE AFTER --direction DIR [options]\n\nEither board may be - to read stdin.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "board",
				Aliases: []string{"b"},
				Usage:   "render the before board with hint markers",
			},
			&cli.BoolFlag{
				Name:  "delta",
				Usage: "print the structural delta of the two documents",
			},
		},
		Action:    diffCommandAction,
		Meta:      meta,
		Direction: NewDirectionFlag(false),
	}).Build()
}

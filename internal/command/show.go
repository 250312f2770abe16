// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tilediff/internal/meta"
	"github.com/tfctl/tilediff/internal/output"
)

func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("show needs exactly one BOARD, got %d argument(s)", len(args))
	}

	g, _, err := readBoard(cmd, args[0])
	if err != nil {
		return err
	}

	return output.BoardWriter(stdout(cmd), g, nil, cmd.Bool("color"))
}

func showCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "render a board",
		UsageText: "tilediff show BOARD\n\nBOARD may be - to read stdin.",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewColorFlag(),
		},
		Action: showCommandAction,
	}
}

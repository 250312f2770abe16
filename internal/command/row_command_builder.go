// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tilediff/internal/meta"
)

// RowCommandBuilder constructs a cli.Command for the subcommands that emit hint
// rows (diff, replay) using a consistent pattern. It wires metadata, adds the
// schema and direction flags, applies global flags, and sets up validators.
type RowCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta

	// Direction is the --direction flag, or nil when the command has none.
	Direction *cli.StringFlag
}

// Build returns a configured cli.Command from the builder.
func (rcb *RowCommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, rcb.Flags...)
	flags = append(flags, NewSchemaFlag())
	if rcb.Direction != nil {
		flags = append(flags, rcb.Direction)
	}

	return &cli.Command{
		Name:      rcb.Name,
		Usage:     rcb.Usage,
		UsageText: rcb.UsageText,
		Metadata: map[string]any{
			"meta": rcb.Meta,
		},
		Flags: append(flags, NewGlobalFlags(rcb.Name, rcb.Meta.Config.Source)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: rcb.Action,
	}
}

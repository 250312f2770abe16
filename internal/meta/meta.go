// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/tilediff/internal/config"
	"github.com/tfctl/tilediff/internal/game"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the ledger decoding options and the starting
// working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	Decode      game.DecodeOptions
	StartingDir string
}

// New builds the Meta for a run. ledger.empty overrides the sentinel the
// ledger uses for an empty space.
func New(ctx context.Context, args []string, cfg config.Type, dir string) Meta {
	opts := game.DefaultDecodeOptions()
	if v, err := config.GetInt("ledger.empty", opts.EmptyValue); err == nil {
		opts.EmptyValue = v
	}

	return Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		Decode:      opts,
		StartingDir: dir,
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tilediff/internal/config"
	"github.com/tfctl/tilediff/internal/meta"
)

// InitApp builds the root command for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the tilediff
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.Config.Namespace = ns

	// A missing config file is fine; every key has a default.
	cfg, _ := config.Load() //nolint
	meta := meta.New(ctx, args, cfg, sd)

	app := &cli.Command{
		Name:  "tilediff",
		Usage: "2048 board diffs and animation hints",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "tilediff version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands, commands(meta)...)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

func commands(meta meta.Meta) []*cli.Command {
	return []*cli.Command{
		diffCommandBuilder(meta),
		replayCommandBuilder(meta),
		showCommandBuilder(meta),
		slideCommandBuilder(meta),
		completionCommandBuilder(meta),
	}
}

// FlagSpec describes one spelling of a command's flag as it appears in args.
type FlagSpec struct {
	// Name is the canonical spelling, e.g. "--board" for "-b".
	Name string
	// Bool flags never take a separate value token.
	Bool bool
}

// Flags maps every spelling ("--board", "-b") of the named command's flags to
// its FlagSpec. Unknown commands yield an empty map.
func Flags(name string) map[string]FlagSpec {
	specs := map[string]FlagSpec{
		"--help": {Name: "--help", Bool: true},
		"-h":     {Name: "--help", Bool: true},
	}

	for _, c := range commands(meta.Meta{}) {
		if c.Name != name {
			continue
		}
		for _, f := range c.Flags {
			names := f.Names()
			_, isBool := f.(*cli.BoolFlag)
			canonical := spelling(names[0])
			for _, n := range names {
				specs[spelling(n)] = FlagSpec{Name: canonical, Bool: isBool}
			}
		}
	}

	return specs
}

func spelling(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

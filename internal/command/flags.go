// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// EnvSource names the environment variable holding the default ledger source.
const EnvSource = "TILEDIFF_SOURCE"

// NewSchemaFlag constructs the --schema flag.
func NewSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the row schema",
		HideDefault: true,
	}
}

// NewDirectionFlag constructs the --direction flag.
func NewDirectionFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "direction",
		Aliases:  []string{"d"},
		Usage:    "move direction: left, right, up, down (or l, r, u, d, 0-3)",
		Required: required,
		Validator: func(value string) error {
			return FlagValidators(value, DirectionValidator)
		},
	}
}

// NewColorFlag constructs the --color flag, on by default for a terminal.
func NewColorFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Value:   isTerminal(),
	}
}

// NewGlobalFlags returns the output flags shared by every row-emitting
// command. params[0] is the command namespace and params[1], when present, the
// config file used as a fallback source for --output.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   "text",
		Sources: cli.NewValueSourceChain(),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	if len(params) == 2 && params[1] != "" {
		output = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], output)
	}

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		NewColorFlag(),
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		output,
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewSourceFlag constructs the --source flag, optionally namespaced to a
// command and config file. params[1] is the config file.
func NewSourceFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "source",
		Usage: "ledger source: https:// node, s3://bucket/prefix or a directory",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar(EnvSource),
		),
	}

	if len(params) == 2 && params[1] != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// isTerminal reports whether stdout is a terminal, which turns --color on by
// default.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tilediff/internal/meta"
)

const bashCompletionScript = `# bash completion for tilediff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_tilediff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff replay show slide completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --padding --sort -s --titles -t"

    case "$cmd" in
        diff)
            local opts="$common --board -b --delta --direction -d --schema"
            ;;
        replay)
            local opts="$common --board -b --direction -d --move -m --pick -p --schema --source"
            ;;
        show)
            local opts="--color -c"
            ;;
        slide)
            local opts="--board -b --color -c --direction -d"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--direction" || "$prev" == "-d" ]]; then
        COMPREPLY=( $(compgen -W "left right up down" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise we're on a BOARD or GAME positional, so complete files.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _tilediff tilediff
`

const zshCompletionScript = `#compdef tilediff

_tilediff() {
  local -a cmds
  cmds=(
    'diff:animation hints between two boards'
    'replay:animation hints for every move of a game'
    'show:render a board'
    'slide:preview the board after a move'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '--padding[spaces between text columns]:padding'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  local -a direction
  direction=(
  '(-d --direction)'{-d,--direction}'[move direction]:direction:(left right up down)'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'tilediff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C \
        $common \
        $direction \
        '(-b --board)'{-b,--board}'[render the before board]' \
        '--delta[structural delta of the documents]' \
        '--schema[dump schema]' \
        '1:BEFORE:_files' \
        '2:AFTER:_files'
      ;;
    replay)
      _arguments -C \
        $common \
        $direction \
        '(-b --board)'{-b,--board}'[render each board]' \
        '(-m --move)'{-m,--move}'[single move]:move' \
        '(-p --pick)'{-p,--pick}'[pick two boards]' \
        '--schema[dump schema]' \
        '--source[ledger source]:source' \
        '1:GAME:_files'
      ;;
    show)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '1:BOARD:_files'
      ;;
    slide)
      _arguments -C \
        $direction \
        '(-b --board)'{-b,--board}'[render the starting board]' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '1:BOARD:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tilediff tilediff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(stdout(cmd), bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout(cmd), zshCompletionScript)
	default:
		fmt.Fprintln(stderr(cmd), "usage: tilediff completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tilediff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}

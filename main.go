// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/tilediff/internal/cacheutil"
	"github.com/tfctl/tilediff/internal/command"
	"github.com/tfctl/tilediff/internal/config"
	"github.com/tfctl/tilediff/internal/log"
	"github.com/tfctl/tilediff/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument into the flags stored under
// <command>.<set> in the config, at the position the @set appeared. Without
// an @set, <command>.defaults is expanded right after the command.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := "defaults"
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			idx += i
			args = append(args[:idx:idx], args[idx+1:]...)
			break
		}
	}

	entries, _ := config.GetStringSlice(args[1] + "." + set)
	return injectConfigSet(args, entries, idx)
}

// injectConfigSet splits each entry into fields and inserts them into args at
// insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// flagUnit is a flag together with its separate value, if any, or a single
// positional argument.
type flagUnit struct {
	name   string
	tokens []string
}

// deduplicateFlags keeps only the last occurrence of each repeated flag so that
// a flag given on the command line overrides the same flag from an @set. The
// program and command (args[0:2]) and positional arguments are untouched.
// Aliases count as the same flag. Boolean flags of the command never take a
// separate value; any other flag does when the next token does not look like
// a flag. "-" alone is a positional argument (stdin).
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	specs := command.Flags(args[1])

	var units []flagUnit
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]

		if a == "--" {
			for _, p := range rest[i:] {
				units = append(units, flagUnit{tokens: []string{p}})
			}
			break
		}

		if !isFlag(a) {
			units = append(units, flagUnit{tokens: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		spec, known := specs[name]
		if known {
			name = spec.Name
		}
		u := flagUnit{name: name, tokens: []string{a}}
		if !hasValue && !spec.Bool && i+1 < len(rest) && !isFlag(rest[i+1]) && rest[i+1] != "--" {
			u.tokens = append(u.tokens, rest[i+1])
			i++
		}
		units = append(units, u)
	}

	last := map[string]int{}
	for i, u := range units {
		if u.name != "" {
			last[u.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, u := range units {
		if u.name != "" && last[u.name] != i {
			continue
		}
		out = append(out, u.tokens...)
	}
	return out
}

func isFlag(a string) bool {
	return strings.HasPrefix(a, "-") && a != "-"
}

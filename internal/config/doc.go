// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for tilediff's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/tilediff.yaml or $HOME/.config/tilediff.yaml
//   - macOS: $HOME/Library/Application Support/tilediff.yaml
//   - Windows: %AppData%/tilediff.yaml
//
// TILEDIFF_CFG_FILE overrides the location.
package config

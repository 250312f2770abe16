// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tile models the sliding-tile board: cells, square grids, move
// directions, and the text/JSON/YAML forms boards are read from. It also
// carries a local slide simulator used for previews and direction inference.
package tile

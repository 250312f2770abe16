// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output turns diff results into rows and renders them. Rows go
// through the filter, transform, sort and emit pipeline (SliceDiceSpit) as
// text tables, JSON, YAML or raw JSON. Boards render as bordered grids with
// slide and merge markers.
package output

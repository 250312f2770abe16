// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ reconstructs how tiles moved between two board snapshots.
// The ledger only returns the board after a move, so the per-cell slide
// distances and merge termini a renderer animates are recovered here by
// comparing the snapshots. It also renders structural deltas of raw ledger
// documents and hosts the picker used to choose two snapshots to compare.
package differ

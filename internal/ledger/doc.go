// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package ledger resolves where game snapshots come from. The differ only
// ever sees decoded boards; everything about fetching them lives behind the
// Source interface.
package ledger

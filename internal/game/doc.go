// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package game decodes board and game objects as the ledger returns them and
// turns a game's board history into a sequence of diffed moves.
//
// Ledger objects arrive in several envelopes depending on the RPC method and
// node version. Decoding unwraps details.data.fields, data.content.fields and
// fields before reading the payload, so callers can pass whatever the source
// returned.
package game

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package local serves ledger snapshots saved as <id>.json files in a
// directory, for offline replays and fixtures.
package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
)

// ErrNotFound is returned for an id with no snapshot file.
var ErrNotFound = errors.New("snapshot not found")

// SourceLocal implements the ledger Source interface over a directory.
type SourceLocal struct {
	Dir string
	Ext string
}

// Object reads the snapshot for id. The id must be a bare file stem.
func (src *SourceLocal) Object(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return nil, fmt.Errorf("invalid object id %q", id)
	}

	path := filepath.Join(src.Dir, id+src.Ext)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	log.Debugf("local object: id=%s bytes=%d", id, len(data))
	return data, nil
}

// Objects reads each id in order and stops at the first failure.
func (src *SourceLocal) Objects(ctx context.Context, ids ...string) ([][]byte, error) {
	out := make([][]byte, 0, len(ids))
	for _, id := range ids {
		data, err := src.Object(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

func (src *SourceLocal) String() string {
	return "local:" + src.Dir
}

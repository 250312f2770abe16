// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

type SourceLocalOption = func(ctx context.Context, src *SourceLocal) error

// NewSourceLocal returns a SourceLocal reading snapshots from a directory,
// the working directory unless FromDir says otherwise.
func NewSourceLocal(ctx context.Context, options ...SourceLocalOption) (*SourceLocal, error) {
	options = append([]SourceLocalOption{WithDefaults()}, options...)

	src := &SourceLocal{}
	for _, opt := range options {
		if err := opt(ctx, src); err != nil {
			return nil, err
		}
	}

	return src, nil
}

func WithDefaults() SourceLocalOption {
	return func(ctx context.Context, src *SourceLocal) error {
		cwd, _ := os.Getwd()
		src.Dir = cwd
		src.Ext = ".json"
		return nil
	}
}

// FromDir sets the snapshot directory. Relative paths are resolved against
// the working directory. The directory must exist.
func FromDir(dir string) SourceLocalOption {
	return func(ctx context.Context, src *SourceLocal) error {
		if !filepath.IsAbs(dir) {
			cwd, _ := os.Getwd()
			dir = filepath.Join(cwd, dir)
		}

		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("snapshot directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("snapshot directory: %s is not a directory", dir)
		}

		src.Dir = dir
		log.Debugf("NewSourceLocal FromDir(): dir = %s", src.Dir)
		return nil
	}
}

// WithExt changes the snapshot file extension.
func WithExt(ext string) SourceLocalOption {
	return func(ctx context.Context, src *SourceLocal) error {
		if ext != "" {
			src.Ext = ext
		}
		return nil
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/apex/log"

	"github.com/tfctl/tilediff/internal/config"
	"github.com/tfctl/tilediff/internal/ledger/local"
	"github.com/tfctl/tilediff/internal/ledger/rpc"
	"github.com/tfctl/tilediff/internal/ledger/s3"
)

// Source fetches raw ledger objects by id. Implementations return the
// document as the store holds it; decoding is the game package's job.
type Source interface {
	Object(ctx context.Context, id string) ([]byte, error)
	Objects(ctx context.Context, ids ...string) ([][]byte, error)
	String() string
}

// NewSource returns the Source for spec:
//   - http:// or https://  a full node, queried over JSON-RPC
//   - s3://bucket/prefix   an archive of <id>.json snapshots
//   - anything else        a local directory of <id>.json snapshots
//
// The S3 source reads ledger.s3.region, ledger.s3.profile and
// ledger.s3.endpoint from config; the RPC source sends ledger.rpc.headers.
func NewSource(ctx context.Context, spec string) (Source, error) {
	log.Debugf("NewSource: spec=%s", spec)

	switch {
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		var opts []rpc.SourceRPCOption
		for _, h := range configHeaders() {
			opts = append(opts, rpc.WithHeader(h[0], h[1]))
		}
		return rpc.NewSourceRPC(ctx, spec, opts...)

	case strings.HasPrefix(spec, "s3://"):
		region, _ := config.GetString("ledger.s3.region", "")
		profile, _ := config.GetString("ledger.s3.profile", "")
		endpoint, _ := config.GetString("ledger.s3.endpoint", "")
		concurrency, _ := config.GetInt("ledger.s3.concurrency", 8)
		return s3.NewSourceS3(ctx, spec,
			s3.WithRegion(region),
			s3.WithProfile(profile),
			s3.WithEndpoint(endpoint),
			s3.WithConcurrency(concurrency),
		)

	default:
		if spec == "" {
			return local.NewSourceLocal(ctx)
		}
		return local.NewSourceLocal(ctx, local.FromDir(spec))
	}
}

// IsNotFound reports whether err means the object does not exist, whichever
// source produced it.
func IsNotFound(err error) bool {
	return errors.Is(err, local.ErrNotFound) ||
		errors.Is(err, rpc.ErrNotFound) ||
		errors.Is(err, s3.ErrNotFound)
}

// configHeaders reads ledger.rpc.headers as "Key: value" strings.
func configHeaders() [][2]string {
	raw, err := config.GetStringSlice("ledger.rpc.headers")
	if err != nil {
		return nil
	}

	var headers [][2]string
	for _, h := range raw {
		k, v, ok := strings.Cut(h, ":")
		if !ok {
			log.Warnf("ignoring malformed header %q", h)
			continue
		}
		headers = append(headers, [2]string{strings.TrimSpace(k), strings.TrimSpace(v)})
	}
	return headers
}

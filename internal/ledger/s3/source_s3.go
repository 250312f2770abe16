// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package s3 serves archived ledger snapshots stored as
// <prefix>/<id>.json objects in an S3 bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/errgroup"

	awsx "github.com/tfctl/tilediff/internal/aws"
	"github.com/tfctl/tilediff/internal/cacheutil"
	"github.com/tfctl/tilediff/internal/config"
)

// ErrNotFound is returned when no archived snapshot exists for an id.
var ErrNotFound = errors.New("snapshot not found")

// GetObjectAPI is the slice of the S3 client SourceS3 needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// SourceS3 implements the ledger Source interface over an S3 archive.
// Archived snapshots never change, so fetched bodies are cached on disk.
type SourceS3 struct {
	Bucket      string
	Prefix      string
	Ext         string
	Endpoint    string
	Concurrency int

	client  GetObjectAPI
	cache   cacheutil.Namespace
	awsOpts []awsx.Option
	purge   sync.Once
}

// Key returns the object key holding the snapshot for id.
func (src *SourceS3) Key(id string) string {
	return path.Join(src.Prefix, id+src.Ext)
}

// Object fetches one archived snapshot, from the disk cache when possible.
// The first read of a source purges stale cache entries.
func (src *SourceS3) Object(ctx context.Context, id string) ([]byte, error) {
	src.purge.Do(func() {
		if err := PurgeCache(); err != nil {
			log.WithError(err).Warn("failed to purge cache")
		}
	})

	if entry, ok := src.cache.Read(id); ok {
		return entry.Data, nil
	}

	key := src.Key(id)
	result, err := src.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(src.Bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("s3://%s/%s: %w", src.Bucket, key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	if err := src.cache.Write(id, data); err != nil {
		log.WithError(err).Warn("failed to write snapshot to cache")
	}
	return data, nil
}

// Objects fetches snapshots concurrently, at most Concurrency at a time. The
// first failure cancels the rest.
func (src *SourceS3) Objects(ctx context.Context, ids ...string) ([][]byte, error) {
	out := make([][]byte, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(src.Concurrency)

	for i, id := range ids {
		g.Go(func() error {
			data, err := src.Object(gctx, id)
			if err != nil {
				return err
			}
			out[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (src *SourceS3) String() string {
	return fmt.Sprintf("s3://%s/%s", src.Bucket, src.Prefix)
}

// PurgeCache drops cached snapshots older than cache.clean hours.
func PurgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean", 0)
	return cacheutil.Purge(cleanHours)
}

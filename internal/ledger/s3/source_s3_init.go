// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/apex/log"

	awsx "github.com/tfctl/tilediff/internal/aws"
	"github.com/tfctl/tilediff/internal/cacheutil"
)

type SourceS3Option = func(ctx context.Context, src *SourceS3) error

// NewSourceS3 returns a SourceS3 for an s3://bucket/prefix spec. Without
// WithClient an S3 client is built from the shell's AWS configuration.
func NewSourceS3(ctx context.Context, spec string, options ...SourceS3Option) (*SourceS3, error) {
	u, err := url.Parse(spec)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return nil, fmt.Errorf("invalid s3 source %q: want s3://bucket/prefix", spec)
	}

	options = append([]SourceS3Option{WithDefaults()}, options...)

	src := &SourceS3{
		Bucket: u.Host,
		Prefix: strings.Trim(u.Path, "/"),
	}
	for _, opt := range options {
		if err := opt(ctx, src); err != nil {
			return nil, err
		}
	}

	if src.client == nil {
		cfg, err := awsx.LoadAWSConfig(ctx, src.awsOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		src.client = awsx.NewS3(cfg, awsx.WithS3Endpoint(src.Endpoint))
	}

	if src.cache == nil {
		src.cache = cacheutil.Namespace{"s3", src.Bucket, src.Prefix}
	}

	log.Debugf("NewSourceS3: bucket=%s prefix=%s", src.Bucket, src.Prefix)
	return src, nil
}

func WithDefaults() SourceS3Option {
	return func(ctx context.Context, src *SourceS3) error {
		src.Concurrency = 8
		src.Ext = ".json"
		return nil
	}
}

// WithClient injects the object getter, mostly for tests.
func WithClient(client GetObjectAPI) SourceS3Option {
	return func(ctx context.Context, src *SourceS3) error {
		src.client = client
		return nil
	}
}

// WithRegion overrides the region from the AWS config chain.
func WithRegion(region string) SourceS3Option {
	return func(ctx context.Context, src *SourceS3) error {
		if region != "" {
			src.awsOpts = append(src.awsOpts, awsx.WithRegion(region))
		}
		return nil
	}
}

// WithProfile selects a shared config profile.
func WithProfile(profile string) SourceS3Option {
	return func(ctx context.Context, src *SourceS3) error {
		if profile != "" {
			src.awsOpts = append(src.awsOpts, awsx.WithProfile(profile))
		}
		return nil
	}
}

// WithEndpoint targets an S3-compatible store instead of AWS.
func WithEndpoint(endpoint string) SourceS3Option {
	return func(ctx context.Context, src *SourceS3) error {
		src.Endpoint = endpoint
		return nil
	}
}

// WithConcurrency bounds parallel GetObject calls in Objects.
func WithConcurrency(n int) SourceS3Option {
	return func(ctx context.Context, src *SourceS3) error {
		if n < 1 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}
		src.Concurrency = n
		return nil
	}
}

// WithCache overrides the cache namespace; a nil namespace keeps the
// default bucket/prefix scoping.
func WithCache(ns cacheutil.Namespace) SourceS3Option {
	return func(ctx context.Context, src *SourceS3) error {
		src.cache = ns
		return nil
	}
}

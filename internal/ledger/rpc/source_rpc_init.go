// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/apex/log"
	"github.com/hashicorp/go-cleanhttp"
)

type SourceRPCOption = func(ctx context.Context, src *SourceRPC) error

// NewSourceRPC returns a SourceRPC talking to the node at endpoint.
func NewSourceRPC(ctx context.Context, endpoint string, options ...SourceRPCOption) (*SourceRPC, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid rpc endpoint %q", endpoint)
	}

	options = append([]SourceRPCOption{WithDefaults()}, options...)

	src := &SourceRPC{Endpoint: u.String()}
	for _, opt := range options {
		if err := opt(ctx, src); err != nil {
			return nil, err
		}
	}

	log.Debugf("NewSourceRPC: endpoint=%s", src.Endpoint)
	return src, nil
}

func WithDefaults() SourceRPCOption {
	return func(ctx context.Context, src *SourceRPC) error {
		src.client = cleanhttp.DefaultPooledClient()
		src.ShowContent = true
		return nil
	}
}

// WithHTTPClient replaces the pooled client, mostly for tests.
func WithHTTPClient(client *http.Client) SourceRPCOption {
	return func(ctx context.Context, src *SourceRPC) error {
		if client != nil {
			src.client = client
		}
		return nil
	}
}

// WithHeader adds a header to every request, e.g. an API key for a hosted
// node.
func WithHeader(key, value string) SourceRPCOption {
	return func(ctx context.Context, src *SourceRPC) error {
		if src.headers == nil {
			src.headers = http.Header{}
		}
		src.headers.Set(key, value)
		return nil
	}
}

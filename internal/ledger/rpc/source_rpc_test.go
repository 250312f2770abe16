// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameObject = `{"data":{"objectId":"0xgame","content":{"dataType":"moveObject","fields":{"id":{"id":"0xgame"},"boards":[]}}}}`

// node is a fake full node that records requests and answers from a table
// keyed by object id.
type node struct {
	mu       sync.Mutex
	requests []request
	headers  []http.Header
	objects  map[string]string
	status   int
	rpcError string
}

func (n *node) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var req request
	_ = json.Unmarshal(body, &req)

	n.mu.Lock()
	n.requests = append(n.requests, req)
	n.headers = append(n.headers, r.Header.Clone())
	n.mu.Unlock()

	if n.status != 0 {
		w.WriteHeader(n.status)
		return
	}
	if n.rpcError != "" {
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"`+n.rpcError+`"}}`)
		return
	}

	lookup := func(id string) string {
		if obj, ok := n.objects[id]; ok {
			return obj
		}
		return `{"error":{"code":"notExists","object_id":"` + id + `"}}`
	}

	var result string
	switch req.Method {
	case methodGetObject:
		result = lookup(req.Params[0].(string))
	case methodMultiGetObject:
		result = "["
		for i, id := range req.Params[0].([]any) {
			if i > 0 {
				result += ","
			}
			result += lookup(id.(string))
		}
		result += "]"
	}
	_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":"`+req.ID+`","result":`+result+`}`)
}

func newTestSource(t *testing.T, n *node, opts ...SourceRPCOption) *SourceRPC {
	t.Helper()
	srv := httptest.NewServer(n)
	t.Cleanup(srv.Close)

	opts = append([]SourceRPCOption{WithHTTPClient(srv.Client())}, opts...)
	src, err := NewSourceRPC(context.Background(), srv.URL, opts...)
	require.NoError(t, err)
	return src
}

func TestObject(t *testing.T) {
	n := &node{objects: map[string]string{"0xgame": gameObject}}
	src := newTestSource(t, n, WithHeader("X-Api-Key", "secret"))

	data, err := src.Object(context.Background(), "0xgame")
	require.NoError(t, err)
	assert.JSONEq(t, gameObject, string(data))

	require.Len(t, n.requests, 1)
	req := n.requests[0]
	assert.Equal(t, "2.0", req.JSONRPC)
	assert.Equal(t, methodGetObject, req.Method)
	_, err = uuid.Parse(req.ID)
	assert.NoError(t, err)
	assert.Equal(t, "0xgame", req.Params[0])
	assert.Equal(t, map[string]any{"showContent": true, "showType": true}, req.Params[1])
	assert.Equal(t, "secret", n.headers[0].Get("X-Api-Key"))
	assert.Equal(t, "application/json", n.headers[0].Get("Content-Type"))
}

func TestObjectNotFound(t *testing.T) {
	src := newTestSource(t, &node{})

	_, err := src.Object(context.Background(), "0xmissing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "0xmissing")
}

func TestObjectLegacyStatus(t *testing.T) {
	n := &node{objects: map[string]string{
		"0xold":  `{"status":"Exists","details":{"data":{"fields":{"boards":[]}}}}`,
		"0xgone": `{"status":"Deleted","details":"0xgone"}`,
	}}
	src := newTestSource(t, n)

	_, err := src.Object(context.Background(), "0xold")
	assert.NoError(t, err)

	_, err = src.Object(context.Background(), "0xgone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObjects(t *testing.T) {
	n := &node{objects: map[string]string{
		"0xa": `{"data":{"objectId":"0xa"}}`,
		"0xb": `{"data":{"objectId":"0xb"}}`,
	}}
	src := newTestSource(t, n)

	out, err := src.Objects(context.Background(), "0xb", "0xa")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.JSONEq(t, `{"data":{"objectId":"0xb"}}`, string(out[0]))
	assert.JSONEq(t, `{"data":{"objectId":"0xa"}}`, string(out[1]))
	require.Len(t, n.requests, 1)
	assert.Equal(t, methodMultiGetObject, n.requests[0].Method)

	_, err = src.Objects(context.Background(), "0xa", "0xnope")
	assert.ErrorIs(t, err, ErrNotFound)

	out, err = src.Objects(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestErrors(t *testing.T) {
	src := newTestSource(t, &node{rpcError: "Invalid params"})
	_, err := src.Object(context.Background(), "0xa")
	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32602, rpcErr.Code)
	assert.Equal(t, methodGetObject, rpcErr.Method)
	assert.Contains(t, err.Error(), "Invalid params")

	src = newTestSource(t, &node{status: http.StatusTooManyRequests})
	_, err = src.Objects(context.Background(), "0xa")
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, http.StatusTooManyRequests, rpcErr.Code)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newTestSource(t, &node{}).Object(ctx, "0xa")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSourceRPC(t *testing.T) {
	for _, bad := range []string{"", "ftp://node", "fullnode.devnet", "https://"} {
		_, err := NewSourceRPC(context.Background(), bad)
		assert.Error(t, err, bad)
	}

	src, err := NewSourceRPC(context.Background(), "https://fullnode.devnet.sui.io:443")
	require.NoError(t, err)
	assert.Equal(t, "rpc:https://fullnode.devnet.sui.io:443", src.String())
	assert.NotNil(t, src.client)
}

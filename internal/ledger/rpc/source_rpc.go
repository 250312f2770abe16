// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package rpc reads game and board objects from a ledger full node over
// JSON-RPC 2.0.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	methodGetObject      = "sui_getObject"
	methodMultiGetObject = "sui_multiGetObjects"
)

// SourceRPC implements the ledger Source interface against a full node.
type SourceRPC struct {
	Endpoint string
	// ShowContent asks the node to include the parsed Move fields.
	ShowContent bool

	client  *http.Client
	headers http.Header
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Object fetches one object. The returned document is the node's result
// unchanged; decoders unwrap the envelope.
func (src *SourceRPC) Object(ctx context.Context, id string) ([]byte, error) {
	result, err := src.call(ctx, methodGetObject, id, src.options())
	if err != nil {
		return nil, err
	}
	if err := checkObject(id, gjson.ParseBytes(result)); err != nil {
		return nil, err
	}
	return result, nil
}

// Objects fetches a batch of objects in one round trip, in the order asked.
func (src *SourceRPC) Objects(ctx context.Context, ids ...string) ([][]byte, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	result, err := src.call(ctx, methodMultiGetObject, ids, src.options())
	if err != nil {
		return nil, err
	}

	items := gjson.ParseBytes(result).Array()
	if len(items) != len(ids) {
		return nil, fmt.Errorf("%s: asked for %d objects, got %d", methodMultiGetObject, len(ids), len(items))
	}

	out := make([][]byte, len(ids))
	for i, item := range items {
		if err := checkObject(ids[i], item); err != nil {
			return nil, err
		}
		out[i] = []byte(item.Raw)
	}
	return out, nil
}

func (src *SourceRPC) String() string {
	return "rpc:" + src.Endpoint
}

func (src *SourceRPC) options() map[string]bool {
	return map[string]bool{"showContent": src.ShowContent, "showType": true}
}

// call posts a single JSON-RPC request and returns its raw result.
func (src *SourceRPC) call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, src.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range src.headers {
		req.Header[k] = v
	}

	log.Debugf("rpc call: method=%s endpoint=%s", method, src.Endpoint)

	resp, err := src.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Method: method, Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if r.Error != nil {
		r.Error.Method = method
		return nil, r.Error
	}
	if len(r.Result) == 0 || gjson.ParseBytes(r.Result).Type == gjson.Null {
		return nil, fmt.Errorf("%s: empty result", method)
	}
	return r.Result, nil
}

// checkObject maps the two shapes a missing object takes: the older
// {"status":"NotExists"} and the newer {"error":{"code":"notExists"}}.
func checkObject(id string, obj gjson.Result) error {
	if status := obj.Get("status"); status.Exists() && status.String() != "Exists" {
		return objectError(id, lowerFirst(status.String()))
	}
	if e := obj.Get("error"); e.Exists() && e.Type != gjson.Null {
		return objectError(id, e.Get("code").String())
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the node reports an object does not exist or
// was deleted.
var ErrNotFound = errors.New("object not found")

// Error is a JSON-RPC error object returned by the node, or a transport
// failure at the HTTP layer (Code is then the HTTP status).
type Error struct {
	Method  string `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: rpc error %d: %s", e.Method, e.Code, e.Message)
}

// objectError reports a per-object failure inside a successful response,
// e.g. {"error":{"code":"notExists","object_id":"0x.."}}.
func objectError(id, code string) error {
	switch code {
	case "notExists", "deleted", "":
		return fmt.Errorf("%s: %s: %w", id, code, ErrNotFound)
	default:
		return fmt.Errorf("%s: %s", id, code)
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Delta writes a structural delta between two JSON documents, typically the
// raw ledger objects a pair of boards was decoded from. Both documents must be
// objects or both arrays.
func Delta(w io.Writer, before, after []byte, color bool) error {
	log.Debugf("delta: len(before)=%d len(after)=%d", len(before), len(after))

	if len(before) == 0 || len(after) == 0 {
		return nil
	}

	var (
		left  interface{}
		delta gojsondiff.Diff
	)

	if isArray(before) != isArray(after) {
		return errors.New("cannot compare a JSON array with a JSON object")
	}

	differ := gojsondiff.New()

	if isArray(before) {
		var l, r []interface{}
		if err := json.Unmarshal(before, &l); err != nil {
			return fmt.Errorf("failed to unmarshal before: %w", err)
		}
		if err := json.Unmarshal(after, &r); err != nil {
			return fmt.Errorf("failed to unmarshal after: %w", err)
		}
		delta = differ.CompareArrays(l, r)
		left = l
	} else {
		var err error
		delta, err = differ.Compare(before, after)
		if err != nil {
			return fmt.Errorf("failed to compare documents: %w", err)
		}

		var jdoc map[string]interface{}
		if err := json.Unmarshal(before, &jdoc); err != nil {
			return fmt.Errorf("failed to unmarshal before: %w", err)
		}
		left = jdoc
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The boards are identical.")
		return nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	}

	out, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, out)
	return nil
}

func isArray(doc []byte) bool {
	trimmed := bytes.TrimSpace(doc)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelta(t *testing.T) {
	tests := []struct {
		name     string
		before   string
		after    string
		contains []string
		empty    bool
	}{
		{
			name:     "identical objects",
			before:   `{"board":[[0,null],[null,null]],"score":4}`,
			after:    `{"board":[[0,null],[null,null]],"score":4}`,
			contains: []string{"The boards are identical."},
		},
		{
			name:     "changed score",
			before:   `{"board":[[0,null],[null,null]],"score":4}`,
			after:    `{"board":[[0,null],[null,null]],"score":12}`,
			contains: []string{`"score": 4`, `"score": 12`},
		},
		{
			name:     "arrays",
			before:   `[[0,0],[null,null]]`,
			after:    `[[1,null],[null,null]]`,
			contains: []string{"0:", "1:"},
		},
		{
			name:  "missing document",
			after: `{}`,
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Delta(&buf, []byte(tt.before), []byte(tt.after), false)
			require.NoError(t, err)

			if tt.empty {
				assert.Empty(t, buf.String())
				return
			}
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestDeltaErrors(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{
			name:   "invalid json",
			before: `{"board":`,
			after:  `{}`,
			want:   "compare",
		},
		{
			name:   "array against object",
			before: `[[0,null],[null,null]]`,
			after:  `{"fields":{"spaces":[[0,99],[99,99]]}}`,
			want:   "array with a JSON object",
		},
		{
			name:   "object against array",
			before: `{"score":4}`,
			after:  `[[0]]`,
			want:   "array with a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Delta(&buf, []byte(tt.before), []byte(tt.after), false)
			assert.ErrorContains(t, err, tt.want)
			assert.Empty(t, buf.String())
		})
	}
}

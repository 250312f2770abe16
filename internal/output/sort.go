// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"slices"
	"strings"
)

// sortKey is one comma-separated term of a --sort spec.
type sortKey struct {
	field         string
	descending    bool
	caseSensitive bool
}

func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, term := range strings.Split(spec, ",") {
		term = strings.TrimSpace(term)

		var k sortKey
		if rest, ok := strings.CutPrefix(term, "-"); ok {
			k.descending = true
			term = rest
		}
		if rest, ok := strings.CutPrefix(term, "!"); ok {
			k.caseSensitive = true
			term = rest
		}

		if term != "" {
			k.field = term
			keys = append(keys, k)
		}
	}
	return keys
}

// SortDataset orders hint rows in place by spec, a comma-separated list of
// row attributes such as "direction,-index". Each term may start with "-" to
// sort that attribute descending, then "!" to compare strings case-sensitively
// ("-!class"). Numbers compare numerically, false sorts before true, and
// everything else compares as text. Ties keep their input order.
func SortDataset(dataset []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	slices.SortStableFunc(dataset, func(a, b map[string]interface{}) int {
		for _, k := range keys {
			c := compareValues(a[k.field], b[k.field], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return -c
			}
			return c
		}
		return 0
	})
}

func compareValues(a, b interface{}, caseSensitive bool) int {
	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	}

	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case y:
				return -1
			}
			return 1
		}
	}

	x, y := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		x, y = strings.ToLower(x), strings.ToLower(y)
	}
	return strings.Compare(x, y)
}

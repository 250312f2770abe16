// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows hint rows with --filter expressions.
//
// Filters are key-operator-target expressions joined by a delimiter (default
// ",", overridable with TILEDIFF_FILTER_DELIM). Operators:
//
//   - = : exact match (negate with !=)
//   - ^ : prefix match (negate with !^)
//   - ~ : case-insensitive contains (negate with !~)
//   - < : less than, numeric when both sides are numbers
//   - > : greater than, numeric when both sides are numbers
//   - @ : substring, or membership for list values (negate with !@)
//   - / : regular expression match (negate with !/)
//
// A bare key keeps rows whose value is set and not false or zero.
//
// Examples:
//
//   - "merge" : merge termini only
//   - "slide>1" : tiles that travelled more than one cell
//   - "class~LEFT" : anything sliding left
//   - "direction!=up" : everything not moving up
//
// Filter keys are matched against the OutputKey of attributes (see attrs
// package). Unknown keys are reported and skipped so the remaining filters
// still apply.
package filters

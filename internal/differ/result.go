// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/tfctl/tilediff/internal/tile"
)

var (
	// ErrPrecondition is returned when the snapshots cannot be compared at all:
	// a grid is not square or the sizes differ.
	ErrPrecondition = errors.New("precondition violated")
	// ErrInvariantGap is matched by a *GapError. It means after is not
	// reachable from before by the stated move.
	ErrInvariantGap = errors.New("invariant gap")
)

// GapError lists destinations that changed but had no source tile left in
// their line.
type GapError struct {
	Direction tile.Direction
	Indexes   []int
}

func (e *GapError) Error() string {
	return fmt.Sprintf("no source tile for destinations %v moving %s", e.Indexes, e.Direction)
}

// Is makes errors.Is(err, ErrInvariantGap) hold.
func (e *GapError) Is(target error) bool {
	return target == ErrInvariantGap
}

// Hint is the animation record for one linear index. Slide is the distance
// the tile that started here travelled (0 means no slide annotation). Merge
// marks the cell as the terminus of a merge. Both may be set.
type Hint struct {
	Direction tile.Direction
	Slide     int
	Merge     bool
}

// HasSlide reports whether the hint carries a slide annotation.
func (h Hint) HasSlide() bool {
	return h.Slide > 0
}

// Map returns the keyed form {"<direction>": distance, "merge": true}.
func (h Hint) Map() map[string]interface{} {
	m := map[string]interface{}{}
	if h.HasSlide() {
		m[h.Direction.String()] = h.Slide
	}
	if h.Merge {
		m["merge"] = true
	}
	return m
}

// MarshalJSON emits the keyed form.
func (h Hint) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Map())
}

// MarshalYAML emits the keyed form.
func (h Hint) MarshalYAML() (interface{}, error) {
	return h.Map(), nil
}

// Result maps a linear index (row*size+column) to its hint. A missing key
// means nothing visible changed at that index.
type Result map[int]Hint

// Indexes returns the annotated indexes in ascending order.
func (r Result) Indexes() []int {
	indexes := make([]int, 0, len(r))
	for i := range r {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes
}

// Merges returns the merge termini in ascending order.
func (r Result) Merges() []int {
	var merges []int
	for _, i := range r.Indexes() {
		if r[i].Merge {
			merges = append(merges, i)
		}
	}
	return merges
}

// Slides returns index -> distance for every slide annotation.
func (r Result) Slides() map[int]int {
	slides := map[int]int{}
	for i, h := range r {
		if h.HasSlide() {
			slides[i] = h.Slide
		}
	}
	return slides
}

func (r Result) slide(index int, d tile.Direction, distance int) {
	h := r[index]
	h.Direction = d
	h.Slide = distance
	r[index] = h
}

func (r Result) merge(index int, d tile.Direction) {
	h := r[index]
	h.Direction = d
	h.Merge = true
	r[index] = h
}

// Package curation derives display lists from fetched collections.
//
// Every rule is a filter, then a stable sort, then a limit. Input slices are
// never modified; Apply always returns a fresh slice.
package curation

import (
	"math"
	"sort"
	"time"
)

// SortKey is the ordering value of an item. Absent keys order as the zero
// value (0 or the epoch), which places them first ascending and last descending.
type SortKey struct {
	n float64
}

// NumberKey returns a key for an optional number. Nil and NaN order as 0.
func NumberKey(v *float64) SortKey {
	if v == nil || math.IsNaN(*v) {
		return SortKey{}
	}
	return SortKey{n: *v}
}

// TimeKey returns a key for an optional timestamp. Nil orders as the epoch.
func TimeKey(t *time.Time) SortKey {
	if t == nil || t.IsZero() {
		return SortKey{}
	}
	return SortKey{n: float64(t.UnixMilli())}
}

// Less reports whether k orders before other
func (k SortKey) Less(other SortKey) bool {
	return k.n < other.n
}

// Spec describes a curation rule. A nil Filter keeps everything, a nil Key
// keeps the received order, and a Limit of zero or less means no limit.
type Spec[T any] struct {
	Filter     func(T) bool
	Key        func(T) SortKey
	Descending bool
	Limit      int
}

// Apply runs the rule against items
func Apply[T any](items []T, spec Spec[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if spec.Filter != nil && !spec.Filter(item) {
			continue
		}
		out = append(out, item)
	}

	if spec.Key != nil {
		keys := make([]SortKey, len(out))
		idx := make([]int, len(out))
		for i := range out {
			keys[i] = spec.Key(out[i])
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			ka, kb := keys[idx[a]], keys[idx[b]]
			if spec.Descending {
				return kb.Less(ka)
			}
			return ka.Less(kb)
		})
		sorted := make([]T, len(out))
		for i, j := range idx {
			sorted[i] = out[j]
		}
		out = sorted
	}

	if spec.Limit > 0 && len(out) > spec.Limit {
		out = out[:spec.Limit:spec.Limit]
	}
	return out
}

// ByNumber orders by an optional numeric field
func ByNumber[T any](field func(T) *float64) func(T) SortKey {
	return func(item T) SortKey {
		return NumberKey(field(item))
	}
}

// ByTime orders by an optional timestamp field
func ByTime[T any](field func(T) *time.Time) func(T) SortKey {
	return func(item T) SortKey {
		return TimeKey(field(item))
	}
}

// First keeps the first n items as received
func First[T any](n int) Spec[T] {
	return Spec[T]{Limit: n}
}

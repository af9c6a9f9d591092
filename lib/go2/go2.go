// Package go2 contains general utility helpers that should've been in Go. Maybe they'll be in Go 2.0.
package go2

import (
	"golang.org/x/exp/constraints"
)

func Pointer[T any](v T) *T {
	return &v
}

// Copy returns a pointer to a copy of *p, or nil.
func Copy[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return Pointer(*p)
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Uniq returns els without repeats, keeping first occurrences in order.
func Uniq[T comparable](els []T) []T {
	seen := make(map[T]struct{}, len(els))
	out := make([]T, 0, len(els))
	for _, el := range els {
		if _, ok := seen[el]; ok {
			continue
		}
		seen[el] = struct{}{}
		out = append(out, el)
	}
	return out
}

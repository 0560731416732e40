// Package sampler provides the discrete weighted sampler shared by every
// weighted draw in the engine, and deterministic PCG random substreams.
package sampler

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
)

// Source is the subset of *rand.Rand used by the engine.
type Source interface {
	IntN(n int) int
	Float64() float64
}

var ErrEmptyTable = errors.New("weighted table has no positive weights")

// Weighted draws values proportionally to their weights.
// Values are kept in ascending order so that draws do not depend on map iteration order.
type Weighted[T cmp.Ordered] struct {
	values []T
	cum    []float64
	total  float64
}

// New builds a sampler from a value -> weight table. Zero weights are dropped,
// negative weights are an error.
func New[T cmp.Ordered](table map[T]float64) (*Weighted[T], error) {
	keys := make([]T, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	w := &Weighted[T]{}
	for _, k := range keys {
		weight := table[k]
		if weight < 0 {
			return nil, fmt.Errorf("negative weight %v for value %v", weight, k)
		}
		if weight == 0 {
			continue
		}
		w.total += weight
		w.values = append(w.values, k)
		w.cum = append(w.cum, w.total)
	}
	if len(w.values) == 0 {
		return nil, ErrEmptyTable
	}
	return w, nil
}

// Draw returns one value.
func (w *Weighted[T]) Draw(src Source) T {
	if len(w.values) == 1 {
		return w.values[0]
	}
	x := src.Float64() * w.total
	i := sort.SearchFloat64s(w.cum, x)
	// SearchFloat64s returns the first cum >= x; an exact hit on a boundary belongs to the next value
	if i < len(w.cum) && w.cum[i] == x {
		i++
	}
	if i >= len(w.values) {
		i = len(w.values) - 1
	}
	return w.values[i]
}

// Max returns the largest value of the support.
func (w *Weighted[T]) Max() T {
	return w.values[len(w.values)-1]
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Stream returns an independent PCG stream for (seed, stream).
func Stream(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, mix(stream)))
}

// mix spreads small stream indices (splitmix64 finalizer).
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Hash64 is FNV-1a over s, used to derive per-mode seeds.
func Hash64(s string) uint64 {
	h := uint64(14695981039346656037)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

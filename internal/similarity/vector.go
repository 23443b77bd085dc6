// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package similarity

import (
	"fmt"
	"math"
	"sort"
)

// Vector is a sparse feature vector. Indices and Values are parallel slices.
type Vector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of stored entries.
func (v Vector) Len() int {
	return len(v.Indices)
}

// normalize returns a copy of v sorted by feature index with duplicate
// indices summed and zero weights dropped.
func (v Vector) normalize(dim int) (Vector, error) {
	if len(v.Indices) != len(v.Values) {
		return Vector{}, fmt.Errorf("vector has %d indices but %d values", len(v.Indices), len(v.Values))
	}

	order := make([]int, len(v.Indices))
	for k := range order {
		f := v.Indices[k]
		if f < 0 || f >= dim {
			return Vector{}, fmt.Errorf("feature %d not in [0, %d)", f, dim)
		}
		w := v.Values[k]
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return Vector{}, fmt.Errorf("feature %d has non-finite weight", f)
		}
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool {
		return v.Indices[order[a]] < v.Indices[order[b]]
	})

	out := Vector{
		Indices: make([]int, 0, len(order)),
		Values:  make([]float64, 0, len(order)),
	}
	for _, k := range order {
		f, w := v.Indices[k], v.Values[k]
		if n := len(out.Indices); n > 0 && out.Indices[n-1] == f {
			out.Values[n-1] += w
			continue
		}
		out.Indices = append(out.Indices, f)
		out.Values = append(out.Values, w)
	}

	// drop entries that cancelled out or were stored as explicit zeros
	kept := 0
	for k := range out.Indices {
		if out.Values[k] == 0 {
			continue
		}
		out.Indices[kept] = out.Indices[k]
		out.Values[kept] = out.Values[k]
		kept++
	}
	out.Indices = out.Indices[:kept]
	out.Values = out.Values[:kept]

	return out, nil
}

// scaled returns a copy of a normalized vector with every weight divided by
// the largest absolute weight. Cosine is scale invariant, and weights in
// [-1, 1] keep norm and dot products finite for any finite input.
func (v Vector) scaled() Vector {
	var peak float64
	for _, w := range v.Values {
		peak = math.Max(peak, math.Abs(w))
	}
	if peak == 0 || peak == 1 {
		return v
	}
	out := Vector{
		Indices: v.Indices,
		Values:  make([]float64, len(v.Values)),
	}
	for k, w := range v.Values {
		out.Values[k] = w / peak
	}
	return out
}

// norm returns the L2 norm of a normalized vector.
func (v Vector) norm() float64 {
	var sum float64
	for _, w := range v.Values {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// dot computes the dot product of two normalized vectors, accumulating
// shared features in ascending index order with the a-side weight first.
func dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] < b.Indices[j]:
			i++
		case a.Indices[i] > b.Indices[j]:
			j++
		default:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		}
	}
	return sum
}

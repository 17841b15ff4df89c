package core

import (
	"fmt"
	"math"
)

// PointSet holds n points in R^d as a flat row-major float64 slice.
// It is immutable once handed to a summation engine's precomputation step.
type PointSet struct {
	data []float64 // row-major coordinates, length n*d
	n    int       // number of points
	d    int       // dimension of each point
}

// NewPointSet creates a point set from flat row-major coordinates.
// The slice is not copied; the caller must not mutate it afterwards.
func NewPointSet(coords []float64, dim int) (*PointSet, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: dimension %d", ErrDimensionMismatch, dim)
	}
	if len(coords) == 0 || len(coords)%dim != 0 {
		return nil, fmt.Errorf("%w: %d coordinates are not a multiple of dimension %d",
			ErrDimensionMismatch, len(coords), dim)
	}
	for i, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: coordinate %d", ErrNonFiniteInput, i)
		}
	}
	return &PointSet{data: coords, n: len(coords) / dim, d: dim}, nil
}

// Len returns the number of points.
func (p *PointSet) Len() int { return p.n }

// Dim returns the dimension of each point.
func (p *PointSet) Dim() int { return p.d }

// At returns the coordinates of point i as a slice into the underlying storage.
func (p *PointSet) At(i int) []float64 {
	return p.data[i*p.d : (i+1)*p.d]
}

// Distance returns the Euclidean distance between points i and j.
func (p *PointSet) Distance(i, j int) float64 {
	a, b := p.At(i), p.At(j)
	var sum float64
	for k := range a {
		diff := a[k] - b[k]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

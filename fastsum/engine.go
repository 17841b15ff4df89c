// Package fastsum defines the fast kernel summation boundary: the Engine
// contract implemented by near-linear-time approximate summation backends,
// plus a quadratic-cost reference engine for testing and debugging.
package fastsum

import "github.com/patrikhermansson/fastadj/core"

// Engine computes pairwise-kernel-weighted sums over a precomputed point set.
// Implementations own large precomputed structures and scratch buffers; none
// of the methods are safe for concurrent use on the same instance.
type Engine interface {

	// Precompute builds the internal structures for the given points, kernel,
	// and accuracy setup. Calling it again discards the previous state first.
	Precompute(ps *core.PointSet, spec core.KernelSpec, setup AccuracySetup) error

	// Apply writes the approximate sums sum_j k(x_i, x_j)*weights[j] into dst.
	Apply(dst, weights []float64) error

	// Exact writes the exactly accumulated sums into dst. This is the
	// quadratic-cost reference path and is not optimized.
	Exact(dst, weights []float64) error

	// Release frees all precomputed state: target nodes first, then source
	// nodes, then kernel state. It is idempotent.
	Release()
}

// Package adjacency realizes a dense kernel adjacency matrix as a matrix-free
// linear operator over a fast summation engine, with the per-family diagonal
// correction and the symmetric degree normalization layered on top.
package adjacency

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/patrikhermansson/fastadj/core"
	"github.com/patrikhermansson/fastadj/fastsum"
)

// Operator is the matrix-free kernel adjacency operator A. It owns its point
// set and its summation engine's precomputed state. An Operator is not safe
// for concurrent use; callers must serialize access externally.
type Operator struct {
	engine fastsum.Engine
	spec   core.KernelSpec
	setup  fastsum.AccuracySetup
	diag   float64 // caller-specified diagonal entry of A
	points *core.PointSet
	n      int
}

// New creates an operator with no points. The diagonal defaults to the kernel
// family's raw self-value, which leaves the matrix diagonal untouched.
func New(engine fastsum.Engine, spec core.KernelSpec, setup fastsum.AccuracySetup) (*Operator, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	return &Operator{
		engine: engine,
		spec:   spec,
		setup:  setup,
		diag:   spec.Family.SelfValue(),
	}, nil
}

// SetPoints replaces the operator's point set. This is a full
// destroy-then-recreate: all precomputed summation state for the previous
// points is released first and rebuilt for the new ones, possibly with a
// different size. It is not an incremental update. Passing nil clears the
// operator.
func (op *Operator) SetPoints(ps *core.PointSet) error {
	op.engine.Release()
	op.points = nil
	op.n = 0

	if ps == nil {
		log.Debug().Msg("Operator cleared")
		return nil
	}
	if err := op.engine.Precompute(ps, op.spec, op.setup); err != nil {
		return fmt.Errorf("precomputing summation state: %w", err)
	}
	op.points = ps
	op.n = ps.Len()
	log.Debug().Msgf("Operator rebuilt for %d points in %d dimensions (kernel=%s, shape=%g)",
		op.n, ps.Dim(), op.spec.Family, op.spec.Shape)
	return nil
}

// Apply writes A*v into dst using the engine's approximate summation.
func (op *Operator) Apply(dst, v []float64) error {
	if err := op.checkInput(dst, v); err != nil {
		return err
	}
	if err := op.engine.Apply(dst, v); err != nil {
		return fmt.Errorf("approximate summation: %w", err)
	}
	op.correctDiagonal(dst, v)
	return nil
}

// ApplyExact writes A*v into dst using the engine's exact summation.
// This is the quadratic-cost reference path.
func (op *Operator) ApplyExact(dst, v []float64) error {
	if err := op.checkInput(dst, v); err != nil {
		return err
	}
	if err := op.engine.Exact(dst, v); err != nil {
		return fmt.Errorf("exact summation: %w", err)
	}
	op.correctDiagonal(dst, v)
	return nil
}

// correctDiagonal re-bases the raw summation's self-term to the operator's
// diagonal: the engine produces the family's raw self-value at zero distance,
// so adding (diag - selfValue)*v[i] makes the effective diagonal exactly diag.
func (op *Operator) correctDiagonal(dst, v []float64) {
	offset := op.diag - op.spec.Family.SelfValue()
	if offset == 0 {
		return
	}
	for i, x := range v {
		dst[i] += offset * x
	}
}

// checkInput validates before any expensive work: initialization first, then
// dimensions, then finiteness.
func (op *Operator) checkInput(dst, v []float64) error {
	if op.n == 0 {
		return core.ErrUninitializedOperator
	}
	if len(v) != op.n || len(dst) != op.n {
		return fmt.Errorf("%w: got vector of length %d for operator of size %d",
			core.ErrDimensionMismatch, len(v), op.n)
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: entry %d", core.ErrNonFiniteInput, i)
		}
	}
	return nil
}

// Len returns the number of points, or 0 before any points are set.
func (op *Operator) Len() int { return op.n }

// Dim returns the point dimension, or 0 before any points are set.
func (op *Operator) Dim() int {
	if op.points == nil {
		return 0
	}
	return op.points.Dim()
}

// Kernel returns the operator's kernel spec.
func (op *Operator) Kernel() core.KernelSpec { return op.spec }

// Setup returns the operator's accuracy setup.
func (op *Operator) Setup() fastsum.AccuracySetup { return op.setup }

// Diagonal returns the diagonal entry of A.
func (op *Operator) Diagonal() float64 { return op.diag }

// SetDiagonal changes the diagonal entry of A. It affects subsequent applies
// only; degree vectors computed earlier are stale and must be recomputed.
func (op *Operator) SetDiagonal(diag float64) { op.diag = diag }

// Close releases all engine resources. The operator can be reused by calling
// SetPoints again. Close is idempotent.
func (op *Operator) Close() {
	op.engine.Release()
	op.points = nil
	op.n = 0
}

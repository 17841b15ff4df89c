package adjacency

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/patrikhermansson/fastadj/core"
)

// Degrees writes the degree vector A*ones into dst.
func Degrees(op *Operator, dst []float64) error {
	ones := make([]float64, op.Len())
	for i := range ones {
		ones[i] = 1
	}
	return op.Apply(dst, ones)
}

// Normalized is the symmetrically degree-normalized operator
// D^{-1/2} A D^{-1/2}. It captures 1/sqrt(degree) once at construction so a
// whole eigensolve reuses one degree vector; rebuild it after any point or
// diagonal mutation.
type Normalized struct {
	op      *Operator
	invSqrt []float64 // 1/sqrt(degree_i)
	scratch []float64 // holds D^{-1/2}*v between the two scaling passes
}

// NewNormalized computes the degree vector of op and returns the normalized
// operator. Every degree entry must be strictly positive.
func NewNormalized(op *Operator) (*Normalized, error) {
	n := op.Len()
	if n == 0 {
		return nil, core.ErrUninitializedOperator
	}
	deg := make([]float64, n)
	if err := Degrees(op, deg); err != nil {
		return nil, fmt.Errorf("computing degrees: %w", err)
	}
	invSqrt := make([]float64, n)
	for i, d := range deg {
		if !(d > 0) {
			return nil, fmt.Errorf("%w: degree[%d] = %g", core.ErrDegreeNonPositive, i, d)
		}
		invSqrt[i] = 1 / math.Sqrt(d)
	}
	return &Normalized{
		op:      op,
		invSqrt: invSqrt,
		scratch: make([]float64, n),
	}, nil
}

// Len returns the operator size.
func (nz *Normalized) Len() int { return len(nz.invSqrt) }

// InvSqrtDegrees returns the cached 1/sqrt(degree) vector.
func (nz *Normalized) InvSqrtDegrees() []float64 { return nz.invSqrt }

// Apply writes D^{-1/2} A D^{-1/2} * v into dst. dst and v must not alias.
func (nz *Normalized) Apply(dst, v []float64) error {
	if len(v) != nz.Len() || len(dst) != nz.Len() {
		return fmt.Errorf("%w: got vector of length %d for operator of size %d",
			core.ErrDimensionMismatch, len(v), nz.Len())
	}
	floats.MulTo(nz.scratch, nz.invSqrt, v)
	if err := nz.op.Apply(dst, nz.scratch); err != nil {
		return err
	}
	floats.Mul(dst, nz.invSqrt)
	return nil
}

// ApplyShifted writes v + sign*(D^{-1/2} A D^{-1/2})*v into dst, the product
// the shifted eigensolver driver requests on every iteration. dst and v must
// not alias.
func (nz *Normalized) ApplyShifted(dst, v []float64, sign float64) error {
	if err := nz.Apply(dst, v); err != nil {
		return err
	}
	floats.Scale(sign, dst)
	floats.Add(dst, v)
	return nil
}

package fastsum

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/mat"

	"github.com/patrikhermansson/fastadj/core"
)

// progressRows is the point count above which building the kernel cache
// shows a progress bar.
const progressRows = 4096

// DirectEngine is the quadratic-cost reference Engine. Precompute
// materializes the full kernel matrix, so it is only suitable for small and
// medium point sets; production deployments plug in a near-linear-time
// backend behind the same interface.
type DirectEngine struct {
	points *core.PointSet
	spec   core.KernelSpec
	kern   *mat.SymDense // cached raw kernel matrix, self value on the diagonal
}

// NewDirectEngine creates an empty reference engine.
func NewDirectEngine() *DirectEngine {
	return &DirectEngine{}
}

// Precompute materializes the raw n x n kernel matrix for the given points.
// The diagonal holds the family's raw self-evaluation, exactly what a fast
// summation backend produces at zero distance.
func (e *DirectEngine) Precompute(ps *core.PointSet, spec core.KernelSpec, setup AccuracySetup) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if err := setup.Validate(); err != nil {
		return err
	}

	e.Release()

	n := ps.Len()
	kern := mat.NewSymDense(n, nil)

	var bar *progressbar.ProgressBar
	if n >= progressRows {
		// Create a progress bar with a newline on completion.
		bar = progressbar.NewOptions(n,
			progressbar.OptionOnCompletion(func() { fmt.Print("\n") }),
		)
	}
	self := spec.Family.SelfValue()
	for i := 0; i < n; i++ {
		kern.SetSym(i, i, self)
		for j := i + 1; j < n; j++ {
			kern.SetSym(i, j, spec.Eval(ps.Distance(i, j)))
		}
		if bar != nil {
			if err := bar.Add(1); err != nil {
				return err
			}
		}
	}

	e.points = ps
	e.spec = spec
	e.kern = kern
	log.Debug().Msgf("Direct engine precomputed %d x %d kernel matrix (kernel=%s, shape=%g)",
		n, n, spec.Family, spec.Shape)
	return nil
}

// Apply writes the kernel-weighted sums into dst using the cached matrix.
// For this reference engine the "approximate" path is exact up to floating
// point association.
func (e *DirectEngine) Apply(dst, weights []float64) error {
	if err := e.check(dst, weights); err != nil {
		return err
	}
	var y mat.VecDense
	y.MulVec(e.kern, mat.NewVecDense(len(weights), weights))
	copy(dst, y.RawVector().Data)
	return nil
}

// Exact writes the exactly accumulated sums into dst, evaluating every
// pairwise kernel from the points without consulting the cache.
func (e *DirectEngine) Exact(dst, weights []float64) error {
	if err := e.check(dst, weights); err != nil {
		return err
	}
	n := e.points.Len()
	self := e.spec.Family.SelfValue()
	for i := 0; i < n; i++ {
		sum := self * weights[i]
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			sum += e.spec.Eval(e.points.Distance(i, j)) * weights[j]
		}
		dst[i] = sum
	}
	return nil
}

// Release drops the kernel cache and the point set reference.
func (e *DirectEngine) Release() {
	e.kern = nil
	e.points = nil
}

func (e *DirectEngine) check(dst, weights []float64) error {
	if e.kern == nil {
		return core.ErrUninitializedOperator
	}
	n := e.points.Len()
	if len(weights) != n || len(dst) != n {
		return fmt.Errorf("%w: got %d weights for %d points", core.ErrDimensionMismatch, len(weights), n)
	}
	return nil
}

package eigen

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/patrikhermansson/fastadj/adjacency"
	"github.com/patrikhermansson/fastadj/core"
)

// defaultMaxIterations is the iteration cap passed to the solver when the
// caller does not set one.
const defaultMaxIterations = 300

// SetupError reports a negative status code from the solver's setup or
// iteration phase.
type SetupError struct {
	Code int
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("fastadj: eigensolver setup failed with status %d", e.Code)
}

// ExtractionError reports a negative status code from the solver's
// extraction phase.
type ExtractionError struct {
	Code int
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("fastadj: eigensolver extraction failed with status %d", e.Code)
}

// Result holds the eigenpairs of the normalized adjacency operator.
// Values are in descending algebraic order and may be fewer than requested if
// the solver converged only a subset; Vectors is the matching n x k column
// matrix, nil when vectors were not requested.
type Result struct {
	Values  []float64
	Vectors *mat.Dense
}

// Driver runs the shifted eigensolve control loop. NewSolver supplies a fresh
// Solver per call, so no work storage outlives a solve.
type Driver struct {
	NewSolver func() Solver
}

// NewDriver creates a driver backed by the dense reference solver.
func NewDriver() *Driver {
	return &Driver{NewSolver: func() Solver { return NewDenseSolver() }}
}

// solveConfig collects the per-call options.
type solveConfig struct {
	tolerance     float64
	maxIterations int
	subspace      int
	wantVectors   bool
	sign          float64
}

// SolveOption customizes a single Solve call.
type SolveOption func(*solveConfig)

// WithTolerance sets the convergence tolerance; 0 requests the solver's own
// default criterion.
func WithTolerance(tol float64) SolveOption {
	return func(c *solveConfig) { c.tolerance = tol }
}

// WithMaxIterations caps the solver's iterations.
func WithMaxIterations(maxIter int) SolveOption {
	return func(c *solveConfig) { c.maxIterations = maxIter }
}

// WithSubspaceDimension overrides the subspace dimension, which must be
// larger than the number of requested eigenpairs and at most n.
func WithSubspaceDimension(ncv int) SolveOption {
	return func(c *solveConfig) { c.subspace = ncv }
}

// WithoutVectors skips eigenvector extraction.
func WithoutVectors() SolveOption {
	return func(c *solveConfig) { c.wantVectors = false }
}

// withSign flips the shifted operator between I + A-hat and I - A-hat; the
// negative sign serves the Laplacian norm path.
func withSign(sign float64) SolveOption {
	return func(c *solveConfig) { c.sign = sign }
}

// Solve computes the k algebraically largest eigenpairs of the symmetrically
// normalized adjacency D^{-1/2} A D^{-1/2}. It drives the solver against the
// shifted operator I + A-hat, whose largest-magnitude eigenvalues are exactly
// the shifted algebraic-largest ones, and subtracts the shift from every
// returned eigenvalue. Eigenvectors carry over unchanged.
//
// The degree vector is computed once at entry and reused for every
// matrix-vector product of the solve.
func (d *Driver) Solve(op *adjacency.Operator, k int, opts ...SolveOption) (*Result, error) {
	n := op.Len()
	if n == 0 {
		return nil, core.ErrUninitializedOperator
	}
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: requested %d eigenpairs from operator of size %d",
			core.ErrDimensionMismatch, k, n)
	}

	cfg := solveConfig{
		maxIterations: defaultMaxIterations,
		wantVectors:   true,
		sign:          1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.subspace == 0 {
		cfg.subspace = defaultSubspace(k, n)
	}

	normalized, err := adjacency.NewNormalized(op)
	if err != nil {
		return nil, err
	}

	solver := d.NewSolver()
	ctx, status := solver.Init(Problem{
		N:             n,
		NumEigen:      k,
		Subspace:      cfg.subspace,
		MaxIterations: cfg.maxIterations,
		Tolerance:     cfg.tolerance,
	})
	if status < 0 {
		return nil, &SetupError{Code: status}
	}
	log.Debug().Msgf("Eigensolve started: n=%d, k=%d, ncv=%d, maxiter=%d, tol=%g",
		n, k, cfg.subspace, cfg.maxIterations, cfg.tolerance)

	matVecs := 0
loop:
	for {
		switch solver.Iterate(ctx) {
		case MatVec:
			src := ctx.Work[ctx.Src : ctx.Src+n]
			dst := ctx.Work[ctx.Dst : ctx.Dst+n]
			if err := normalized.ApplyShifted(dst, src, cfg.sign); err != nil {
				return nil, err
			}
			matVecs++
		case Stop:
			if ctx.Status < 0 {
				return nil, &SetupError{Code: ctx.Status}
			}
			break loop
		case NoOperation:
			// Internal solver progress only.
		}
	}

	values, vectors, status := solver.Extract(cfg.wantVectors)
	if status < 0 {
		return nil, &ExtractionError{Code: status}
	}
	log.Debug().Msgf("Eigensolve finished: converged=%d, matvecs=%d", solver.Converged(), matVecs)

	return assembleResult(values, vectors, n, cfg.sign), nil
}

// defaultSubspace mirrors conventional Lanczos sizing: max(2k+1, 20) while
// that fits, the full size otherwise.
func defaultSubspace(k, n int) int {
	if 2*k >= n {
		return n
	}
	ncv := 2*k + 1
	if ncv < 20 {
		ncv = 20
	}
	if ncv > n {
		ncv = n
	}
	return ncv
}

// assembleResult unshifts the eigenvalues and reorders eigenpairs into
// descending algebraic order. The solver returns theta = 1 + sign*lambda, so
// lambda = sign*(theta - 1); vectors are eigenvectors of A-hat already.
func assembleResult(values, vectors []float64, n int, sign float64) *Result {
	k := len(values)
	unshifted := make([]float64, k)
	for i, theta := range values {
		unshifted[i] = sign * (theta - 1)
	}

	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return unshifted[order[a]] > unshifted[order[b]]
	})

	res := &Result{Values: make([]float64, k)}
	if vectors != nil {
		res.Vectors = mat.NewDense(n, k, nil)
	}
	for c, idx := range order {
		res.Values[c] = unshifted[idx]
		if res.Vectors != nil {
			res.Vectors.SetCol(c, vectors[idx*n:(idx+1)*n])
		}
	}
	return res
}

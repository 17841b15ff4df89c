// Package fastadj exposes dense kernel adjacency matrices implicitly, without
// materializing them, and supports approximate matrix-vector products and
// dominant eigenpairs of the symmetrically degree-normalized operator.
package fastadj

import (
	"fmt"

	"github.com/patrikhermansson/fastadj/adjacency"
	"github.com/patrikhermansson/fastadj/core"
	"github.com/patrikhermansson/fastadj/eigen"
	"github.com/patrikhermansson/fastadj/fastsum"
)

// AdjacencyMatrix is the high-level handle over the matrix-free operator
// stack. It is not safe for concurrent use.
type AdjacencyMatrix struct {
	op     *adjacency.Operator
	driver *eigen.Driver
}

// config collects construction options.
type config struct {
	kernel   core.Kernel
	setup    fastsum.AccuracySetup
	engine   fastsum.Engine
	diagonal *float64
}

// Option customizes AdjacencyMatrix construction.
type Option func(*config) error

// WithKernel selects the kernel family; the default is Gaussian.
func WithKernel(k core.Kernel) Option {
	return func(c *config) error {
		c.kernel = k
		return nil
	}
}

// WithSetup sets the accuracy parameters passed to the summation engine.
func WithSetup(setup fastsum.AccuracySetup) Option {
	return func(c *config) error {
		c.setup = setup
		return nil
	}
}

// WithSetupName selects a named accuracy preset: "default", "fine", or "rough".
func WithSetupName(name string) Option {
	return func(c *config) error {
		setup, err := fastsum.SetupByName(name)
		if err != nil {
			return err
		}
		c.setup = setup
		return nil
	}
}

// WithDiagonal sets the matrix diagonal. The default is the kernel family's
// self-value: 1 for the value kernels and 0 for the derivative kernels.
func WithDiagonal(diag float64) Option {
	return func(c *config) error {
		c.diagonal = &diag
		return nil
	}
}

// WithEngine plugs in a summation engine. The default is the quadratic-cost
// reference engine; production deployments supply a near-linear-time backend.
func WithEngine(engine fastsum.Engine) Option {
	return func(c *config) error {
		c.engine = engine
		return nil
	}
}

// New builds an adjacency matrix over the given flat row-major points with
// shape parameter sigma. The points are precomputed immediately.
func New(points []float64, dim int, sigma float64, opts ...Option) (*AdjacencyMatrix, error) {
	cfg := config{
		kernel: core.Gaussian,
		setup:  fastsum.DefaultSetup,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.engine == nil {
		cfg.engine = fastsum.NewDirectEngine()
	}

	spec := core.KernelSpec{Family: cfg.kernel, Shape: sigma}
	op, err := adjacency.New(cfg.engine, spec, cfg.setup)
	if err != nil {
		return nil, err
	}
	if cfg.diagonal != nil {
		op.SetDiagonal(*cfg.diagonal)
	}

	m := &AdjacencyMatrix{op: op, driver: eigen.NewDriver()}
	if err := m.SetPoints(points, dim); err != nil {
		return nil, err
	}
	return m, nil
}

// SetPoints replaces the point set. All precomputed summation state is
// released and rebuilt from scratch, so this costs as much as construction.
func (m *AdjacencyMatrix) SetPoints(points []float64, dim int) error {
	ps, err := core.NewPointSet(points, dim)
	if err != nil {
		return err
	}
	if err := m.op.SetPoints(ps); err != nil {
		return fmt.Errorf("rebuilding for %d points: %w", ps.Len(), err)
	}
	return nil
}

// Apply returns the approximate product A*v.
func (m *AdjacencyMatrix) Apply(v []float64) ([]float64, error) {
	dst := make([]float64, m.op.Len())
	if err := m.op.Apply(dst, v); err != nil {
		return nil, err
	}
	return dst, nil
}

// ApplyExact returns the exact product A*v via quadratic-cost summation.
func (m *AdjacencyMatrix) ApplyExact(v []float64) ([]float64, error) {
	dst := make([]float64, m.op.Len())
	if err := m.op.ApplyExact(dst, v); err != nil {
		return nil, err
	}
	return dst, nil
}

// Degrees returns a fresh degree vector A*ones.
func (m *AdjacencyMatrix) Degrees() ([]float64, error) {
	if m.op.Len() == 0 {
		return nil, core.ErrUninitializedOperator
	}
	dst := make([]float64, m.op.Len())
	if err := adjacency.Degrees(m.op, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// NormalizedEigs returns the k algebraically largest eigenpairs of the
// symmetrically normalized adjacency.
func (m *AdjacencyMatrix) NormalizedEigs(k int, opts ...eigen.SolveOption) (*eigen.Result, error) {
	return m.driver.Solve(m.op, k, opts...)
}

// NormalizedLaplacianNorm returns the 2-norm of the normalized Laplacian.
func (m *AdjacencyMatrix) NormalizedLaplacianNorm() (float64, error) {
	return eigen.NormalizedLaplacianNorm(m.op)
}

// SetDiagonal changes the matrix diagonal for subsequent operations.
func (m *AdjacencyMatrix) SetDiagonal(diag float64) {
	m.op.SetDiagonal(diag)
}

// Stats contains metadata about the matrix.
type Stats struct {
	Points    int     // number of points
	Dimension int     // dimensionality of points
	Kernel    string  // kernel family name
	Shape     float64 // shape parameter
	Diagonal  float64 // matrix diagonal
	Setup     fastsum.AccuracySetup
}

// Stats returns metadata about the matrix.
func (m *AdjacencyMatrix) Stats() Stats {
	spec := m.op.Kernel()
	return Stats{
		Points:    m.op.Len(),
		Dimension: m.op.Dim(),
		Kernel:    spec.Family.String(),
		Shape:     spec.Shape,
		Diagonal:  m.op.Diagonal(),
		Setup:     m.op.Setup(),
	}
}

// Close releases all engine resources. The handle must not be used afterwards
// except to call Close again.
func (m *AdjacencyMatrix) Close() {
	m.op.Close()
}

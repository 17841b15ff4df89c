package fastadj_test

import (
	"errors"
	"math"
	"testing"

	fastadj "github.com/patrikhermansson/fastadj"
	"github.com/patrikhermansson/fastadj/core"
	"github.com/patrikhermansson/fastadj/fastsum"
)

// unitSquare is four points at the corners of the unit square.
var unitSquare = []float64{0, 0, 1, 0, 0, 1, 1, 1}

func TestNewDefaults(t *testing.T) {
	m, err := fastadj.New(unitSquare, 2, 1.0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer m.Close()

	stats := m.Stats()
	if stats.Points != 4 {
		t.Errorf("Stats().Points = %d; want 4", stats.Points)
	}
	if stats.Dimension != 2 {
		t.Errorf("Stats().Dimension = %d; want 2", stats.Dimension)
	}
	if stats.Kernel != "gaussian" {
		t.Errorf("Stats().Kernel = %q; want %q", stats.Kernel, "gaussian")
	}
	if stats.Diagonal != 1 {
		t.Errorf("Stats().Diagonal = %g; want 1", stats.Diagonal)
	}
	if stats.Setup != fastsum.DefaultSetup {
		t.Errorf("Stats().Setup = %+v; want the default preset", stats.Setup)
	}
}

func TestNewOptions(t *testing.T) {
	m, err := fastadj.New(unitSquare, 2, 0.5,
		fastadj.WithKernel(core.MaternExpDerivative),
		fastadj.WithSetupName("fine"),
		fastadj.WithDiagonal(0),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer m.Close()

	stats := m.Stats()
	if stats.Kernel != "matern_derivative" {
		t.Errorf("Stats().Kernel = %q; want %q", stats.Kernel, "matern_derivative")
	}
	if stats.Diagonal != 0 {
		t.Errorf("Stats().Diagonal = %g; want 0", stats.Diagonal)
	}
	if stats.Setup != fastsum.FineSetup {
		t.Errorf("Stats().Setup = %+v; want the fine preset", stats.Setup)
	}
}

func TestNewBadArguments(t *testing.T) {
	if _, err := fastadj.New(unitSquare, 2, -1); !errors.Is(err, core.ErrBadShapeParam) {
		t.Errorf("expected ErrBadShapeParam, got %v", err)
	}
	if _, err := fastadj.New([]float64{1, 2, 3}, 2, 1); !errors.Is(err, core.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := fastadj.New(unitSquare, 2, 1, fastadj.WithSetupName("nope")); !errors.Is(err, core.ErrBadSetup) {
		t.Errorf("expected ErrBadSetup, got %v", err)
	}
}

// TestUnitSquareEndToEnd is the full scenario: unit square, Gaussian kernel,
// sigma 1, diagonal 1. Degrees come out equal by symmetry, the top normalized
// eigenvalue is exactly 1, and its eigenvector is the ones direction.
func TestUnitSquareEndToEnd(t *testing.T) {
	m, err := fastadj.New(unitSquare, 2, 1.0, fastadj.WithDiagonal(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer m.Close()

	deg, err := m.Degrees()
	if err != nil {
		t.Fatalf("Degrees failed: %v", err)
	}
	for i := 1; i < len(deg); i++ {
		if math.Abs(deg[i]-deg[0]) > 1e-12 {
			t.Errorf("degree[%d] = %g differs from degree[0] = %g", i, deg[i], deg[0])
		}
	}

	res, err := m.NormalizedEigs(1)
	if err != nil {
		t.Fatalf("NormalizedEigs failed: %v", err)
	}
	if math.Abs(res.Values[0]-1) > 1e-10 {
		t.Errorf("top eigenvalue = %g; want 1", res.Values[0])
	}
	for i := 0; i < 4; i++ {
		if math.Abs(math.Abs(res.Vectors.At(i, 0))-0.5) > 1e-10 {
			t.Errorf("eigenvector entry %d = %g; want magnitude 0.5", i, res.Vectors.At(i, 0))
		}
	}

	norm, err := m.NormalizedLaplacianNorm()
	if err != nil {
		t.Fatalf("NormalizedLaplacianNorm failed: %v", err)
	}
	full, err := m.NormalizedEigs(4)
	if err != nil {
		t.Fatalf("NormalizedEigs failed: %v", err)
	}
	lambdaMin := full.Values[len(full.Values)-1]
	if math.Abs(norm-(1-lambdaMin)) > 1e-10 {
		t.Errorf("norm = %g; want 1 - lambda_min = %g", norm, 1-lambdaMin)
	}
}

func TestApplyMatchesExact(t *testing.T) {
	m, err := fastadj.New(unitSquare, 2, 1.0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer m.Close()

	v := []float64{1, -1, 2, -2}
	approx, err := m.Apply(v)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	exact, err := m.ApplyExact(v)
	if err != nil {
		t.Fatalf("ApplyExact failed: %v", err)
	}
	for i := range approx {
		if math.Abs(approx[i]-exact[i]) > 1e-12 {
			t.Errorf("entry %d: Apply = %g, ApplyExact = %g", i, approx[i], exact[i])
		}
	}
}

func TestSetPointsResizes(t *testing.T) {
	m, err := fastadj.New(unitSquare, 2, 1.0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer m.Close()

	if err := m.SetPoints([]float64{0, 0, 0, 1, 0, 0, 1, 0, 0}, 3); err != nil {
		t.Fatalf("SetPoints failed: %v", err)
	}
	if m.Stats().Points != 3 || m.Stats().Dimension != 3 {
		t.Errorf("Stats() = %+v after reassignment; want 3 points in 3 dimensions", m.Stats())
	}

	if _, err := m.Apply(make([]float64, 3)); err != nil {
		t.Errorf("Apply with new dimension failed: %v", err)
	}
	if _, err := m.Apply([]float64{1, 1, 1, 1}); !errors.Is(err, core.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for stale dimension, got %v", err)
	}
}

func TestSetDiagonalAffectsApply(t *testing.T) {
	m, err := fastadj.New(unitSquare, 2, 1.0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer m.Close()

	e0 := []float64{1, 0, 0, 0}
	before, err := m.Apply(e0)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	m.SetDiagonal(5)
	after, err := m.Apply(e0)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if math.Abs((after[0]-before[0])-4) > 1e-12 {
		t.Errorf("diagonal shift moved apply(e_0)[0] by %g; want 4", after[0]-before[0])
	}
	if after[1] != before[1] {
		t.Errorf("off-diagonal entry changed with the diagonal: %g vs %g", after[1], before[1])
	}
}

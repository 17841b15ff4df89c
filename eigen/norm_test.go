package eigen_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patrikhermansson/fastadj/core"
	"github.com/patrikhermansson/fastadj/eigen"
)

// TestNormalizedLaplacianNorm cross-checks the norm against the smallest
// eigenvalue from an independent full-spectrum solve.
func TestNormalizedLaplacianNorm(t *testing.T) {
	coords := []float64{
		0.0, 0.0, 0.4, 0.1, -0.2, 0.3, 0.1, -0.35, -0.3, -0.2,
	}
	op := newOperator(t, core.Gaussian, coords, 2)
	defer op.Close()

	norm, err := eigen.NormalizedLaplacianNorm(op)
	require.NoError(t, err)

	full, err := eigen.NewDriver().Solve(op, op.Len(), eigen.WithoutVectors())
	require.NoError(t, err)
	lambdaMin := full.Values[len(full.Values)-1]

	require.InDelta(t, 1-lambdaMin, norm, 1e-10)
	// The spectrum of the normalized Laplacian lies in [0, 2].
	require.GreaterOrEqual(t, norm, 0.0)
	require.LessOrEqual(t, norm, 2+1e-10)
}

func TestNormalizedLaplacianNormUnitSquare(t *testing.T) {
	op := newOperator(t, core.Gaussian, unitSquare, 2)
	defer op.Close()

	norm, err := eigen.NormalizedLaplacianNorm(op)
	require.NoError(t, err)

	// The adjacency is a symmetric circulant over the four corners with side
	// weight a = exp(-1) and diagonal weight b = exp(-2); its smallest
	// normalized eigenvalue is (1 - 2a + b) / (1 + 2a + b).
	a, b := math.Exp(-1), math.Exp(-2)
	want := 1 - (1-2*a+b)/(1+2*a+b)
	require.InDelta(t, want, norm, 1e-10)
}

func TestNormalizedLaplacianNormUninitialized(t *testing.T) {
	op := newOperator(t, core.Gaussian, nil, 0)
	_, err := eigen.NormalizedLaplacianNorm(op)
	require.ErrorIs(t, err, core.ErrUninitializedOperator)
}

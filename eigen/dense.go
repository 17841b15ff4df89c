package eigen

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Status codes reported by the dense reference solver.
const (
	denseBadSize      = -1
	denseBadNumEigen  = -2
	denseBadSubspace  = -3
	denseBadMaxIter   = -4
	denseBadTolerance = -5
	denseNotConverged = -6
	denseNotFinished  = -7
)

// DenseSolver is the reference Solver. It reconstructs the driven operator
// column by column through MatVec requests and factorizes it with gonum's
// EigenSym, so every answer is exact to machine precision. It exists so the
// driver is usable and testable without an external restarted-Lanczos engine;
// its cost is n matrix-vector products plus a dense factorization, which
// confines it to small and medium problems.
type DenseSolver struct {
	prob    Problem
	op      *mat.Dense // reconstructed operator, one column per MatVec answer
	col     int        // next basis column to request
	values  []float64  // selected eigenvalues, ascending magnitude
	vectors []float64  // matching eigenvectors, column-major
	status  int
	done    bool
}

// NewDenseSolver creates an unconfigured dense reference solver.
func NewDenseSolver() *DenseSolver {
	return &DenseSolver{status: denseNotFinished}
}

// Init validates the problem and allocates the shared work storage: two
// adjacent blocks of n, input at offset 0 and output at offset n.
func (s *DenseSolver) Init(p Problem) (*Context, int) {
	switch {
	case p.N < 1:
		return nil, denseBadSize
	case p.NumEigen < 1 || p.NumEigen > p.N:
		return nil, denseBadNumEigen
	case p.Subspace > p.N || p.Subspace < p.NumEigen ||
		(p.Subspace == p.NumEigen && p.NumEigen != p.N):
		return nil, denseBadSubspace
	case p.MaxIterations < 1:
		return nil, denseBadMaxIter
	case p.Tolerance < 0 || math.IsNaN(p.Tolerance):
		return nil, denseBadTolerance
	}
	s.prob = p
	s.op = mat.NewDense(p.N, p.N, nil)
	return &Context{
		Work: make([]float64, 2*p.N),
		Src:  0,
		Dst:  p.N,
	}, 0
}

// Iterate requests one operator column per call. Once all n columns are
// collected it factorizes and reports Stop.
func (s *DenseSolver) Iterate(ctx *Context) Operation {
	n := s.prob.N

	// Store the answer to the previous request.
	if s.col > 0 {
		s.op.SetCol(s.col-1, ctx.Work[ctx.Dst:ctx.Dst+n])
	}

	if s.col < n {
		in := ctx.Work[ctx.Src : ctx.Src+n]
		for i := range in {
			in[i] = 0
		}
		in[s.col] = 1
		s.col++
		return MatVec
	}

	s.factorize(ctx)
	return Stop
}

// Converged returns the number of converged eigenpairs.
func (s *DenseSolver) Converged() int {
	if !s.done || s.status < 0 {
		return 0
	}
	return len(s.values)
}

// Extract returns the selected eigenpairs in ascending-magnitude order.
func (s *DenseSolver) Extract(wantVectors bool) (values, vectors []float64, status int) {
	if !s.done || s.status < 0 {
		return nil, nil, s.status
	}
	if wantVectors {
		return s.values, s.vectors, 0
	}
	return s.values, nil, 0
}

// factorize symmetrizes the reconstructed operator, computes its full
// spectrum, and keeps the NumEigen largest-magnitude eigenpairs.
func (s *DenseSolver) factorize(ctx *Context) {
	n, k := s.prob.N, s.prob.NumEigen

	// The driven operator is symmetric up to summation round-off; average it
	// with its transpose before handing it to the symmetric factorization.
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(s.op.At(i, j)+s.op.At(j, i)))
		}
	}

	var es mat.EigenSym
	if !es.Factorize(sym, true) {
		s.status = denseNotConverged
		s.done = true
		ctx.Status = s.status
		return
	}
	all := es.Values(nil)
	var evec mat.Dense
	es.VectorsTo(&evec)

	// Pick the k largest-magnitude eigenvalues and emit them in ascending
	// magnitude, the classic LM output convention.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return math.Abs(all[order[a]]) > math.Abs(all[order[b]])
	})
	picked := order[:k]
	sort.SliceStable(picked, func(a, b int) bool {
		return math.Abs(all[picked[a]]) < math.Abs(all[picked[b]])
	})

	s.values = make([]float64, k)
	s.vectors = make([]float64, n*k)
	for c, idx := range picked {
		s.values[c] = all[idx]
		for r := 0; r < n; r++ {
			s.vectors[c*n+r] = evec.At(r, idx)
		}
	}
	s.status = k
	s.done = true
	ctx.Status = s.status
}

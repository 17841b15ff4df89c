// Package eigen drives a symmetric reverse-communication eigensolver against
// the shifted normalized adjacency operator I + sign*(D^{-1/2} A D^{-1/2}).
// The solver primitive finds extreme-magnitude eigenvalues; the unit shift
// makes that coincide with extreme-algebraic ones, and the driver unshifts the
// results afterwards.
package eigen

// Operation tells the driver what a Solver needs next.
type Operation uint64

const (
	// NoOperation means the solver made internal progress and should simply
	// be iterated again.
	NoOperation Operation = 0
	// MatVec asks the driver to apply the operator to Work[Src:Src+n] and
	// write the product into Work[Dst:Dst+n].
	MatVec Operation = 1 << (iota - 1)
	// Stop means the iteration phase is over; Context.Status holds the final
	// code, negative on failure.
	Stop
)

// Context carries shared storage between a Solver and its driver. Work is
// owned by the solver instance; Src and Dst are offsets into it designating
// the current matrix-vector product's input and output blocks.
type Context struct {
	Work     []float64
	Src, Dst int
	Status   int
}

// Problem describes one symmetric eigenvalue computation of the NumEigen
// largest-magnitude eigenpairs of an implicit N x N operator.
type Problem struct {
	N             int     // operator size
	NumEigen      int     // number of eigenpairs requested
	Subspace      int     // subspace (Krylov basis) dimension
	MaxIterations int     // iteration cap
	Tolerance     float64 // convergence tolerance; 0 means the solver's default
}

// Solver is the reverse-communication contract for a symmetric iterative
// eigensolver. A Solver instance serves exactly one Problem; its work storage
// lives and dies with the instance, so a fresh instance per solve keeps the
// driver reentrant and leak-free on failure paths.
type Solver interface {

	// Init prepares the solver for the given problem and returns the shared
	// context. A negative status code means setup failed; the context may be
	// nil in that case.
	Init(p Problem) (*Context, int)

	// Iterate advances the solver and reports what it needs next. It must
	// only be called until it returns Stop.
	Iterate(ctx *Context) Operation

	// Converged returns the number of eigenpairs that converged, valid after
	// Iterate returned Stop with a non-negative status.
	Converged() int

	// Extract finalizes the computation. Values are returned in the solver's
	// native ascending-magnitude order and vectors column-major, matching
	// values entry for entry; vectors is nil when not requested. A negative
	// status code means extraction failed.
	Extract(wantVectors bool) (values, vectors []float64, status int)
}

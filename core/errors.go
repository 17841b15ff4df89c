package core

import "errors"

// ErrUninitializedOperator is returned when an operator is used before any points have been set.
var ErrUninitializedOperator = errors.New("fastadj: operator has no points")

// ErrDimensionMismatch is returned when a vector's length does not match the operator size.
var ErrDimensionMismatch = errors.New("fastadj: dimension mismatch")

// ErrNonFiniteInput is returned when an input vector contains NaN or Inf entries.
var ErrNonFiniteInput = errors.New("fastadj: non-finite input")

// ErrDegreeNonPositive is returned when a degree entry is zero or negative,
// which makes the symmetric normalization undefined.
var ErrDegreeNonPositive = errors.New("fastadj: non-positive degree")

// ErrBadKernel is returned when a kernel family name or value is not recognized.
var ErrBadKernel = errors.New("fastadj: unknown kernel family")

// ErrBadShapeParam is returned when a kernel shape parameter is not a positive finite real.
var ErrBadShapeParam = errors.New("fastadj: invalid shape parameter")

// ErrBadSetup is returned when an accuracy setup contains out-of-range parameters.
var ErrBadSetup = errors.New("fastadj: invalid accuracy setup")

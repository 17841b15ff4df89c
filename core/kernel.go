package core

import (
	"fmt"
	"math"
)

// Kernel identifies one of the supported kernel families.
type Kernel int

const (
	// Gaussian is the Gaussian kernel exp(-r^2/sigma^2).
	Gaussian Kernel = iota
	// GaussianDerivative is the derivative form (r^2/sigma^2)*exp(-r^2/sigma^2).
	GaussianDerivative
	// MaternExp is the Matern-type exponential kernel exp(-r/sigma).
	MaternExp
	// MaternExpDerivative is the derivative form (r/sigma)*exp(-r/sigma).
	MaternExpDerivative
)

// Kernels is a map of human-readable names to kernel families.
// You can use it to choose a kernel family by name.
var Kernels = map[string]Kernel{
	"gaussian":            Gaussian,
	"gaussian_derivative": GaussianDerivative,
	"matern_exp":          MaternExp,
	"matern_derivative":   MaternExpDerivative,
}

// kernelNames is the reverse of Kernels, used for display and logging.
var kernelNames = map[Kernel]string{
	Gaussian:            "gaussian",
	GaussianDerivative:  "gaussian_derivative",
	MaternExp:           "matern_exp",
	MaternExpDerivative: "matern_derivative",
}

// selfValues holds the raw kernel self-evaluation at distance zero for each family.
// The value kernels evaluate to 1 at r=0; the derivative families evaluate to 0
// because the derivative factor vanishes at zero distance. Every diagonal
// correction in the operator layer is derived from this single table.
var selfValues = map[Kernel]float64{
	Gaussian:            1,
	GaussianDerivative:  0,
	MaternExp:           1,
	MaternExpDerivative: 0,
}

// ParseKernel resolves a kernel family from its name.
func ParseKernel(name string) (Kernel, error) {
	k, ok := Kernels[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadKernel, name)
	}
	return k, nil
}

// String returns the kernel family's name.
func (k Kernel) String() string {
	if name, ok := kernelNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kernel(%d)", int(k))
}

// SelfValue returns the raw kernel evaluation at distance zero for this family.
func (k Kernel) SelfValue() float64 {
	return selfValues[k]
}

// Valid reports whether k names one of the supported families.
func (k Kernel) Valid() bool {
	_, ok := kernelNames[k]
	return ok
}

// KernelSpec pairs a kernel family with its shape parameter.
type KernelSpec struct {
	Family Kernel  // kernel family
	Shape  float64 // shape parameter sigma, must be a positive finite real
}

// Validate checks that the spec names a supported family and a positive finite shape.
func (s KernelSpec) Validate() error {
	if !s.Family.Valid() {
		return fmt.Errorf("%w: %d", ErrBadKernel, int(s.Family))
	}
	if !(s.Shape > 0) || math.IsInf(s.Shape, 0) {
		return fmt.Errorf("%w: %g", ErrBadShapeParam, s.Shape)
	}
	return nil
}

// Eval evaluates the kernel at distance r.
func (s KernelSpec) Eval(r float64) float64 {
	switch s.Family {
	case Gaussian:
		t := r * r / (s.Shape * s.Shape)
		return math.Exp(-t)
	case GaussianDerivative:
		t := r * r / (s.Shape * s.Shape)
		return t * math.Exp(-t)
	case MaternExp:
		t := r / s.Shape
		return math.Exp(-t)
	case MaternExpDerivative:
		t := r / s.Shape
		return t * math.Exp(-t)
	}
	panic("fastadj: unreachable kernel family")
}

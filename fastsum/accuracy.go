package fastsum

import (
	"fmt"

	"github.com/patrikhermansson/fastadj/core"
)

// AccuracySetup holds the accuracy parameters passed through to a summation
// engine unchanged: expansion degree, smoothness order, window cutoff, and
// outer boundary width.
type AccuracySetup struct {
	Degree     int     // expansion degree N
	Smoothness int     // smoothness order p
	Cutoff     int     // window cutoff parameter m
	Boundary   float64 // outer boundary width eps, in (0, 0.5)
}

// DefaultSetup is the balanced accuracy preset.
var DefaultSetup = AccuracySetup{Degree: 64, Smoothness: 5, Cutoff: 7, Boundary: 1.0 / 16}

// FineSetup trades time for accuracy.
var FineSetup = AccuracySetup{Degree: 128, Smoothness: 7, Cutoff: 10, Boundary: 1.0 / 32}

// RoughSetup trades accuracy for time.
var RoughSetup = AccuracySetup{Degree: 32, Smoothness: 3, Cutoff: 5, Boundary: 1.0 / 8}

// Setups is a map of human-readable names to accuracy presets.
var Setups = map[string]AccuracySetup{
	"default": DefaultSetup,
	"fine":    FineSetup,
	"rough":   RoughSetup,
}

// SetupByName resolves an accuracy preset from its name.
func SetupByName(name string) (AccuracySetup, error) {
	setup, ok := Setups[name]
	if !ok {
		return AccuracySetup{}, fmt.Errorf("%w: unknown preset %q", core.ErrBadSetup, name)
	}
	return setup, nil
}

// Validate checks that all setup parameters are in range.
func (s AccuracySetup) Validate() error {
	if s.Degree < 1 || s.Smoothness < 1 || s.Cutoff < 1 {
		return fmt.Errorf("%w: degree=%d smoothness=%d cutoff=%d",
			core.ErrBadSetup, s.Degree, s.Smoothness, s.Cutoff)
	}
	if !(s.Boundary > 0 && s.Boundary < 0.5) {
		return fmt.Errorf("%w: boundary width %g outside (0, 0.5)", core.ErrBadSetup, s.Boundary)
	}
	return nil
}

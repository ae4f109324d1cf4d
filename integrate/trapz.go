/*
Copyright © 2020 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

/*
Package integrate numerically integrates sampled functions with the
trapezoid rule.

Samples may be spaced non-uniformly; the spacing of each interval is taken
from the coordinate sequence. Sums are accumulated left to right without
compensation, so round-off grows with the number of samples.

All functions here are pure and safe for concurrent use.
*/
package integrate

import (
	"fmt"

	"github.com/spatialmodel/quadrature/arrayops"
	"gonum.org/v1/gonum/floats"
)

// ErrShapeMismatch happens when the sample and coordinate sequences
// have different lengths.
type ErrShapeMismatch struct {
	LenY, LenX int
}

func (e ErrShapeMismatch) Error() string {
	return fmt.Sprintf("integrate: shape mismatch; len(y)=%d != len(x)=%d", e.LenY, e.LenX)
}

// ErrInsufficientSamples happens when fewer than two samples are
// supplied.
type ErrInsufficientSamples struct {
	N int
}

func (e ErrInsufficientSamples) Error() string {
	return fmt.Sprintf("integrate: %d samples; at least 2 are required", e.N)
}

func check(y, x []float64) error {
	if len(y) != len(x) {
		return ErrShapeMismatch{LenY: len(y), LenX: len(x)}
	}
	if len(y) < 2 {
		return ErrInsufficientSamples{N: len(y)}
	}
	return nil
}

// Trapz integrates the samples y taken at coordinates x using the
// trapezoid rule:
//
//	sum((x[i+1] - x[i]) * (y[i] + y[i+1]) / 2)
//
// x is expected to be monotonic. If x is decreasing, the result has the
// opposite sign of the integral over the increasing coordinates.
func Trapz(y, x []float64) (float64, error) {
	if err := check(y, x); err != nil {
		return 0, err
	}
	var sum float64
	for i := 0; i < len(x)-1; i++ {
		sum += (x[i+1] - x[i]) * (y[i] + y[i+1]) / 2
	}
	return sum, nil
}

// TrapzSliced computes the same integral as Trapz, but in sliced form:
//
//	dot(diff(x), (y[1:] + y[:-1]) / 2)
//
// The summation order differs from Trapz, so results can differ by
// round-off.
func TrapzSliced(y, x []float64) (float64, error) {
	if err := check(y, x); err != nil {
		return 0, err
	}
	n := len(y)
	dx := arrayops.Diff(x)
	avg := make([]float64, n-1)
	floats.AddTo(avg, y[1:], y[:n-1])
	floats.Scale(0.5, avg)
	return floats.Dot(dx, avg), nil
}

// Func integrates f over [a, b] by sampling it at n evenly spaced points.
func Func(f func(float64) float64, a, b float64, n int) (float64, error) {
	x, err := arrayops.Linspace(a, b, n)
	if err != nil {
		return 0, fmt.Errorf("integrate: sampling function: %w", err)
	}
	return Trapz(arrayops.Map(f, x), x)
}

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

// Package arrayops holds element-wise operations on float64 sequences.
package arrayops

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidArgument happens when a sequence is requested with fewer
// than one element.
type ErrInvalidArgument struct {
	Count int
}

func (e ErrInvalidArgument) Error() string {
	return fmt.Sprintf("arrayops: invalid count %d; must be at least 1", e.Count)
}

// Linspace returns count evenly spaced values between start and stop,
// inclusive of both endpoints. If count is 1, the result is [start].
func Linspace(start, stop float64, count int) ([]float64, error) {
	if count < 1 {
		return nil, ErrInvalidArgument{Count: count}
	}
	o := make([]float64, count)
	o[0] = start
	if count == 1 {
		return o, nil
	}
	step := (stop - start) / float64(count-1)
	for i := 1; i < count-1; i++ {
		o[i] = start + float64(i)*step
	}
	// Set the last value directly so rounding in step
	// can't move the endpoint.
	o[count-1] = stop
	return o, nil
}

// Map applies f to each element of x. An optional output array
// with the same length as x can be supplied to prevent unneeded
// heap allocations; otherwise a new array is allocated.
func Map(f func(float64) float64, x []float64, out ...[]float64) []float64 {
	o := output(len(x), out)
	for i, v := range x {
		o[i] = f(v)
	}
	return o
}

// Diff returns the differences between consecutive elements of x,
// x[i+1] - x[i]. The result has one fewer element than x, and is
// empty if x has fewer than two elements.
func Diff(x []float64) []float64 {
	if len(x) < 2 {
		return []float64{}
	}
	o := make([]float64, len(x)-1)
	floats.SubTo(o, x[1:], x[:len(x)-1])
	return o
}

func output(n int, out [][]float64) []float64 {
	if len(out) == 0 {
		return make([]float64, n)
	}
	if len(out[0]) != n {
		panic(fmt.Sprintf("arrayops: output length %d != input length %d", len(out[0]), n))
	}
	return out[0]
}

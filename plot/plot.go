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

// Package plot adapts sampled sequences for use with gonum.org/v1/plot.
package plot

import "fmt"

// XYs implements the gonum.org/v1/plot/plotter.XYer interface.
type XYs []XY

// XY is an x and y value.
type XY struct{ X, Y float64 }

// NewXYs pairs the coordinates x with the samples y.
func NewXYs(x, y []float64) (XYs, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("plot: len(x)=%d != len(y)=%d", len(x), len(y))
	}
	o := make(XYs, len(x))
	for i := range x {
		o[i] = XY{X: x[i], Y: y[i]}
	}
	return o, nil
}

// Index pairs each sample in y with its index.
func Index(y []float64) XYs {
	o := make(XYs, len(y))
	for i, v := range y {
		o[i] = XY{X: float64(i), Y: v}
	}
	return o
}

// Len returns the number of X,Y pairs.
func (xys XYs) Len() int {
	return len(xys)
}

// XY return the x and y values at index i, where i < Len()
func (xys XYs) XY(i int) (float64, float64) {
	return xys[i].X, xys[i].Y
}

// Series holds named sequences in the order they were added.
type Series struct {
	names  []string
	values map[string][]float64
}

// Add sets the values for name. Adding a name that already exists
// replaces its values but keeps its original position.
func (s *Series) Add(name string, values []float64) {
	if s.values == nil {
		s.values = make(map[string][]float64)
	}
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = values
}

// Len returns the number of named sequences.
func (s *Series) Len() int { return len(s.names) }

// Name returns the name of the i'th sequence.
func (s *Series) Name(i int) string { return s.names[i] }

// Values returns the sequence with the given name.
func (s *Series) Values(name string) ([]float64, bool) {
	v, ok := s.values[name]
	return v, ok
}

// XYs returns the i'th sequence plotted against sample index.
func (s *Series) XYs(i int) XYs {
	return Index(s.values[s.names[i]])
}

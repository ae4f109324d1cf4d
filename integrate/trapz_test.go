package integrate

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/spatialmodel/quadrature/arrayops"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	gonumint "gonum.org/v1/gonum/integrate"
)

// integrators are the implementations that are cross-validated against
// each other and against the reference library.
var integrators = []struct {
	name string
	f    func(y, x []float64) (float64, error)
}{
	{name: "Trapz", f: Trapz},
	{name: "TrapzSliced", f: TrapzSliced},
}

func TestTrapzAnalytic(t *testing.T) {
	x, err := arrayops.Linspace(0, 10, 1000)
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := floats.Min(x), floats.Max(x)
	tests := []struct {
		name     string
		f        func(float64) float64
		analytic float64
	}{
		{
			name:     "x**2",
			f:        func(v float64) float64 { return v * v },
			analytic: (hi*hi*hi - lo*lo*lo) / 3,
		},
		{
			name:     "sin(x)",
			f:        math.Sin,
			analytic: math.Cos(lo) - math.Cos(hi),
		},
		{
			name:     "exp(-x)",
			f:        func(v float64) float64 { return math.Exp(-v) },
			analytic: math.Exp(-lo) - math.Exp(-hi),
		},
	}
	for _, test := range tests {
		y := arrayops.Map(test.f, x)
		reference := gonumint.Trapezoidal(x, y)
		for _, in := range integrators {
			t.Run(fmt.Sprintf("%s/%s", test.name, in.name), func(t *testing.T) {
				have, err := in.f(y, x)
				if err != nil {
					t.Fatal(err)
				}
				if !scalar.EqualWithinRel(have, test.analytic, 1e-3) {
					t.Errorf("analytic: %g != %g", have, test.analytic)
				}
				if !scalar.EqualWithinRel(have, reference, 1e-12) {
					t.Errorf("reference: %g != %g", have, reference)
				}
			})
		}
	}
}

func TestTrapzNonUniform(t *testing.T) {
	u, err := arrayops.Linspace(0, 2, 257)
	if err != nil {
		t.Fatal(err)
	}
	// Cluster samples near zero.
	x := arrayops.Map(func(v float64) float64 { return v * v * v }, u)
	y := arrayops.Map(func(v float64) float64 { return math.Cos(v) + v }, x)
	want := gonumint.Trapezoidal(x, y)
	for _, in := range integrators {
		t.Run(in.name, func(t *testing.T) {
			have, err := in.f(y, x)
			if err != nil {
				t.Fatal(err)
			}
			if !scalar.EqualWithinRel(have, want, 1e-12) {
				t.Errorf("%g != %g", have, want)
			}
		})
	}

	// Spacing must come from x, not be assumed constant.
	have, err := Trapz([]float64{1, 1, 1}, []float64{0, 1, 10})
	if err != nil {
		t.Fatal(err)
	}
	if have != 10 {
		t.Errorf("uneven spacing: %g != 10", have)
	}
}

func TestTrapzTwoSamples(t *testing.T) {
	tests := []struct{ x0, y0, x1, y1 float64 }{
		{x0: 0, y0: 0, x1: 1, y1: 1},
		{x0: 1, y0: 2, x1: 3, y1: 5},
		{x0: -0.3, y0: 1e10, x1: 0.7, y1: -3},
		{x0: 2, y0: 1, x1: 1, y1: 1},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test), func(t *testing.T) {
			want := (test.x1 - test.x0) * (test.y0 + test.y1) / 2
			have, err := Trapz([]float64{test.y0, test.y1}, []float64{test.x0, test.x1})
			if err != nil {
				t.Fatal(err)
			}
			if have != want {
				t.Errorf("%g != %g", have, want)
			}
		})
	}
}

func TestTrapzReverse(t *testing.T) {
	x, err := arrayops.Linspace(-1, 4, 333)
	if err != nil {
		t.Fatal(err)
	}
	y := arrayops.Map(func(v float64) float64 { return math.Exp(v) * math.Sin(3*v) }, x)
	xr, yr := reversed(x), reversed(y)
	for _, in := range integrators {
		t.Run(in.name, func(t *testing.T) {
			fwd, err := in.f(y, x)
			if err != nil {
				t.Fatal(err)
			}
			rev, err := in.f(yr, xr)
			if err != nil {
				t.Fatal(err)
			}
			if !scalar.EqualWithinAbsOrRel(rev, -fwd, 1e-10, 1e-10) {
				t.Errorf("reversed: %g != %g", rev, -fwd)
			}
		})
	}
}

func reversed(s []float64) []float64 {
	o := make([]float64, len(s))
	for i, v := range s {
		o[len(s)-1-i] = v
	}
	return o
}

func TestTrapzIdempotent(t *testing.T) {
	x, err := arrayops.Linspace(0, 10, 1000)
	if err != nil {
		t.Fatal(err)
	}
	y := arrayops.Map(math.Sin, x)
	for _, in := range integrators {
		a, _ := in.f(y, x)
		b, _ := in.f(y, x)
		if a != b {
			t.Errorf("%s: %g != %g", in.name, a, b)
		}
	}
}

func TestTrapzErrors(t *testing.T) {
	for _, in := range integrators {
		t.Run(in.name, func(t *testing.T) {
			_, err := in.f([]float64{1.0}, []float64{1.0})
			var ins ErrInsufficientSamples
			if !errors.As(err, &ins) {
				t.Errorf("one sample: %v is not ErrInsufficientSamples", err)
			} else if ins.N != 1 {
				t.Errorf("samples: %d != 1", ins.N)
			}

			_, err = in.f(nil, nil)
			if !errors.As(err, &ins) {
				t.Errorf("no samples: %v is not ErrInsufficientSamples", err)
			}

			_, err = in.f([]float64{1.0, 2.0}, []float64{1.0, 2.0, 3.0})
			var sm ErrShapeMismatch
			if !errors.As(err, &sm) {
				t.Errorf("mismatch: %v is not ErrShapeMismatch", err)
			} else if sm.LenY != 2 || sm.LenX != 3 {
				t.Errorf("shape: %+v", sm)
			}

			// Length mismatch takes precedence.
			_, err = in.f([]float64{1.0}, []float64{})
			if !errors.As(err, &sm) {
				t.Errorf("short mismatch: %v is not ErrShapeMismatch", err)
			}
		})
	}
}

func TestTrapzConcurrent(t *testing.T) {
	x, err := arrayops.Linspace(0, 10, 1000)
	if err != nil {
		t.Fatal(err)
	}
	y := arrayops.Map(func(v float64) float64 { return v * v }, x)
	want, _ := Trapz(y, x)

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Trapz(y, x)
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		if r != want {
			t.Errorf("goroutine %d: %g != %g", i, r, want)
		}
	}
}

func TestFunc(t *testing.T) {
	have, err := Func(math.Sin, 0, math.Pi, 2001)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinRel(have, 2, 1e-6) {
		t.Errorf("sin over [0, pi]: %g != 2", have)
	}

	_, err = Func(math.Sin, 0, 1, 0)
	var ia arrayops.ErrInvalidArgument
	if !errors.As(err, &ia) {
		t.Errorf("zero samples: %v is not ErrInvalidArgument", err)
	}

	_, err = Func(math.Sin, 0, 1, 1)
	var ins ErrInsufficientSamples
	if !errors.As(err, &ins) {
		t.Errorf("one sample: %v is not ErrInsufficientSamples", err)
	}
}

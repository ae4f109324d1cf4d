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

package integrate

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/quadrature/arrayops"
)

// Config holds the settings for integrating an expression with
// successive refinement.
type Config struct {
	// Integrand is an expression in the variable x, for
	// example "x ** 2" or "exp(-x)".
	Integrand string

	// Start and Stop are the integration bounds.
	Start, Stop float64

	// Samples is the number of samples in the initial estimate.
	// MaxSamples is the largest number of samples refinement
	// is allowed to reach.
	Samples, MaxSamples int

	// MinSteps is the number of refinements performed before
	// successive estimates are compared.
	MinSteps int

	// Tolerance is the change between successive estimates below
	// which the integral is considered converged. It is relative to
	// the estimate, or absolute when the estimate is smaller than 1.
	Tolerance float64
}

// Default settings used for fields left at zero.
const (
	DefaultSamples    = 2
	DefaultMaxSamples = 1<<20 + 1
	DefaultMinSteps   = 4
	DefaultTolerance  = 1.0e-6
)

// LoadConfig reads a TOML configuration from r, fills in defaults,
// and validates the result.
func LoadConfig(r io.Reader) (*Config, error) {
	c := new(Config)
	if _, err := toml.DecodeReader(r, c); err != nil {
		return nil, fmt.Errorf("integrate: decoding configuration: %w", err)
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setDefaults() {
	if c.Samples == 0 {
		c.Samples = DefaultSamples
	}
	if c.MaxSamples == 0 {
		c.MaxSamples = DefaultMaxSamples
	}
	if c.MinSteps == 0 {
		c.MinSteps = DefaultMinSteps
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
}

// Validate checks that the configuration can be used for integration.
func (c *Config) Validate() error {
	switch {
	case c.Integrand == "":
		return errors.New("integrate: configuration: missing Integrand")
	case c.Samples < 2:
		return fmt.Errorf("integrate: configuration: Samples=%d; must be at least 2", c.Samples)
	case c.MaxSamples < c.Samples:
		return fmt.Errorf("integrate: configuration: MaxSamples=%d is less than Samples=%d", c.MaxSamples, c.Samples)
	case c.MinSteps < 1:
		return fmt.Errorf("integrate: configuration: MinSteps=%d; must be at least 1", c.MinSteps)
	case !(c.Tolerance > 0):
		return fmt.Errorf("integrate: configuration: Tolerance=%g; must be positive", c.Tolerance)
	case math.IsNaN(c.Start) || math.IsNaN(c.Stop) || math.IsInf(c.Start, 0) || math.IsInf(c.Stop, 0):
		return fmt.Errorf("integrate: configuration: bounds [%g, %g] must be finite", c.Start, c.Stop)
	}
	return nil
}

// ErrNotConverged happens when successive estimates still differ by more
// than the tolerance when the sample limit is reached.
type ErrNotConverged struct {
	Samples  int
	Estimate float64
	Change   float64
}

func (e ErrNotConverged) Error() string {
	return fmt.Sprintf("integrate: not converged after %d samples; estimate %g, change %g",
		e.Samples, e.Estimate, e.Change)
}

// Result is the outcome of a refined integration.
type Result struct {
	// Value is the final estimate of the integral.
	Value float64

	// Samples is the number of samples used for Value.
	Samples int

	// Steps is the number of refinements performed.
	Steps int
}

// Integrator integrates an expression, halving the sample spacing until
// successive estimates agree.
type Integrator struct {
	Config

	// Log receives progress messages. If nil, the logrus standard
	// logger is used.
	Log logrus.FieldLogger
}

// NewIntegrator returns an integrator for the given configuration.
func NewIntegrator(c Config) (*Integrator, error) {
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Integrator{Config: c}, nil
}

func (in *Integrator) log() logrus.FieldLogger {
	if in.Log == nil {
		return logrus.StandardLogger()
	}
	return in.Log
}

// estimate integrates the integrand using n samples.
func (in *Integrator) estimate(n int) (float64, error) {
	x, err := arrayops.Linspace(in.Start, in.Stop, n)
	if err != nil {
		return 0, err
	}
	y, err := arrayops.Eval(in.Integrand, x)
	if err != nil {
		return 0, err
	}
	return Trapz(y, x)
}

// Integrate estimates the integral of the configured integrand. Each
// refinement inserts a sample at the midpoint of every interval
// (n samples become 2n-1). After at least MinSteps refinements, it stops
// once the change between estimates is within Tolerance, scaled by the
// magnitude of the estimate but never by less than 1. If MaxSamples would
// be exceeded first, the last estimate is returned along with an
// ErrNotConverged.
func (in *Integrator) Integrate() (Result, error) {
	log := in.log().WithField("integrand", in.Integrand)
	n := in.Samples
	prev, err := in.estimate(n)
	if err != nil {
		return Result{}, err
	}
	change := math.Inf(1)
	for steps := 1; ; steps++ {
		next := 2*n - 1
		if next > in.MaxSamples {
			log.WithFields(logrus.Fields{
				"samples":  n,
				"estimate": prev,
				"change":   change,
			}).Warn("integration did not converge")
			return Result{Value: prev, Samples: n, Steps: steps - 1},
				ErrNotConverged{Samples: n, Estimate: prev, Change: change}
		}
		cur, err := in.estimate(next)
		if err != nil {
			return Result{}, err
		}
		diff := math.Abs(cur - prev)
		change = diff / math.Max(math.Abs(cur), 1)
		log.WithFields(logrus.Fields{
			"samples":  next,
			"estimate": cur,
			"change":   change,
		}).Debug("refined integral")
		if steps >= in.MinSteps && change <= in.Tolerance {
			return Result{Value: cur, Samples: next, Steps: steps}, nil
		}
		prev, n = cur, next
	}
}

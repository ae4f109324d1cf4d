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

package arrayops

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// ErrExpression happens when an expression cannot be parsed or
// does not evaluate to a number.
type ErrExpression struct {
	Expr string
	Err  error
}

func (e ErrExpression) Error() string {
	return fmt.Sprintf("arrayops: expression '%s': %v", e.Expr, e.Err)
}

func (e ErrExpression) Unwrap() error { return e.Err }

// functions are the elementary functions available to expressions.
var functions = map[string]govaluate.ExpressionFunction{
	"sin":  unary("sin", math.Sin),
	"cos":  unary("cos", math.Cos),
	"exp":  unary("exp", math.Exp),
	"log":  unary("log", math.Log),
	"sqrt": unary("sqrt", math.Sqrt),
	"abs":  unary("abs", math.Abs),
}

func unary(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument; got %d", name, len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%s: argument %v is not a number", name, args[0])
		}
		return f(v), nil
	}
}

// Eval evaluates expr, an arithmetic expression in the variable x,
// at each element of x. For example, "x ** 2", "sin(x)", or "exp(-x)".
func Eval(expr string, x []float64) ([]float64, error) {
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, functions)
	if err != nil {
		return nil, ErrExpression{Expr: expr, Err: err}
	}
	o := make([]float64, len(x))
	params := make(map[string]interface{}, 1)
	for i, v := range x {
		params["x"] = v
		r, err := e.Evaluate(params)
		if err != nil {
			return nil, ErrExpression{Expr: expr, Err: err}
		}
		f, ok := r.(float64)
		if !ok {
			return nil, ErrExpression{Expr: expr, Err: fmt.Errorf("result %v is not a number", r)}
		}
		o[i] = f
	}
	return o, nil
}

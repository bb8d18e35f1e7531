// Package potential gives meaning to the operator tags of the layer
// calculus: the single-layer and double-layer potentials, their formal
// derivatives, and their principal-value limits at the interface.
package potential

import (
	"fmt"

	"github.com/isuruf/jumplab/internal/expr"
)

// Operator tags. The primed variants stand for successive formal derivatives
// taken before limiting; the pv variants are the principal-value limit
// operators produced by TakeLimit and left uninterpreted.
const (
	TagSingle       = "S"
	TagDouble       = "D"
	TagSinglePrime  = "Sp"
	TagDoublePrime  = "Dp"
	TagSingleSecond = "Spp"
	TagDoubleSecond = "Dpp"
	TagSinglePV     = "Sp_pv"
	TagDoublePV     = "Dp_pv"
)

// Interface sides for limits.
const (
	Exterior = 1
	Interior = -1
	// Average selects the symmetric two-sided limit, leaving only the
	// principal-value term.
	Average = 0
)

func Single(density expr.Expr) expr.Expr      { return expr.Op(TagSingle, density) }
func Double(density expr.Expr) expr.Expr      { return expr.Op(TagDouble, density) }
func SinglePrime(density expr.Expr) expr.Expr { return expr.Op(TagSinglePrime, density) }
func DoublePrime(density expr.Expr) expr.Expr { return expr.Op(TagDoublePrime, density) }

// TakeLimit rewrites every single-layer and double-layer application to its
// limiting value on the given interface side:
//
//	S(z) -> (side/2)*z + Sp_pv(z)
//	D(z) -> (-side/2)*z + Dp_pv(z)
//
// The rewrite is a pure substitution: it recurses through sums, products and
// operator arguments, and every other node kind passes through unchanged.
func TakeLimit(e expr.Expr, side int) (expr.Expr, error) {
	if side != Exterior && side != Interior && side != Average {
		return nil, fmt.Errorf("side must be +1, -1 or 0, got %d", side)
	}
	return limit(e, side), nil
}

func limit(e expr.Expr, side int) expr.Expr {
	switch v := e.(type) {
	case *expr.Add:
		terms := v.Terms()
		out := make([]expr.Expr, len(terms))
		for i, t := range terms {
			out[i] = limit(t, side)
		}
		return expr.Sum(out...)
	case *expr.Mul:
		factors := v.Factors()
		out := make([]expr.Expr, len(factors))
		for i, f := range factors {
			out[i] = limit(f, side)
		}
		return expr.Prod(out...)
	case *expr.Apply:
		arg := limit(v.Arg(), side)
		switch v.Tag() {
		case TagSingle:
			if side == Average {
				return expr.Op(TagSinglePV, arg)
			}
			return expr.Sum(expr.Prod(expr.F(int64(side), 2), arg), expr.Op(TagSinglePV, arg))
		case TagDouble:
			if side == Average {
				return expr.Op(TagDoublePV, arg)
			}
			return expr.Sum(expr.Prod(expr.F(int64(-side), 2), arg), expr.Op(TagDoublePV, arg))
		default:
			return expr.Op(v.Tag(), arg)
		}
	default:
		return e
	}
}

var derivTags = map[string]string{
	TagSingle:      TagSinglePrime,
	TagDouble:      TagDoublePrime,
	TagSinglePrime: TagSingleSecond,
	TagDoublePrime: TagDoubleSecond,
}

// FormalDerivative takes one formal differentiation step in the operator
// calculus: S -> Sp, D -> Dp, Sp -> Spp, Dp -> Dpp. The derivative acts on
// the potential, not its density, so a retagged application keeps its
// argument as-is. Every other compound node re-applies the same operator to
// recursively transformed arguments; leaves are unchanged.
func FormalDerivative(e expr.Expr) expr.Expr {
	switch v := e.(type) {
	case *expr.Add:
		terms := v.Terms()
		out := make([]expr.Expr, len(terms))
		for i, t := range terms {
			out[i] = FormalDerivative(t)
		}
		return expr.Sum(out...)
	case *expr.Mul:
		factors := v.Factors()
		out := make([]expr.Expr, len(factors))
		for i, f := range factors {
			out[i] = FormalDerivative(f)
		}
		return expr.Prod(out...)
	case *expr.Apply:
		if next, ok := derivTags[v.Tag()]; ok {
			return expr.Op(next, v.Arg())
		}
		return expr.Op(v.Tag(), FormalDerivative(v.Arg()))
	default:
		return e
	}
}

// ContainsTag reports whether any of the given operator tags occurs in the
// expression.
func ContainsTag(e expr.Expr, tags ...string) bool {
	switch v := e.(type) {
	case *expr.Add:
		for _, t := range v.Terms() {
			if ContainsTag(t, tags...) {
				return true
			}
		}
	case *expr.Mul:
		for _, f := range v.Factors() {
			if ContainsTag(f, tags...) {
				return true
			}
		}
	case *expr.Apply:
		for _, tag := range tags {
			if v.Tag() == tag {
				return true
			}
		}
		return ContainsTag(v.Arg(), tags...)
	}
	return false
}

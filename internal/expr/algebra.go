package expr

// Expand distributes products over sums and collects like terms. Nothing
// beyond polynomial expansion is performed; operator applications keep their
// tags and only have their arguments expanded.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Expand(t)
		}
		return Sum(terms...)
	case *Mul:
		// Running cartesian product of the factors' terms.
		expanded := []Expr{N(1)}
		for _, f := range v.factors {
			ef := Expand(f)
			var addTerms []Expr
			if a, ok := ef.(*Add); ok {
				addTerms = a.terms
			} else {
				addTerms = []Expr{ef}
			}
			next := make([]Expr, 0, len(expanded)*len(addTerms))
			for _, left := range expanded {
				for _, t := range addTerms {
					next = append(next, Prod(left, t))
				}
			}
			expanded = next
		}
		return Sum(expanded...)
	case *Apply:
		return Op(v.tag, Expand(v.arg))
	default:
		return e
	}
}

// CoeffOf extracts the coefficient of the designated monomial from an
// expression: the sum, over every expanded term containing target as a
// top-level factor, of the remaining factors. Nested occurrences do not
// count; Sp(Dp(t)) contributes nothing to the coefficient of Dp(t).
func CoeffOf(e, target Expr) Expr {
	expanded := Expand(e)

	var terms []Expr
	if a, ok := expanded.(*Add); ok {
		terms = a.terms
	} else {
		terms = []Expr{expanded}
	}

	coeffs := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if c, ok := termCoeff(t, target); ok {
			coeffs = append(coeffs, c)
		}
	}
	if len(coeffs) == 0 {
		return N(0)
	}
	return Sum(coeffs...)
}

func termCoeff(term, target Expr) (Expr, bool) {
	if term.Equal(target) {
		return N(1), true
	}
	m, ok := term.(*Mul)
	if !ok {
		return nil, false
	}
	for i, f := range m.factors {
		if !f.Equal(target) {
			continue
		}
		rest := make([]Expr, 0, len(m.factors)-1)
		rest = append(rest, m.factors[:i]...)
		rest = append(rest, m.factors[i+1:]...)
		if len(rest) == 1 {
			return rest[0], true
		}
		return &Mul{factors: rest}, true
	}
	return nil, false
}

// Equation is a symbolic equality.
type Equation struct {
	LHS, RHS Expr
}

func Eq(lhs, rhs Expr) *Equation { return &Equation{LHS: lhs, RHS: rhs} }

func (q *Equation) Expand() *Equation { return &Equation{LHS: Expand(q.LHS), RHS: Expand(q.RHS)} }

func (q *Equation) String() string { return q.LHS.String() + " = " + q.RHS.String() }

func (q *Equation) LaTeX() string { return q.LHS.LaTeX() + " = " + q.RHS.LaTeX() }

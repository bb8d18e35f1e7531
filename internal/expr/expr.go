// Package expr implements the immutable symbolic-expression trees the
// derivation pipeline rewrites: exact rational constants, named symbols,
// n-ary sums and products, and tagged operator applications.
package expr

import (
	"fmt"
	"math/big"
	"strings"
)

// Expr is a node in a symbolic-expression tree. Expressions are immutable;
// every transformation builds a new tree.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Equal(other Expr) bool
	// Eval computes a numeric value under the given symbol bindings. It
	// fails on unbound symbols and on operator applications, which have no
	// numeric interpretation.
	Eval(bindings map[string]float64) (float64, error)
}

var ratOne = big.NewRat(1, 1)

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F builds the fraction p/q.
func F(p, q int64) *Num {
	if q == 0 {
		panic("expr: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func (n *Num) Simplify() Expr { return n }
func (n *Num) IsZero() bool   { return n.val.Sign() == 0 }
func (n *Num) Float64() float64 {
	f, _ := n.val.Float64()
	return f
}
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

func (n *Num) String() string {
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	v := new(big.Rat).Set(n.val)
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}

func (n *Num) Eval(map[string]float64) (float64, error) { return n.Float64(), nil }

// Sym is a free symbolic variable.
type Sym struct{ name string }

func V(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) Name() string   { return s.name }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string  { return latexName(s.name) }

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

func (s *Sym) Eval(bindings map[string]float64) (float64, error) {
	v, ok := bindings[s.name]
	if !ok {
		return 0, fmt.Errorf("unbound symbol: %s", s.name)
	}
	return v, nil
}

// Add is an n-ary sum.
type Add struct{ terms []Expr }

// Sum builds a simplified sum: nested sums are flattened, numeric terms are
// folded, and like terms are collected with exact rational coefficients.
// Term order follows first appearance, so equal construction orders yield
// structurally equal results.
func Sum(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	constant := new(big.Rat)
	order := make([]string, 0, len(flat))
	coeffs := make(map[string]*big.Rat, len(flat))
	parts := make(map[string]Expr, len(flat))

	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constant.Add(constant, n.val)
			continue
		}
		c, part := splitCoeff(t)
		key := part.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = new(big.Rat)
			parts[key] = part
		}
		coeffs[key].Add(coeffs[key], c)
	}

	terms := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		c := coeffs[key]
		if c.Sign() == 0 {
			continue
		}
		if c.Cmp(ratOne) == 0 {
			terms = append(terms, parts[key])
		} else {
			terms = append(terms, Prod(&Num{val: c}, parts[key]))
		}
	}
	if constant.Sign() != 0 {
		terms = append(terms, &Num{val: constant})
	}

	if len(terms) == 0 {
		return N(0)
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return &Add{terms: terms}
}

// splitCoeff separates the leading numeric coefficient of a simplified term
// from its symbolic part.
func splitCoeff(e Expr) (*big.Rat, Expr) {
	m, ok := e.(*Mul)
	if !ok || len(m.factors) == 0 {
		return ratOne, e
	}
	n, ok := m.factors[0].(*Num)
	if !ok {
		return ratOne, e
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return n.val, rest[0]
	}
	return n.val, &Mul{factors: rest}
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.String()
		if i == 0 {
			b.WriteString(s)
			continue
		}
		if strings.HasPrefix(s, "-") {
			b.WriteString(" - " + s[1:])
		} else {
			b.WriteString(" + " + s)
		}
	}
	return b.String()
}

func (a *Add) LaTeX() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.LaTeX()
		if i == 0 {
			b.WriteString(s)
			continue
		}
		if strings.HasPrefix(s, "-") {
			b.WriteString(" - " + s[1:])
		} else {
			b.WriteString(" + " + s)
		}
	}
	return b.String()
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) Eval(bindings map[string]float64) (float64, error) {
	acc := 0.0
	for _, t := range a.terms {
		v, err := t.Eval(bindings)
		if err != nil {
			return 0, err
		}
		acc += v
	}
	return acc, nil
}

// Mul is an n-ary product.
type Mul struct{ factors []Expr }

// Prod builds a simplified product: nested products are flattened and
// numeric factors are folded into a single leading coefficient. Products are
// not distributed over sums here; that is Expand's job.
func Prod(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := big.NewRat(1, 1)
	rest := make([]Expr, 0, len(flat))
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff.Mul(coeff, n.val)
			continue
		}
		rest = append(rest, f)
	}

	if coeff.Sign() == 0 {
		return N(0)
	}
	if len(rest) == 0 {
		return &Num{val: coeff}
	}
	if coeff.Cmp(ratOne) == 0 {
		if len(rest) == 1 {
			return rest[0]
		}
		return &Mul{factors: rest}
	}
	factors := make([]Expr, 0, len(rest)+1)
	factors = append(factors, &Num{val: coeff})
	factors = append(factors, rest...)
	return &Mul{factors: factors}
}

func (m *Mul) String() string {
	parts := make([]string, 0, len(m.factors))
	for i, f := range m.factors {
		s := f.String()
		if i == 0 {
			if n, ok := f.(*Num); ok && n.val.Cmp(big.NewRat(-1, 1)) == 0 {
				parts = append(parts, "-")
				continue
			}
		}
		if _, ok := f.(*Add); ok {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	if len(parts) > 0 && parts[0] == "-" {
		return "-" + strings.Join(parts[1:], "*")
	}
	return strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, 0, len(m.factors))
	for i, f := range m.factors {
		s := f.LaTeX()
		if i == 0 {
			if n, ok := f.(*Num); ok && n.val.Cmp(big.NewRat(-1, 1)) == 0 {
				parts = append(parts, "-")
				continue
			}
		}
		if _, ok := f.(*Add); ok {
			s = "\\left(" + s + "\\right)"
		}
		parts = append(parts, s)
	}
	if len(parts) > 0 && parts[0] == "-" {
		return "-" + strings.Join(parts[1:], " \\, ")
	}
	return strings.Join(parts, " \\, ")
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) Eval(bindings map[string]float64) (float64, error) {
	acc := 1.0
	for _, f := range m.factors {
		v, err := f.Eval(bindings)
		if err != nil {
			return 0, err
		}
		acc *= v
	}
	return acc, nil
}

// Apply is the application of a tagged operator to an argument expression.
// Tags are uninterpreted here; the potential package assigns them meaning.
type Apply struct {
	tag string
	arg Expr
}

func Op(tag string, arg Expr) *Apply { return &Apply{tag: tag, arg: arg.Simplify()} }

func (p *Apply) Simplify() Expr { return p }
func (p *Apply) Tag() string    { return p.tag }
func (p *Apply) Arg() Expr      { return p.arg }

func (p *Apply) String() string { return p.tag + "(" + p.arg.String() + ")" }

func (p *Apply) LaTeX() string {
	return latexTag(p.tag) + "\\left(" + p.arg.LaTeX() + "\\right)"
}

func (p *Apply) Equal(other Expr) bool {
	o, ok := other.(*Apply)
	return ok && p.tag == o.tag && p.arg.Equal(o.arg)
}

func (p *Apply) Eval(map[string]float64) (float64, error) {
	return 0, fmt.Errorf("cannot evaluate operator %s numerically", p.tag)
}

// latexTag turns an operator tag into prime notation: Sp -> S', Dpp -> D'',
// Sp_pv -> S'_{pv}.
func latexTag(tag string) string {
	base := tag
	suffix := ""
	if strings.HasSuffix(base, "_pv") {
		base = strings.TrimSuffix(base, "_pv")
		suffix = "_{\\mathrm{pv}}"
	}
	primes := ""
	for len(base) > 1 && strings.HasSuffix(base, "p") {
		base = base[:len(base)-1]
		primes += "'"
	}
	return base + primes + suffix
}

// latexName renders common Greek symbol names with a backslash.
func latexName(name string) string {
	switch name {
	case "xi", "sigma", "mu", "eta", "phi", "lambda", "tau":
		return "\\" + name
	}
	return name
}

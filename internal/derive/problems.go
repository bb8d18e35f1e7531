package derive

import (
	"fmt"
	"sort"

	"github.com/isuruf/jumplab/internal/expr"
	"github.com/isuruf/jumplab/internal/potential"
)

// Registry maps problem names to fresh problem definitions. Every Get builds
// new expression trees, so runs never share state.
type Registry struct {
	problems map[string]func() *Problem
}

func NewRegistry() *Registry {
	r := &Registry{problems: make(map[string]func() *Problem)}
	r.problems["transmission"] = newTransmission
	r.problems["dirichlet"] = newDirichlet
	r.problems["neumann"] = newNeumann
	return r
}

func (r *Registry) Get(name string) (*Problem, error) {
	fn, ok := r.problems[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s", name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.problems))
	for name := range r.problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newTransmission is the wave transmission problem: the interior field is
// represented by S(xi) + k*D(t) - 2k*S(Dp(t)), the exterior by S(xi), and
// the two fields are matched across the interface with coupling constants c
// (values) and k (derivatives).
func newTransmission() *Problem {
	xi := expr.V("xi")
	t := expr.V("t")
	k := expr.V("k")

	return &Problem{
		Name:        "transmission",
		Description: "wave transmission across an interface, mixed S+D interior representation",
		Interior: expr.Sum(
			potential.Single(xi),
			expr.Prod(k, potential.Double(t)),
			expr.Prod(expr.N(-2), k, potential.Single(potential.DoublePrime(t))),
		),
		Exterior:      potential.Single(xi),
		ValueCoupling: expr.V("c"),
		DerivCoupling: k,
		ValueJump:     expr.V("a"),
		DerivJump:     expr.V("b"),
		Target:        potential.DoublePrime(t),
		SweepParam:    "k",
	}
}

// newDirichlet is the combined-field representation D(mu) - eta*S(mu) for a
// Dirichlet problem; there is no exterior field to match against.
func newDirichlet() *Problem {
	mu := expr.V("mu")
	eta := expr.V("eta")

	return &Problem{
		Name:        "dirichlet",
		Description: "combined-field representation D - eta*S for Dirichlet data",
		Interior: expr.Sum(
			potential.Double(mu),
			expr.Prod(expr.N(-1), eta, potential.Single(mu)),
		),
		Exterior:      expr.N(0),
		ValueCoupling: expr.N(1),
		DerivCoupling: expr.N(1),
		ValueJump:     expr.V("g"),
		DerivJump:     expr.V("h"),
		Target:        potential.SinglePrime(mu),
		SweepParam:    "eta",
	}
}

// newNeumann is the Green representation S(phi) - D(g) with prescribed
// boundary data g and unknown normal derivative density phi.
func newNeumann() *Problem {
	phi := expr.V("phi")
	g := expr.V("g")

	return &Problem{
		Name:        "neumann",
		Description: "Green representation S(phi) - D(g) for Neumann data",
		Interior: expr.Sum(
			potential.Single(phi),
			expr.Prod(expr.N(-1), potential.Double(g)),
		),
		Exterior:      expr.N(0),
		ValueCoupling: expr.N(1),
		DerivCoupling: expr.N(1),
		ValueJump:     g,
		DerivJump:     expr.V("h"),
		Target:        potential.DoublePrime(g),
	}
}

package expr

import "testing"

func TestExpandDistributes(t *testing.T) {
	x, y := V("x"), V("y")

	got := Expand(Prod(N(2), Sum(x, y)))
	if got.String() != "2*x + 2*y" {
		t.Errorf("Expand(2*(x+y)) = %q, want %q", got.String(), "2*x + 2*y")
	}

	got = Expand(Prod(Sum(x, y), Sum(x, N(1))))
	if got.String() != "x*x + x + y*x + y" {
		t.Errorf("Expand((x+y)*(x+1)) = %q", got.String())
	}
}

func TestExpandEntersOperatorArgs(t *testing.T) {
	x, y := V("x"), V("y")

	got := Expand(Op("S", Prod(N(2), Sum(x, y))))
	if got.String() != "S(2*x + 2*y)" {
		t.Errorf("Expand inside operator = %q", got.String())
	}
}

func TestExpandIsIdentityOnExpandedForms(t *testing.T) {
	x := V("x")
	e := Sum(Prod(N(2), x), Op("Dp", x))

	if !Expand(e).Equal(e) {
		t.Errorf("Expand changed already-expanded %s to %s", e, Expand(e))
	}
}

func TestCoeffOf(t *testing.T) {
	k, x := V("k"), V("t")
	dp := Op("Dp", x)

	e := Sum(Prod(k, dp), dp, Op("Sp", dp))
	got := CoeffOf(e, dp)
	want := Sum(k, N(1))
	if !got.Equal(want) {
		t.Errorf("CoeffOf = %s, want %s", got, want)
	}
}

func TestCoeffOfIgnoresNestedOccurrences(t *testing.T) {
	x := V("t")
	dp := Op("Dp", x)

	got := CoeffOf(Op("Sp", dp), dp)
	if !got.Equal(N(0)) {
		t.Errorf("nested occurrence contributed: %s", got)
	}
}

func TestCoeffOfAbsent(t *testing.T) {
	got := CoeffOf(Sum(V("x"), N(4)), Op("Dp", V("t")))
	if !got.Equal(N(0)) {
		t.Errorf("CoeffOf absent monomial = %s, want 0", got)
	}
}

func TestEquationExpand(t *testing.T) {
	x, y := V("x"), V("y")

	q := Eq(Prod(N(2), Sum(x, y)), V("a")).Expand()
	if q.String() != "2*x + 2*y = a" {
		t.Errorf("Equation.Expand = %q", q.String())
	}
}

// Package derive runs jump-condition derivations: it limits interior and
// exterior potential representations at the interface, forms the value and
// derivative matching conditions, expands them, and extracts the coefficient
// of a designated monomial.
package derive

import (
	"context"
	"fmt"

	"github.com/isuruf/jumplab/internal/expr"
	"github.com/isuruf/jumplab/internal/potential"
)

// Problem describes one boundary-value problem: the two potential
// representations and the couplings and jump data of its matching conditions.
type Problem struct {
	Name        string
	Description string

	// Interior and Exterior are the potential representations whose limits
	// are matched across the interface.
	Interior expr.Expr
	Exterior expr.Expr

	// ValueCoupling multiplies the exterior trace in the value condition;
	// DerivCoupling does the same in the derivative condition.
	ValueCoupling expr.Expr
	DerivCoupling expr.Expr

	// ValueJump and DerivJump are the prescribed jump data on the right-hand
	// sides.
	ValueJump expr.Expr
	DerivJump expr.Expr

	// Target is the monomial whose coefficient is reported from the expanded
	// derivative condition.
	Target expr.Expr

	// SweepParam names the free parameter the coefficient is swept over;
	// empty when the coefficient is constant.
	SweepParam string
}

// Step is one recorded stage of a derivation, carrying either a bare
// expression or an equation.
type Step struct {
	Name     string
	Expr     expr.Expr
	Equation *expr.Equation
}

func (s Step) Render() string {
	if s.Equation != nil {
		return s.Equation.String()
	}
	return s.Expr.String()
}

func (s Step) RenderLaTeX() string {
	if s.Equation != nil {
		return s.Equation.LaTeX()
	}
	return s.Expr.LaTeX()
}

// Result holds the two expanded matching conditions and the extracted
// coefficient, plus the full step trace.
type Result struct {
	Problem        string
	ValueCondition *expr.Equation
	DerivCondition *expr.Equation
	Coefficient    expr.Expr
	Target         expr.Expr
	Steps          []Step
}

// StepError reports a derivation stage that produced an inconsistent
// intermediate expression.
type StepError struct {
	Step    string
	Message string
}

func (e StepError) Error() string { return fmt.Sprintf("%s: %s", e.Step, e.Message) }

// Run executes the five-stage derivation for a problem. The pipeline is
// strictly linear; ctx is checked between stages.
func Run(ctx context.Context, p *Problem) (*Result, error) {
	res := &Result{Problem: p.Name, Target: p.Target}
	record := func(name string, e expr.Expr, q *expr.Equation) {
		res.Steps = append(res.Steps, Step{Name: name, Expr: e, Equation: q})
	}

	record("interior representation", p.Interior, nil)
	record("exterior representation", p.Exterior, nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inLim, err := potential.TakeLimit(p.Interior, potential.Interior)
	if err != nil {
		return nil, fmt.Errorf("interior limit: %w", err)
	}
	exLim, err := potential.TakeLimit(p.Exterior, potential.Exterior)
	if err != nil {
		return nil, fmt.Errorf("exterior limit: %w", err)
	}
	record("interior trace", inLim, nil)
	record("exterior trace", exLim, nil)

	valueLHS := expr.Sum(inLim, expr.Prod(expr.N(-1), p.ValueCoupling, exLim))
	res.ValueCondition = expr.Eq(valueLHS, p.ValueJump).Expand()
	if potential.ContainsTag(res.ValueCondition.LHS, potential.TagSingle, potential.TagDouble) {
		return nil, StepError{Step: "value condition", Message: "residual layer operator after limiting"}
	}
	record("value condition", nil, res.ValueCondition)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dIn := potential.FormalDerivative(p.Interior)
	dEx := potential.FormalDerivative(p.Exterior)
	record("interior derivative", dIn, nil)
	record("exterior derivative", dEx, nil)

	dInLim, err := potential.TakeLimit(dIn, potential.Interior)
	if err != nil {
		return nil, fmt.Errorf("interior derivative limit: %w", err)
	}
	dExLim, err := potential.TakeLimit(dEx, potential.Exterior)
	if err != nil {
		return nil, fmt.Errorf("exterior derivative limit: %w", err)
	}

	derivLHS := expr.Sum(dInLim, expr.Prod(expr.N(-1), p.DerivCoupling, dExLim))
	res.DerivCondition = expr.Eq(derivLHS, p.DerivJump).Expand()
	if potential.ContainsTag(res.DerivCondition.LHS, potential.TagSingle, potential.TagDouble) {
		return nil, StepError{Step: "derivative condition", Message: "residual layer operator after limiting"}
	}
	record("derivative condition", nil, res.DerivCondition)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Coefficient = expr.CoeffOf(res.DerivCondition.LHS, p.Target)
	record(fmt.Sprintf("coefficient of %s", p.Target.String()), res.Coefficient, nil)

	return res, nil
}

// SweepCoefficient evaluates a coefficient expression over points equally
// spaced values of param in [from, to], with any remaining free symbols taken
// from bindings.
func SweepCoefficient(coeff expr.Expr, param string, bindings map[string]float64, from, to float64, points int) ([]float64, error) {
	if param == "" {
		return nil, fmt.Errorf("no sweep parameter")
	}
	if points < 2 {
		return nil, fmt.Errorf("points must be at least 2, got %d", points)
	}

	bind := make(map[string]float64, len(bindings)+1)
	for k, v := range bindings {
		bind[k] = v
	}

	values := make([]float64, points)
	step := (to - from) / float64(points-1)
	for i := 0; i < points; i++ {
		bind[param] = from + float64(i)*step
		v, err := coeff.Eval(bind)
		if err != nil {
			return nil, fmt.Errorf("evaluating coefficient at %s=%.4f: %w", param, bind[param], err)
		}
		values[i] = v
	}
	return values, nil
}

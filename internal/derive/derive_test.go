package derive_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/isuruf/jumplab/internal/derive"
	"github.com/isuruf/jumplab/internal/expr"
	"github.com/isuruf/jumplab/internal/potential"
)

var _ = Describe("Run", func() {
	var registry *derive.Registry

	BeforeEach(func() {
		registry = derive.NewRegistry()
	})

	Describe("the transmission problem", func() {
		var result *derive.Result

		BeforeEach(func() {
			problem, err := registry.Get("transmission")
			Expect(err).NotTo(HaveOccurred())

			result, err = derive.Run(context.Background(), problem)
			Expect(err).NotTo(HaveOccurred())
		})

		It("leaves no layer operators in the value condition", func() {
			Expect(potential.ContainsTag(result.ValueCondition.LHS,
				potential.TagSingle, potential.TagDouble)).To(BeFalse())
		})

		It("expands the value condition into principal values and jump terms", func() {
			Expect(result.ValueCondition.String()).To(Equal(
				"-1/2*xi + Sp_pv(xi) + 1/2*k*t + k*Dp_pv(t) + k*Dp(t) - 2*k*Sp_pv(Dp(t)) - 1/2*c*xi - c*Sp_pv(xi) = a"))
		})

		It("expands the derivative condition", func() {
			Expect(result.DerivCondition.String()).To(Equal(
				"Sp(xi) + k*Dp(t) - 2*k*Sp(Dp(t)) - k*Sp(xi) = b"))
		})

		It("extracts a Dp(t) coefficient that is closed-form in k", func() {
			Expect(result.Coefficient.Equal(expr.V("k"))).To(BeTrue())
			Expect(potential.ContainsTag(result.Coefficient,
				potential.TagSinglePV, potential.TagDoublePV)).To(BeFalse())
		})

		It("records the full step trace", func() {
			names := make([]string, len(result.Steps))
			for i, s := range result.Steps {
				names[i] = s.Name
			}
			Expect(names).To(Equal([]string{
				"interior representation",
				"exterior representation",
				"interior trace",
				"exterior trace",
				"value condition",
				"interior derivative",
				"exterior derivative",
				"derivative condition",
				"coefficient of Dp(t)",
			}))
		})
	})

	Describe("the dirichlet problem", func() {
		It("reports -eta as the Sp(mu) coefficient", func() {
			problem, err := registry.Get("dirichlet")
			Expect(err).NotTo(HaveOccurred())

			result, err := derive.Run(context.Background(), problem)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Coefficient.Equal(expr.Prod(expr.N(-1), expr.V("eta")))).To(BeTrue())
		})
	})

	Describe("the neumann problem", func() {
		It("reports -1 as the Dp(g) coefficient", func() {
			problem, err := registry.Get("neumann")
			Expect(err).NotTo(HaveOccurred())

			result, err := derive.Run(context.Background(), problem)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Coefficient.Equal(expr.N(-1))).To(BeTrue())
		})
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		problem, err := registry.Get("transmission")
		Expect(err).NotTo(HaveOccurred())

		_, err = derive.Run(ctx, problem)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("SweepCoefficient", func() {
	It("samples the coefficient over the parameter range", func() {
		values, err := derive.SweepCoefficient(expr.V("k"), "k", nil, 0, 2, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(values).To(Equal([]float64{0, 0.5, 1, 1.5, 2}))
	})

	It("uses bindings for remaining free symbols", func() {
		coeff := expr.Prod(expr.V("c"), expr.V("k"))
		values, err := derive.SweepCoefficient(coeff, "k", map[string]float64{"c": 2}, 0, 1, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(values).To(Equal([]float64{0, 1, 2}))
	})

	It("fails without a sweep parameter", func() {
		_, err := derive.SweepCoefficient(expr.V("k"), "", nil, 0, 1, 3)
		Expect(err).To(HaveOccurred())
	})

	It("fails on unbound symbols", func() {
		_, err := derive.SweepCoefficient(expr.V("eta"), "k", nil, 0, 1, 3)
		Expect(err).To(HaveOccurred())
	})
})

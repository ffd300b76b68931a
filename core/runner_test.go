package core_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/slang/core"
)

var _ = Describe("Runner", func() {
	var runner core.Runner

	BeforeEach(func() {
		runner = core.NewRunner(arithmeticRegistry())
	})

	It("should count down and charge declared cycles", func() {
		res, err := runner.Run(countdown(), []uint64{4})
		Expect(err).ToNot(HaveOccurred())

		Expect(res.Program).To(Equal("countdown"))
		Expect(res.Value).To(Equal(uint64(4)))
		Expect(res.Cycles).To(Equal(uint64(16)))
		Expect(res.Steps).To(Equal(uint64(12)))
		Expect(res.Variables).To(Equal(map[core.Variable]uint64{y: 4, x1: 0}))
		Expect(res.SortedVariables()).To(Equal([]core.Variable{y, x1}))
	})

	It("should never decrement below zero", func() {
		p := single(
			core.NewDecrease(x1),
			core.NewDecrease(x1),
			core.NewDecrease(y),
		)

		res, err := runner.Run(p, []uint64{1})
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Variables[x1]).To(Equal(uint64(0)))
		Expect(res.Value).To(Equal(uint64(0)))
	})

	It("should require an input for every referenced input variable", func() {
		p := single(core.NewAssignment(y, x2))

		_, err := runner.Run(p, []uint64{1})

		var inputErr *core.InputCountError
		Expect(errors.As(err, &inputErr)).To(BeTrue())
		Expect(inputErr.Required).To(Equal(2))
		Expect(inputErr.Supplied).To(Equal(1))
	})

	It("should ignore surplus inputs", func() {
		res, err := runner.Run(countdown(), []uint64{2, 9, 9})
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Value).To(Equal(uint64(2)))
	})

	It("should halt on EXIT", func() {
		p := single(
			core.NewIncrease(y),
			core.NewGotoLabel(core.ExitLabel),
			core.NewIncrease(y),
		)

		res, err := runner.Run(p, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Value).To(Equal(uint64(1)))
		Expect(res.Steps).To(Equal(uint64(2)))
	})

	It("should halt immediately on an empty program", func() {
		res, err := runner.Run(single(), nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Value).To(Equal(uint64(0)))
		Expect(res.Steps).To(Equal(uint64(0)))
	})

	It("should run every synthetic instruction directly", func() {
		for _, inputs := range [][]uint64{{2, 2}, {3, 1}, {5, 2}, {1, 4}, {0, 0}} {
			res, err := runner.Run(mixed(), inputs)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Value).To(Equal(mixedReference(inputs[0], inputs[1])), "inputs %v", inputs)
		}
	})

	It("should stop runaway programs at the step limit", func() {
		p := single(
			core.NewIncrease(y).WithLabel(l1),
			core.NewGotoLabel(l1),
		)

		_, err := runner.WithMaxSteps(10).Run(p, nil)

		var limitErr *core.StepLimitError
		Expect(errors.As(err, &limitErr)).To(BeTrue())
		Expect(limitErr.Limit).To(Equal(uint64(10)))
	})

	It("should stop runaway functions at the step limit", func() {
		spin := core.NewProgramBuilder("SPIN").Append(
			core.NewIncrease(y).WithLabel(l1),
			core.NewGotoLabel(l1),
		).MustBuild()
		reg, err := core.NewRegistry(spin)
		Expect(err).ToNot(HaveOccurred())

		p := single(core.NewQuotation(y, "SPIN", ""))
		_, err = core.NewRunner(reg).WithMaxSteps(10).Run(p, nil)

		var limitErr *core.StepLimitError
		Expect(errors.As(err, &limitErr)).To(BeTrue())
		Expect(limitErr.Program).To(Equal("SPIN"))
	})
})

var _ = Describe("Machine", func() {
	It("should expose the state between steps", func() {
		m, err := core.NewMachine(countdown(), arithmeticRegistry(), []uint64{2})
		Expect(err).ToNot(HaveOccurred())

		Expect(m.PC()).To(Equal(0))
		Expect(m.Value(x1)).To(Equal(uint64(2)))

		Expect(m.Step()).To(Succeed())
		Expect(m.PC()).To(Equal(1))
		Expect(m.Value(x1)).To(Equal(uint64(1)))
		Expect(m.Cycles()).To(Equal(uint64(1)))

		Expect(m.Step()).To(Succeed())
		Expect(m.Step()).To(Succeed())
		Expect(m.PC()).To(Equal(0))
		Expect(m.Steps()).To(Equal(uint64(3)))

		for !m.Halted() {
			Expect(m.Step()).To(Succeed())
		}
		Expect(m.Result().Value).To(Equal(uint64(2)))
		Expect(m.Result().Cycles).To(Equal(uint64(8)))

		Expect(m.Step()).To(Succeed())
		Expect(m.Steps()).To(Equal(uint64(6)))
	})

	It("should hand out independent snapshots", func() {
		m, err := core.NewMachine(countdown(), arithmeticRegistry(), []uint64{1})
		Expect(err).ToNot(HaveOccurred())

		snap := m.Snapshot()
		Expect(m.Step()).To(Succeed())
		Expect(snap[x1]).To(Equal(uint64(1)))
		Expect(m.Value(x1)).To(Equal(uint64(0)))
	})
})

var _ = Describe("Rendering", func() {
	It("should print programs as tables", func() {
		out := core.RenderProgram(countdown())
		Expect(out).To(ContainSubstring("IF x1 != 0 GOTO L1"))
		Expect(out).To(ContainSubstring("countdown"))
	})

	It("should show where expanded instructions came from", func() {
		expanded, err := core.NewExpander(arithmeticRegistry()).
			ExpandOnce(single(core.NewConstantAssignment(y, 1)))
		Expect(err).ToNot(HaveOccurred())

		Expect(core.RenderProgram(expanded)).To(ContainSubstring("#1 y <- 1"))
	})

	It("should print variables in display order", func() {
		res, err := core.NewRunner(arithmeticRegistry()).Run(countdown(), []uint64{1})
		Expect(err).ToNot(HaveOccurred())

		out := core.RenderVariables(res)
		Expect(out).To(ContainSubstring("4 cycles"))
		Expect(out).To(MatchRegexp(`(?s)\| y +\|.*\| x1 +\|`))
	})
})

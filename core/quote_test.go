package core_test

import (
	"errors"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/slang/core"
	"github.com/sarchlab/slang/util/valgen"
)

var _ = Describe("Quotation", func() {
	var reg *core.MapRegistry

	BeforeEach(func() {
		reg = arithmeticRegistry()
	})

	Context("direct evaluation", func() {
		It("should add constants and charge the callee's cycles", func() {
			p := single(core.NewQuotation(y, "ADD", "3,4"))

			res, err := core.NewRunner(reg).Run(p, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Value).To(Equal(uint64(7)))

			callee, err := core.NewRunner(reg).Run(addFunction(), []uint64{3, 4})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Cycles).To(Equal(5 + callee.Cycles))
			Expect(res.Cycles).To(Equal(uint64(35)))
			Expect(res.Steps).To(Equal(uint64(1)))
		})

		It("should default missing trailing arguments to zero", func() {
			res, err := core.NewRunner(reg).Run(single(core.NewQuotation(y, "ADD", "5")), nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Value).To(Equal(uint64(5)))
		})

		It("should evaluate nested calls in the caller's variables", func() {
			p := single(
				core.NewConstantAssignment(z1, 2),
				core.NewQuotation(y, "SUB", "ADD(x1,z1),x2"),
			)

			res, err := core.NewRunner(reg).Run(p, []uint64{6, 3})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Value).To(Equal(uint64(5)))
		})

		It("should add nested call cycles to the instruction", func() {
			inner, err := core.NewRunner(reg).Run(addFunction(), []uint64{1, 1})
			Expect(err).ToNot(HaveOccurred())
			outer, err := core.NewRunner(reg).Run(doubleFunction(), []uint64{2})
			Expect(err).ToNot(HaveOccurred())

			res, err := core.NewRunner(reg).Run(
				single(core.NewQuotation(y, "DOUBLE", "ADD(1,1)")), nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Value).To(Equal(uint64(4)))
			Expect(res.Cycles).To(Equal(5 + inner.Cycles + outer.Cycles))
		})

		It("should jump when the variable equals the function value", func() {
			p := single(
				core.NewJumpEqualFunction(x1, "ADD", "x2,1", l1),
				core.NewGotoLabel(core.ExitLabel),
				core.NewIncrease(y).WithLabel(l1),
			)

			res, err := core.NewRunner(reg).Run(p, []uint64{4, 3})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Value).To(Equal(uint64(1)))

			res, err = core.NewRunner(reg).Run(p, []uint64{4, 4})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Value).To(Equal(uint64(0)))
		})

		It("should fail on unknown functions before running", func() {
			_, err := core.NewRunner(reg).Run(single(
				core.NewIncrease(y),
				core.NewQuotation(y, "MUL", "x1,x1"),
			), []uint64{2})

			var fnErr *core.UnknownFunctionError
			Expect(errors.As(err, &fnErr)).To(BeTrue())
			Expect(fnErr.Name).To(Equal("MUL"))
		})
	})

	Context("inlining", func() {
		It("should rename every callee variable and copy the result out", func() {
			p := single(core.NewQuotation(y, "ADD", "x1,3"))
			expanded, err := core.NewExpander(reg).ExpandOnce(p)
			Expect(err).ToNot(HaveOccurred())

			for _, v := range expanded.Variables() {
				Expect(v).ToNot(Equal(x2))
			}

			last := expanded.Instructions[expanded.Len()-1]
			Expect(last.Opcode).To(Equal(core.Assignment))
			Expect(last.Var).To(Equal(y))
			Expect(last.Label.IsEmpty()).To(BeFalse())

			for _, inst := range expanded.Instructions {
				Expect(inst.Target.IsExit()).To(BeFalse())
			}
		})

		It("should compare against the inlined result", func() {
			p := single(core.NewJumpEqualFunction(x1, "ADD", "x2,1", core.ExitLabel))
			expanded, err := core.NewExpander(reg).ExpandOnce(p)
			Expect(err).ToNot(HaveOccurred())

			last := expanded.Instructions[expanded.Len()-1]
			Expect(last.Opcode).To(Equal(core.JumpEqualVariable))
			Expect(last.Var).To(Equal(x1))
			Expect(last.Target).To(Equal(core.ExitLabel))
		})

		It("should give the same values as direct evaluation", func() {
			p := single(
				core.NewQuotation(z1, "DOUBLE", "x2"),
				core.NewQuotation(y, "SUB", "ADD(DOUBLE(x1),z1),ADD(x2,1)"),
				core.NewJumpEqualFunction(y, "SUB", "x1,0", l1),
				core.NewIncrease(y),
				core.NewNeutral(y).WithLabel(l1),
			)
			expander := core.NewExpander(reg)
			full, _, err := expander.ExpandFully(p)
			Expect(err).ToNot(HaveOccurred())

			gen := valgen.MakeRandomGen(3, 8)
			for i := 0; i < 8; i++ {
				inputs := valgen.Take(gen, 2)

				direct, err := core.NewRunner(reg).Run(p, inputs)
				Expect(err).ToNot(HaveOccurred())
				inlined, err := core.NewRunner(reg).Run(full, inputs)
				Expect(err).ToNot(HaveOccurred())

				Expect(inlined.Value).To(Equal(direct.Value), "inputs %v", inputs)
			}
		})

		It("should start repeated inlined calls from a clean state", func() {
			p := single(
				core.NewQuotation(z2, "ADD", "z2,1").WithLabel(l1),
				core.NewDecrease(x1),
				core.NewJumpNotZero(x1, l1),
				core.NewAssignment(y, z2),
			)
			full, _, err := core.NewExpander(reg).ExpandFully(p)
			Expect(err).ToNot(HaveOccurred())

			res, err := core.NewRunner(reg).Run(full, []uint64{4})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Value).To(Equal(uint64(4)))
		})

		It("should keep variables named only by surplus arguments", func() {
			p := single(core.NewQuotation(y, "DOUBLE", "ADD(z2,2),x2"))
			Expect(p.InputCount()).To(Equal(2))

			expander := core.NewExpander(reg)
			maxDegree, err := expander.MaxDegree(p)
			Expect(err).ToNot(HaveOccurred())

			for d := 0; d <= maxDegree; d++ {
				expanded, err := expander.ExpandToDegree(p, d)
				Expect(err).ToNot(HaveOccurred())
				Expect(expanded.InputCount()).To(Equal(2), "degree %d", d)

				res, err := core.NewRunner(reg).Run(expanded, []uint64{0, 9})
				Expect(err).ToNot(HaveOccurred())
				Expect(res.Value).To(Equal(uint64(4)), "degree %d", d)
				Expect(res.Variables).To(HaveKeyWithValue(x2, uint64(9)), "degree %d", d)
			}
		})
	})

	Context("call graphs", func() {
		It("should reject cyclic calls", func() {
			f := core.NewProgramBuilder("F").Append(core.NewQuotation(y, "G", "x1")).MustBuild()
			g := core.NewProgramBuilder("G").Append(core.NewQuotation(y, "F", "x1")).MustBuild()
			cyclic, err := core.NewRegistry(f, g)
			Expect(err).ToNot(HaveOccurred())

			caller := single(core.NewQuotation(y, "F", "1"))

			_, err = core.NewRunner(cyclic).Run(caller, nil)
			var cycleErr *core.CyclicCallError
			Expect(errors.As(err, &cycleErr)).To(BeTrue())
			Expect(cycleErr.Path).To(Equal([]string{"F", "G", "F"}))

			_, err = core.NewExpander(cyclic).MaxDegree(caller)
			Expect(errors.As(err, &cycleErr)).To(BeTrue())
		})

		It("should allow a caller named like its callee", func() {
			caller := core.NewProgramBuilder("ADD").
				Append(core.NewQuotation(y, "ADD", "1,2")).
				MustBuild()

			res, err := core.NewRunner(reg).Run(caller, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Value).To(Equal(uint64(3)))

			Expect(core.NewExpander(reg).MaxDegree(caller)).To(Equal(3))
		})
	})

	Context("with a mocked registry", func() {
		var (
			mockCtrl *gomock.Controller
			mockReg  *MockRegistry
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			mockReg = NewMockRegistry(mockCtrl)
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should look the callee up for checking and for running", func() {
			mockReg.EXPECT().ProgramByName("ADD").Return(addFunction(), nil).Times(2)

			res, err := core.NewRunner(mockReg).Run(single(core.NewQuotation(y, "ADD", "3,4")), nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Value).To(Equal(uint64(7)))
		})

		It("should pass lookup failures through", func() {
			lookupErr := errors.New("registry offline")
			mockReg.EXPECT().ProgramByName("ADD").Return(nil, lookupErr)

			_, err := core.NewRunner(mockReg).Run(single(core.NewQuotation(y, "ADD", "3,4")), nil)
			Expect(errors.Is(err, lookupErr)).To(BeTrue())
		})
	})
})

package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/slang/core"
)

var _ = Describe("Variable", func() {
	DescribeTable("parsing",
		func(text string, want core.Variable) {
			v, err := core.ParseVariable(text)
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(want))
		},
		Entry("input", "x1", core.Input(1)),
		Entry("upper case input", "X12", core.Input(12)),
		Entry("work", "z3", core.Work(3)),
		Entry("result", "Y", core.Result),
	)

	DescribeTable("rejecting",
		func(text string) {
			_, err := core.ParseVariable(text)
			Expect(err).To(HaveOccurred())
		},
		Entry("empty", ""),
		Entry("zero index", "x0"),
		Entry("unknown kind", "w1"),
		Entry("signed index", "z+1"),
		Entry("trailing text", "x1a"),
	)

	It("should print in S-language syntax", func() {
		Expect(core.Input(2).String()).To(Equal("x2"))
		Expect(core.Work(7).String()).To(Equal("z7"))
		Expect(core.Result.String()).To(Equal("y"))
	})

	It("should panic on non-positive indices", func() {
		Expect(func() { core.Input(0) }).To(Panic())
		Expect(func() { core.Work(-1) }).To(Panic())
	})
})

var _ = Describe("Label", func() {
	It("should parse numbered labels ignoring case", func() {
		Expect(core.ParseLabel("l4")).To(Equal(core.NumberedLabel(4)))
		Expect(core.ParseLabel("L4")).To(Equal(core.NumberedLabel(4)))
	})

	It("should parse the sentinels", func() {
		Expect(core.ParseLabel("exit")).To(Equal(core.ExitLabel))
		Expect(core.ParseLabel("")).To(Equal(core.EmptyLabel))
	})

	It("should reject malformed labels", func() {
		for _, text := range []string{"L", "L0", "M1", "L-2"} {
			_, err := core.ParseLabel(text)
			Expect(err).To(HaveOccurred(), text)
		}
	})

	It("should tell sentinels apart", func() {
		Expect(core.EmptyLabel.IsEmpty()).To(BeTrue())
		Expect(core.ExitLabel.IsEmpty()).To(BeFalse())
		Expect(core.ExitLabel.IsExit()).To(BeTrue())
		Expect(core.NumberedLabel(1).IsExit()).To(BeFalse())
		Expect(core.ExitLabel.String()).To(Equal("EXIT"))
	})
})

package core_test

import (
	"github.com/sarchlab/slang/core"
)

var (
	x1 = core.Input(1)
	x2 = core.Input(2)
	z1 = core.Work(1)
	z2 = core.Work(2)
	y  = core.Result
	l1 = core.NumberedLabel(1)
	l2 = core.NumberedLabel(2)
	l3 = core.NumberedLabel(3)
)

// countdown is [L1] x1 <- x1 - 1; y <- y + 1; IF x1 != 0 GOTO L1.
func countdown() *core.Program {
	return core.NewProgramBuilder("countdown").Append(
		core.NewDecrease(x1).WithLabel(l1),
		core.NewIncrease(y),
		core.NewJumpNotZero(x1, l1),
	).MustBuild()
}

// addFunction computes y = x1 + x2 with synthetic instructions.
func addFunction() *core.Program {
	return core.NewProgramBuilder("ADD").Append(
		core.NewAssignment(y, x1),
		core.NewAssignment(z1, x2),
		core.NewJumpZero(z1, core.ExitLabel).WithLabel(l1),
		core.NewDecrease(z1),
		core.NewIncrease(y),
		core.NewGotoLabel(l1),
	).MustBuild()
}

// subFunction computes y = max(x1 - x2, 0).
func subFunction() *core.Program {
	return core.NewProgramBuilder("SUB").Append(
		core.NewAssignment(y, x1),
		core.NewAssignment(z1, x2),
		core.NewJumpZero(z1, core.ExitLabel).WithLabel(l1),
		core.NewDecrease(z1),
		core.NewDecrease(y),
		core.NewGotoLabel(l1),
	).MustBuild()
}

// doubleFunction computes y = ADD(x1,x1) through a quotation.
func doubleFunction() *core.Program {
	return core.NewProgramBuilder("DOUBLE").Append(
		core.NewQuotation(y, "ADD", "x1,x1"),
	).MustBuild()
}

func arithmeticRegistry() *core.MapRegistry {
	reg, err := core.NewRegistry(addFunction(), subFunction(), doubleFunction())
	if err != nil {
		panic(err)
	}
	return reg
}

// mixed exercises every synthetic opcode: it computes
// y = DOUBLE(x1) + 1 if x1 = x2, y = 7 if x1 = 3, else y = SUB(ADD(x1, 2), x2)
// and finally adds 1 when y equals ADD(x2, 0).
func mixed() *core.Program {
	return core.NewProgramBuilder("mixed").Append(
		core.NewJumpEqualVariable(x1, x2, l1),
		core.NewJumpEqualConstant(x1, 3, l2),
		core.NewQuotation(y, "SUB", "ADD(x1,2),x2"),
		core.NewGotoLabel(l3),
		core.NewQuotation(y, "DOUBLE", "x1").WithLabel(l1),
		core.NewIncrease(y),
		core.NewGotoLabel(l3),
		core.NewConstantAssignment(y, 7).WithLabel(l2),
		core.NewJumpEqualFunction(y, "ADD", "x2,0", core.ExitLabel).WithLabel(l3),
		core.NewJumpZero(y, core.ExitLabel),
		core.NewZeroVariable(z2),
		core.NewAssignment(z2, y),
		core.NewIncrease(z2),
		core.NewAssignment(y, z2),
	).MustBuild()
}

// mixedReference is what mixed computes, written in Go.
func mixedReference(a, b uint64) uint64 {
	sub := func(p, q uint64) uint64 {
		if q > p {
			return 0
		}
		return p - q
	}

	var r uint64
	switch {
	case a == b:
		r = 2*a + 1
	case a == 3:
		r = 7
	default:
		r = sub(a+2, b)
	}

	if r == b || r == 0 {
		return r
	}
	return r + 1
}

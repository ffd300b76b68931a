package core

import (
	"fmt"
	"strconv"
)

// Opcode represents the operation code for an instruction
type Opcode string

const (
	Neutral            Opcode = "NEUTRAL"
	Increase           Opcode = "INCREASE"
	Decrease           Opcode = "DECREASE"
	JumpNotZero        Opcode = "JUMP_NOT_ZERO"
	ZeroVariable       Opcode = "ZERO_VARIABLE"
	GotoLabel          Opcode = "GOTO_LABEL"
	ConstantAssignment Opcode = "CONSTANT_ASSIGNMENT"
	JumpZero           Opcode = "JUMP_ZERO"
	Assignment         Opcode = "ASSIGNMENT"
	JumpEqualConstant  Opcode = "JUMP_EQUAL_CONSTANT"
	JumpEqualVariable  Opcode = "JUMP_EQUAL_VARIABLE"
	Quotation          Opcode = "QUOTATION"
	JumpEqualFunction  Opcode = "JUMP_EQUAL_FUNCTION"
)

// Operands an opcode needs besides its label.
const (
	needVar = 1 << iota
	needTarget
	needConst
	needOther
	needFunction
)

type opcodeInfo struct {
	basic    bool
	cycles   uint64
	degree   int
	operands int
}

var opcodeTable = map[Opcode]opcodeInfo{
	Neutral:            {true, 0, 0, needVar},
	Increase:           {true, 1, 0, needVar},
	Decrease:           {true, 1, 0, needVar},
	JumpNotZero:        {true, 2, 0, needVar | needTarget},
	ZeroVariable:       {false, 1, 1, needVar},
	GotoLabel:          {false, 1, 1, needTarget},
	ConstantAssignment: {false, 2, 2, needVar | needConst},
	JumpZero:           {false, 2, 2, needVar | needTarget},
	Assignment:         {false, 4, 2, needVar | needOther},
	JumpEqualConstant:  {false, 2, 3, needVar | needTarget | needConst},
	JumpEqualVariable:  {false, 2, 3, needVar | needTarget | needOther},
	Quotation:          {false, 5, -1, needVar | needFunction},
	JumpEqualFunction:  {false, 6, -1, needVar | needTarget | needFunction},
}

// Opcodes lists every opcode, basic ones first.
var Opcodes = []Opcode{
	Neutral, Increase, Decrease, JumpNotZero,
	ZeroVariable, GotoLabel, ConstantAssignment, JumpZero, Assignment,
	JumpEqualConstant, JumpEqualVariable, Quotation, JumpEqualFunction,
}

// ParseOpcode accepts the upper-case opcode names.
func ParseOpcode(s string) (Opcode, error) {
	op := Opcode(s)
	if _, ok := opcodeTable[op]; !ok {
		return "", fmt.Errorf("unknown opcode %q", s)
	}
	return op, nil
}

func (op Opcode) info() opcodeInfo {
	info, ok := opcodeTable[op]
	if !ok {
		panic(fmt.Sprintf("unknown opcode %q", string(op)))
	}
	return info
}

// IsBasic reports whether op belongs to the Turing-complete core set.
func (op Opcode) IsBasic() bool {
	return op.info().basic
}

// IsQuotation reports whether op invokes a function.
func (op Opcode) IsQuotation() bool {
	return op == Quotation || op == JumpEqualFunction
}

// Cycles is the declared cycle cost. For the quotation opcodes it is only
// the base cost.
func (op Opcode) Cycles() uint64 {
	return op.info().cycles
}

// Degree is the declared degree, or -1 for the quotation opcodes whose
// degree depends on the callee.
func (op Opcode) Degree() int {
	return op.info().degree
}

// Instruction is one S-language instruction. Which operand fields are
// meaningful depends on Opcode.
type Instruction struct {
	Opcode Opcode
	// Label is the label this instruction declares.
	Label Label
	// Var is the main variable.
	Var Variable
	// Target is the jump destination.
	Target Label
	// Const is the constant of CONSTANT_ASSIGNMENT and JUMP_EQUAL_CONSTANT.
	Const uint64
	// Other is the assigned or compared variable.
	Other    Variable
	Function string
	Args     string
	// Origin is the index, in the previous expansion round, of the
	// instruction this one was expanded from. -1 for source instructions.
	Origin int
}

func newInst(op Opcode, v Variable) Instruction {
	return Instruction{Opcode: op, Var: v, Origin: -1}
}

// NewNeutral creates v <- v.
func NewNeutral(v Variable) Instruction { return newInst(Neutral, v) }

// NewIncrease creates v <- v + 1.
func NewIncrease(v Variable) Instruction { return newInst(Increase, v) }

// NewDecrease creates v <- v - 1.
func NewDecrease(v Variable) Instruction { return newInst(Decrease, v) }

// NewJumpNotZero creates IF v != 0 GOTO target.
func NewJumpNotZero(v Variable, target Label) Instruction {
	inst := newInst(JumpNotZero, v)
	inst.Target = target
	return inst
}

// NewZeroVariable creates v <- 0.
func NewZeroVariable(v Variable) Instruction { return newInst(ZeroVariable, v) }

// NewGotoLabel creates GOTO target.
func NewGotoLabel(target Label) Instruction {
	inst := newInst(GotoLabel, Variable{})
	inst.Target = target
	return inst
}

// NewConstantAssignment creates v <- k.
func NewConstantAssignment(v Variable, k uint64) Instruction {
	inst := newInst(ConstantAssignment, v)
	inst.Const = k
	return inst
}

// NewJumpZero creates IF v = 0 GOTO target.
func NewJumpZero(v Variable, target Label) Instruction {
	inst := newInst(JumpZero, v)
	inst.Target = target
	return inst
}

// NewAssignment creates dst <- src.
func NewAssignment(dst, src Variable) Instruction {
	inst := newInst(Assignment, dst)
	inst.Other = src
	return inst
}

// NewJumpEqualConstant creates IF v = k GOTO target.
func NewJumpEqualConstant(v Variable, k uint64, target Label) Instruction {
	inst := newInst(JumpEqualConstant, v)
	inst.Const = k
	inst.Target = target
	return inst
}

// NewJumpEqualVariable creates IF v = other GOTO target.
func NewJumpEqualVariable(v, other Variable, target Label) Instruction {
	inst := newInst(JumpEqualVariable, v)
	inst.Other = other
	inst.Target = target
	return inst
}

// NewQuotation creates v <- fn(args).
func NewQuotation(v Variable, fn, args string) Instruction {
	inst := newInst(Quotation, v)
	inst.Function = fn
	inst.Args = args
	return inst
}

// NewJumpEqualFunction creates IF v = fn(args) GOTO target.
func NewJumpEqualFunction(v Variable, fn, args string, target Label) Instruction {
	inst := newInst(JumpEqualFunction, v)
	inst.Function = fn
	inst.Args = args
	inst.Target = target
	return inst
}

// WithLabel returns a copy of the instruction declaring l.
func (i Instruction) WithLabel(l Label) Instruction {
	i.Label = l
	return i
}

// WithOrigin returns a copy of the instruction pointing at origin.
func (i Instruction) WithOrigin(origin int) Instruction {
	i.Origin = origin
	return i
}

// IsBasic reports whether the instruction needs no expansion.
func (i Instruction) IsBasic() bool {
	return i.Opcode.IsBasic()
}

// Cycles is the declared cycle cost.
func (i Instruction) Cycles() uint64 {
	return i.Opcode.Cycles()
}

// HasTarget reports whether the instruction jumps.
func (i Instruction) HasTarget() bool {
	return i.Opcode.info().operands&needTarget != 0
}

// checkOperands returns the name of the first operand the opcode needs
// but the instruction lacks.
func (i Instruction) checkOperands() string {
	need := i.Opcode.info().operands
	switch {
	case need&needVar != 0 && i.Var.IsZero():
		return "variable"
	case need&needTarget != 0 && i.Target.IsEmpty():
		return "target label"
	case need&needOther != 0 && i.Other.IsZero():
		return "source variable"
	case need&needFunction != 0 && i.Function == "":
		return "function name"
	}
	return ""
}

// Variables returns the variables named by the operands, not counting
// identifiers inside the argument string.
func (i Instruction) Variables() []Variable {
	var vars []Variable
	if !i.Var.IsZero() {
		vars = append(vars, i.Var)
	}
	if !i.Other.IsZero() {
		vars = append(vars, i.Other)
	}
	return vars
}

// Operands renders everything but the label and opcode, for tabular views.
func (i Instruction) Operands() string {
	switch i.Opcode {
	case Neutral, Increase, Decrease, ZeroVariable:
		return i.Var.String()
	case JumpNotZero, JumpZero:
		return i.Var.String() + ", " + i.Target.String()
	case GotoLabel:
		return i.Target.String()
	case ConstantAssignment:
		return i.Var.String() + ", " + strconv.FormatUint(i.Const, 10)
	case Assignment:
		return i.Var.String() + ", " + i.Other.String()
	case JumpEqualConstant:
		return fmt.Sprintf("%s, %d, %s", i.Var, i.Const, i.Target)
	case JumpEqualVariable:
		return fmt.Sprintf("%s, %s, %s", i.Var, i.Other, i.Target)
	case Quotation:
		return fmt.Sprintf("%s, %s(%s)", i.Var, i.Function, i.Args)
	case JumpEqualFunction:
		return fmt.Sprintf("%s, %s(%s), %s", i.Var, i.Function, i.Args, i.Target)
	default:
		panic(fmt.Sprintf("unknown opcode %q", string(i.Opcode)))
	}
}

// Command renders the instruction body in S-language syntax.
func (i Instruction) Command() string {
	v := i.Var.String()
	switch i.Opcode {
	case Neutral:
		return v + " <- " + v
	case Increase:
		return v + " <- " + v + " + 1"
	case Decrease:
		return v + " <- " + v + " - 1"
	case JumpNotZero:
		return "IF " + v + " != 0 GOTO " + i.Target.String()
	case ZeroVariable:
		return v + " <- 0"
	case GotoLabel:
		return "GOTO " + i.Target.String()
	case ConstantAssignment:
		return v + " <- " + strconv.FormatUint(i.Const, 10)
	case JumpZero:
		return "IF " + v + " = 0 GOTO " + i.Target.String()
	case Assignment:
		return v + " <- " + i.Other.String()
	case JumpEqualConstant:
		return fmt.Sprintf("IF %s = %d GOTO %s", v, i.Const, i.Target)
	case JumpEqualVariable:
		return fmt.Sprintf("IF %s = %s GOTO %s", v, i.Other, i.Target)
	case Quotation:
		return fmt.Sprintf("%s <- %s(%s)", v, i.Function, i.Args)
	case JumpEqualFunction:
		return fmt.Sprintf("IF %s = %s(%s) GOTO %s", v, i.Function, i.Args, i.Target)
	default:
		panic(fmt.Sprintf("unknown opcode %q", string(i.Opcode)))
	}
}

func (i Instruction) String() string {
	if i.Label.IsEmpty() {
		return i.Command()
	}
	return "[" + i.Label.String() + "] " + i.Command()
}

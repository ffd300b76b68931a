package core

import (
	"fmt"
	"log/slog"
)

// Expander rewrites synthetic instructions into lower-degree ones. It holds
// no state besides the registry and may be shared between goroutines.
type Expander struct {
	registry Registry
}

// NewExpander creates an expander that resolves functions through reg.
func NewExpander(reg Registry) *Expander {
	return &Expander{registry: reg}
}

// ExpandOnce performs one expansion round. Basic instructions pass through;
// every synthetic instruction is replaced by its canonical expansion.
func (e *Expander) ExpandOnce(p *Program) (*Program, error) {
	alloc := newNameAllocator(p)
	b := NewProgramBuilder(p.Name).WithPrevious(p)

	for idx, inst := range p.Instructions {
		if inst.IsBasic() {
			b.Append(inst.WithOrigin(idx))
			continue
		}

		seq, err := e.expandInstruction(p, idx, alloc)
		if err != nil {
			return nil, fmt.Errorf("program %s: expanding instruction %d: %w",
				p.Name, idx+1, err)
		}

		for _, s := range seq {
			b.Append(s.WithOrigin(idx))
		}
	}

	return b.Build()
}

// ExpandToDegree applies at most degree rounds, stopping early once the
// program is fully basic. Degree 0 returns p itself.
func (e *Expander) ExpandToDegree(p *Program, degree int) (*Program, error) {
	if degree < 0 {
		return nil, fmt.Errorf("degree must not be negative, got %d", degree)
	}

	for round := 0; round < degree && !p.IsBasic(); round++ {
		next, err := e.ExpandOnce(p)
		if err != nil {
			return nil, err
		}

		slog.Debug("ExpandRound",
			"Program", p.Name,
			"Round", round+1,
			"Before", p.Len(),
			"After", next.Len(),
		)
		p = next
	}

	return p, nil
}

// MaxDegree counts the rounds needed to reach a fully basic program. It is
// the smallest degree at which ExpandToDegree stops changing the program.
func (e *Expander) MaxDegree(p *Program) (int, error) {
	_, rounds, err := e.ExpandFully(p)
	return rounds, err
}

// ExpandFully expands until only basic instructions remain and returns the
// result together with the number of rounds taken.
func (e *Expander) ExpandFully(p *Program) (*Program, int, error) {
	static, err := e.Degree(p)
	if err != nil {
		return nil, 0, err
	}

	rounds := 0
	for !p.IsBasic() {
		p, err = e.ExpandOnce(p)
		if err != nil {
			return nil, 0, err
		}
		rounds++
	}

	if rounds != static {
		Trace("DegreeMismatch", "Program", p.Name, "Static", static, "Rounds", rounds)
	}

	return p, rounds, nil
}

// Degree computes the program's degree statically, without expanding. It
// fails for unknown functions and cyclic call graphs.
func (e *Expander) Degree(p *Program) (int, error) {
	return newDegreeCalc(e.registry).program(p)
}

// InstructionDegree computes the degree of one instruction of p.
func (e *Expander) InstructionDegree(p *Program, idx int) (int, error) {
	return newDegreeCalc(e.registry).instruction(p, idx)
}

func (e *Expander) expandInstruction(
	p *Program,
	idx int,
	alloc *nameAllocator,
) ([]Instruction, error) {
	inst := p.Instructions[idx]

	var seq []Instruction
	switch inst.Opcode {
	case ZeroVariable:
		return expandZeroVariable(inst, alloc), nil
	case GotoLabel:
		seq = expandGotoLabel(inst, alloc)
	case ConstantAssignment:
		seq = expandConstantAssignment(inst)
	case Assignment:
		seq = expandAssignment(inst, alloc)
	case JumpZero:
		seq = expandJumpZero(inst, alloc)
	case JumpEqualConstant:
		seq = expandJumpEqualConstant(inst, alloc)
	case JumpEqualVariable:
		seq = expandJumpEqualVariable(inst, alloc)
	case Quotation, JumpEqualFunction:
		var err error
		seq, err = e.expandQuotation(p, idx, alloc)
		if err != nil {
			return nil, err
		}
	default:
		panic(fmt.Sprintf("opcode %s cannot be expanded", inst.Opcode))
	}

	return attachLabel(seq, inst.Label, inst.Var), nil
}

// attachLabel moves the label of an expanded instruction onto the first
// instruction of its expansion. If that instruction already declares a
// label, a NEUTRAL carrying the original label is put in front.
func attachLabel(seq []Instruction, l Label, v Variable) []Instruction {
	if l.IsEmpty() {
		return seq
	}

	if len(seq) > 0 && seq[0].Label.IsEmpty() {
		seq[0] = seq[0].WithLabel(l)
		return seq
	}

	if v.IsZero() {
		v = Result
	}
	return append([]Instruction{NewNeutral(v).WithLabel(l)}, seq...)
}

// v <- 0 becomes a decrement loop. The loop head reuses the instruction's
// own label when it has one.
func expandZeroVariable(inst Instruction, alloc *nameAllocator) []Instruction {
	loop := inst.Label
	if loop.IsEmpty() {
		loop = alloc.freshLabel()
	}

	return []Instruction{
		NewDecrease(inst.Var).WithLabel(loop),
		NewJumpNotZero(inst.Var, loop),
	}
}

func expandGotoLabel(inst Instruction, alloc *nameAllocator) []Instruction {
	z := alloc.freshWork()
	return []Instruction{
		NewIncrease(z),
		NewJumpNotZero(z, inst.Target),
	}
}

func expandConstantAssignment(inst Instruction) []Instruction {
	seq := []Instruction{NewZeroVariable(inst.Var)}
	for k := uint64(0); k < inst.Const; k++ {
		seq = append(seq, NewIncrease(inst.Var))
	}
	return seq
}

// dst <- src drains src into a temporary while counting dst up, then
// restores src from the temporary.
func expandAssignment(inst Instruction, alloc *nameAllocator) []Instruction {
	dst, src := inst.Var, inst.Other
	if dst == src {
		return []Instruction{NewNeutral(dst)}
	}

	z := alloc.freshWork()
	drain := alloc.freshLabel()
	restore := alloc.freshLabel()
	done := alloc.freshLabel()

	return []Instruction{
		NewZeroVariable(dst),
		NewJumpNotZero(src, drain),
		NewGotoLabel(done),
		NewDecrease(src).WithLabel(drain),
		NewIncrease(z),
		NewJumpNotZero(src, drain),
		NewDecrease(z).WithLabel(restore),
		NewIncrease(dst),
		NewIncrease(src),
		NewJumpNotZero(z, restore),
		NewNeutral(dst).WithLabel(done),
	}
}

func expandJumpZero(inst Instruction, alloc *nameAllocator) []Instruction {
	skip := alloc.freshLabel()
	return []Instruction{
		NewJumpNotZero(inst.Var, skip),
		NewGotoLabel(inst.Target),
		NewNeutral(inst.Var).WithLabel(skip),
	}
}

// IF v = K copies v, counts the copy down K times and jumps only when the
// copy is exactly zero afterwards.
func expandJumpEqualConstant(inst Instruction, alloc *nameAllocator) []Instruction {
	z := alloc.freshWork()
	notEqual := alloc.freshLabel()

	seq := []Instruction{NewAssignment(z, inst.Var)}
	for k := uint64(0); k < inst.Const; k++ {
		seq = append(seq,
			NewJumpZero(z, notEqual),
			NewDecrease(z),
		)
	}

	return append(seq,
		NewJumpNotZero(z, notEqual),
		NewGotoLabel(inst.Target),
		NewNeutral(inst.Var).WithLabel(notEqual),
	)
}

// IF v = w counts copies of both down together; they are equal when both
// reach zero in the same iteration.
func expandJumpEqualVariable(inst Instruction, alloc *nameAllocator) []Instruction {
	a := alloc.freshWork()
	b := alloc.freshWork()
	notEqual := alloc.freshLabel()
	loop := alloc.freshLabel()
	aDone := alloc.freshLabel()

	return []Instruction{
		NewAssignment(a, inst.Var),
		NewAssignment(b, inst.Other),
		NewJumpZero(a, aDone).WithLabel(loop),
		NewJumpZero(b, notEqual),
		NewDecrease(a),
		NewDecrease(b),
		NewGotoLabel(loop),
		NewJumpZero(b, inst.Target).WithLabel(aDone),
		NewNeutral(inst.Var).WithLabel(notEqual),
	}
}

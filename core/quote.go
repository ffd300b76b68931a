package core

import "fmt"

// inlining holds the renaming tables for one inlined call.
type inlining struct {
	alloc  *nameAllocator
	vars   map[Variable]Variable
	labels map[Label]Label
	end    Label
}

func (in *inlining) variable(v Variable) Variable {
	if v.IsZero() {
		return v
	}
	if nv, ok := in.vars[v]; ok {
		return nv
	}
	nv := in.alloc.freshWork()
	in.vars[v] = nv
	return nv
}

func (in *inlining) label(l Label) Label {
	switch {
	case l.IsEmpty():
		return l
	case l.IsExit():
		return in.end
	}
	if nl, ok := in.labels[l]; ok {
		return nl
	}
	nl := in.alloc.freshLabel()
	in.labels[l] = nl
	return nl
}

// expandQuotation inlines the callee of a QUOTATION or JUMP_EQUAL_FUNCTION
// instruction. The callee's variables and labels are all renamed to fresh
// ones; its EXIT becomes a shared end label where the result is copied out
// or compared.
func (e *Expander) expandQuotation(
	p *Program,
	idx int,
	alloc *nameAllocator,
) ([]Instruction, error) {
	inst := p.Instructions[idx]
	args := p.Arguments(idx)

	callee, err := e.registry.ProgramByName(inst.Function)
	if err != nil {
		return nil, err
	}

	in := &inlining{
		alloc:  alloc,
		vars:   make(map[Variable]Variable),
		labels: make(map[Label]Label),
		end:    alloc.freshLabel(),
	}

	result := in.variable(Result)
	for _, v := range callee.Variables() {
		in.variable(v)
	}

	required := callee.InputCount()
	supplied := len(args)
	if supplied > required {
		supplied = required
	}

	var seq []Instruction

	// The inlined body may run more than once, so every renamed variable
	// that is not an argument starts from zero like in a fresh call.
	for _, v := range callee.Variables() {
		if v.Kind == InputVariable && v.Index <= supplied {
			continue
		}
		seq = append(seq, NewZeroVariable(in.variable(v)))
	}

	for i := 0; i < supplied; i++ {
		materialized, err := materializeArgument(in.variable(Input(i+1)), args[i])
		if err != nil {
			return nil, err
		}
		seq = append(seq, materialized)
	}

	// Surplus arguments are never evaluated, but the caller variables they
	// name stay part of the program.
	surplus, err := validateArguments(inst.Args, args[supplied:])
	if err != nil {
		return nil, err
	}
	kept := make(map[Variable]bool)
	for _, v := range surplus {
		if kept[v] {
			continue
		}
		kept[v] = true
		seq = append(seq, NewNeutral(v))
	}

	for j, ci := range callee.Instructions {
		clone := ci
		clone.Label = in.label(ci.Label)
		clone.Var = in.variable(ci.Var)
		clone.Other = in.variable(ci.Other)
		clone.Target = in.label(ci.Target)
		if ci.Opcode.IsQuotation() {
			clone.Args = FormatArguments(renameArguments(callee.Arguments(j), in.variable))
		}
		seq = append(seq, clone)
	}

	switch inst.Opcode {
	case Quotation:
		seq = append(seq, NewAssignment(inst.Var, result).WithLabel(in.end))
	case JumpEqualFunction:
		seq = append(seq, NewJumpEqualVariable(inst.Var, result, inst.Target).WithLabel(in.end))
	}

	return seq, nil
}

// materializeArgument writes one argument into the renamed input variable.
func materializeArgument(dst Variable, a *Argument) (Instruction, error) {
	switch {
	case a.Call != nil:
		return NewQuotation(dst, a.Call.Name, FormatArguments(a.Call.Args)), nil
	case a.Number != nil:
		n, ok := a.Constant()
		if !ok || n < 0 {
			return Instruction{}, fmt.Errorf("invalid constant argument %s", *a.Number)
		}
		return NewConstantAssignment(dst, uint64(n)), nil
	default:
		src, err := a.Variable()
		if err != nil {
			return Instruction{}, err
		}
		return NewAssignment(dst, src), nil
	}
}

package core

// Base degree of the quotation opcodes: inlining emits ASSIGNMENTs (degree
// 2) to pass arguments and results, and JUMP_EQUAL_FUNCTION ends with a
// JUMP_EQUAL_VARIABLE (degree 3).
const (
	quotationBaseDegree     = 2
	jumpEqualFunctionDegree = 3
)

// degreeCalc computes static degrees. It memoizes function degrees and
// detects cyclic call graphs.
type degreeCalc struct {
	registry  Registry
	memo      map[string]int
	visiting  map[string]bool
	callStack []string
}

func newDegreeCalc(reg Registry) *degreeCalc {
	return &degreeCalc{
		registry: reg,
		memo:     make(map[string]int),
		visiting: make(map[string]bool),
	}
}

// function returns the degree of a named program, entering it on the call
// stack.
func (d *degreeCalc) function(p *Program) (int, error) {
	if deg, ok := d.memo[p.Name]; ok {
		return deg, nil
	}

	if d.visiting[p.Name] {
		path := append([]string{}, d.callStack...)
		for len(path) > 0 && path[0] != p.Name {
			path = path[1:]
		}
		return 0, &CyclicCallError{Path: append(path, p.Name)}
	}

	d.visiting[p.Name] = true
	d.callStack = append(d.callStack, p.Name)
	defer func() {
		d.callStack = d.callStack[:len(d.callStack)-1]
		delete(d.visiting, p.Name)
	}()

	deg, err := d.program(p)
	if err != nil {
		return 0, err
	}

	d.memo[p.Name] = deg
	return deg, nil
}

// program returns the degree of p without entering it on the call stack.
// Top-level programs are not registry entries, so their name may match a
// function they call.
func (d *degreeCalc) program(p *Program) (int, error) {
	highest := 0
	for idx := range p.Instructions {
		deg, err := d.instruction(p, idx)
		if err != nil {
			return 0, err
		}
		if deg > highest {
			highest = deg
		}
	}
	return highest, nil
}

func (d *degreeCalc) instruction(p *Program, idx int) (int, error) {
	inst := p.Instructions[idx]
	switch inst.Opcode {
	case Quotation:
		return d.call(inst.Function, p.Arguments(idx), quotationBaseDegree)
	case JumpEqualFunction:
		return d.call(inst.Function, p.Arguments(idx), jumpEqualFunctionDegree)
	case Assignment:
		// v <- v expands straight to NEUTRAL.
		if inst.Var == inst.Other {
			return 1, nil
		}
		return inst.Opcode.Degree(), nil
	default:
		return inst.Opcode.Degree(), nil
	}
}

// call is the degree of invoking name with args: one round to inline, then
// whatever the inlined code still needs.
func (d *degreeCalc) call(name string, args []*Argument, base int) (int, error) {
	callee, err := d.registry.ProgramByName(name)
	if err != nil {
		return 0, err
	}

	deg := base

	calleeDeg, err := d.function(callee)
	if err != nil {
		return 0, err
	}
	if calleeDeg > deg {
		deg = calleeDeg
	}

	// Arguments past the callee's inputs are never evaluated.
	for i, a := range args {
		if i >= callee.InputCount() {
			break
		}
		if a.Call == nil {
			continue
		}
		nested, err := d.call(a.Call.Name, a.Call.Args, quotationBaseDegree)
		if err != nil {
			return 0, err
		}
		if nested > deg {
			deg = nested
		}
	}

	return deg + 1, nil
}

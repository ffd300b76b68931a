package core

import (
	"fmt"
	"log/slog"
)

type coreState struct {
	PC     int
	Vars   map[Variable]uint64
	Cycles uint64
	Steps  uint64
	Halted bool
}

type instEmulator struct {
	registry Registry
	// maxSteps bounds every directly evaluated call. Zero means no bound.
	maxSteps uint64
}

// RunInst executes the instruction at idx. It returns the label control
// passes to and the cycles the instruction consumed, including those of any
// function it invoked.
func (i instEmulator) RunInst(p *Program, idx int, state *coreState) (Label, uint64, error) {
	inst := p.Instructions[idx]
	vars := state.Vars
	cycles := inst.Cycles()

	switch inst.Opcode {
	case Neutral:
	case Increase:
		vars[inst.Var]++
	case Decrease:
		if vars[inst.Var] > 0 {
			vars[inst.Var]--
		}
	case JumpNotZero:
		if vars[inst.Var] != 0 {
			return inst.Target, cycles, nil
		}
	case ZeroVariable:
		vars[inst.Var] = 0
	case GotoLabel:
		return inst.Target, cycles, nil
	case ConstantAssignment:
		vars[inst.Var] = inst.Const
	case JumpZero:
		if vars[inst.Var] == 0 {
			return inst.Target, cycles, nil
		}
	case Assignment:
		vars[inst.Var] = vars[inst.Other]
	case JumpEqualConstant:
		if vars[inst.Var] == inst.Const {
			return inst.Target, cycles, nil
		}
	case JumpEqualVariable:
		if vars[inst.Var] == vars[inst.Other] {
			return inst.Target, cycles, nil
		}
	case Quotation:
		value, used, err := i.call(inst.Function, p.Arguments(idx), vars)
		if err != nil {
			return EmptyLabel, 0, err
		}
		vars[inst.Var] = value
		return EmptyLabel, cycles + used, nil
	case JumpEqualFunction:
		value, used, err := i.call(inst.Function, p.Arguments(idx), vars)
		if err != nil {
			return EmptyLabel, 0, err
		}
		if vars[inst.Var] == value {
			return inst.Target, cycles + used, nil
		}
		return EmptyLabel, cycles + used, nil
	default:
		panic(fmt.Sprintf("unknown instruction '%s' at PC %d", inst.Opcode, state.PC))
	}

	return EmptyLabel, cycles, nil
}

// call runs the named function on the evaluated arguments. Arguments are
// evaluated in the caller's environment env; missing trailing arguments are
// zero. It returns the function's result and every cycle spent, nested
// calls included.
func (i instEmulator) call(
	name string,
	args []*Argument,
	env map[Variable]uint64,
) (value uint64, cycles uint64, err error) {
	callee, err := i.registry.ProgramByName(name)
	if err != nil {
		return 0, 0, err
	}

	inputs := make([]uint64, callee.InputCount())
	for n := range inputs {
		if n >= len(args) {
			break
		}

		v, c, err := i.evalArgument(args[n], env)
		if err != nil {
			return 0, 0, err
		}
		inputs[n] = v
		cycles += c
	}

	m, err := newMachine(callee, i.registry, inputs)
	if err != nil {
		return 0, 0, err
	}
	m.emu.maxSteps = i.maxSteps

	if err := m.run(i.maxSteps); err != nil {
		return 0, 0, err
	}

	slog.Debug("Call",
		"Function", name,
		"Inputs", inputs,
		"Result", m.state.Vars[Result],
		"Cycles", m.state.Cycles,
	)

	return m.state.Vars[Result], cycles + m.state.Cycles, nil
}

func (i instEmulator) evalArgument(a *Argument, env map[Variable]uint64) (uint64, uint64, error) {
	switch {
	case a.Call != nil:
		return i.call(a.Call.Name, a.Call.Args, env)
	case a.Ident != nil:
		v, err := a.Variable()
		if err != nil {
			return 0, 0, err
		}
		return env[v], 0, nil
	default:
		n, ok := a.Constant()
		if !ok || n < 0 {
			return 0, 0, fmt.Errorf("invalid constant argument %s", a)
		}
		return uint64(n), 0, nil
	}
}

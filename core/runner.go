package core

import (
	"fmt"
	"log/slog"
)

// RunResult is the observable outcome of a halted run.
type RunResult struct {
	Program   string
	Value     uint64
	Variables map[Variable]uint64
	Cycles    uint64
	Steps     uint64
}

// SortedVariables returns the variables of the snapshot in display order.
func (r *RunResult) SortedVariables() []Variable {
	vars := make([]Variable, 0, len(r.Variables))
	for v := range r.Variables {
		vars = append(vars, v)
	}
	sortVariables(vars)
	return vars
}

// Machine is the execution state of one run: a program counter over the
// program, the variable store and the cycle counter.
type Machine struct {
	program *Program
	emu     instEmulator
	state   coreState
}

// NewMachine prepares a run of p. Inputs fill x1, x2, ... in order; fewer
// inputs than the highest referenced input index is an error. Function
// calls are checked for existence and cycles before anything executes.
func NewMachine(p *Program, reg Registry, inputs []uint64) (*Machine, error) {
	if _, err := newDegreeCalc(reg).program(p); err != nil {
		return nil, fmt.Errorf("program %s: %w", p.Name, err)
	}

	return newMachine(p, reg, inputs)
}

func newMachine(p *Program, reg Registry, inputs []uint64) (*Machine, error) {
	if required := p.InputCount(); len(inputs) < required {
		return nil, &InputCountError{
			Program: p.Name, Required: required, Supplied: len(inputs),
		}
	}

	m := &Machine{
		program: p,
		emu:     instEmulator{registry: reg},
		state: coreState{
			Vars: make(map[Variable]uint64),
		},
	}

	for _, v := range p.Variables() {
		if v.Kind == InputVariable {
			m.state.Vars[v] = inputs[v.Index-1]
		} else {
			m.state.Vars[v] = 0
		}
	}
	m.state.Vars[Result] = 0

	m.state.Halted = p.Len() == 0

	return m, nil
}

// Program returns the program being run.
func (m *Machine) Program() *Program {
	return m.program
}

// Halted reports whether the machine reached EXIT or ran past the last
// instruction.
func (m *Machine) Halted() bool {
	return m.state.Halted
}

// PC returns the index of the next instruction to execute.
func (m *Machine) PC() int {
	return m.state.PC
}

// Cycles returns the cycles consumed so far.
func (m *Machine) Cycles() uint64 {
	return m.state.Cycles
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() uint64 {
	return m.state.Steps
}

// Value returns the current value of v.
func (m *Machine) Value(v Variable) uint64 {
	return m.state.Vars[v]
}

// Snapshot copies the variable store.
func (m *Machine) Snapshot() map[Variable]uint64 {
	vars := make(map[Variable]uint64, len(m.state.Vars))
	for v, n := range m.state.Vars {
		vars[v] = n
	}
	return vars
}

// Result returns the outcome so far. After halt it is the run's result.
func (m *Machine) Result() *RunResult {
	return &RunResult{
		Program:   m.program.Name,
		Value:     m.state.Vars[Result],
		Variables: m.Snapshot(),
		Cycles:    m.state.Cycles,
		Steps:     m.state.Steps,
	}
}

// Step executes one instruction. Stepping a halted machine does nothing.
func (m *Machine) Step() error {
	if m.state.Halted {
		return nil
	}

	pc := m.state.PC
	next, cycles, err := m.emu.RunInst(m.program, pc, &m.state)
	if err != nil {
		return fmt.Errorf("program %s: instruction %d: %w", m.program.Name, pc+1, err)
	}

	m.state.Cycles += cycles
	m.state.Steps++

	switch {
	case next.IsExit():
		m.state.Halted = true
	case next.IsEmpty():
		m.state.PC++
	default:
		target, err := m.program.InstructionAt(next)
		if err != nil {
			return err
		}
		m.state.PC = target
	}

	if m.state.PC >= m.program.Len() {
		m.state.Halted = true
	}

	slog.Debug("Step",
		"Program", m.program.Name,
		"PC", pc,
		"Inst", m.program.Instructions[pc].String(),
		"Next", m.state.PC,
		"Cycles", m.state.Cycles,
	)

	return nil
}

// run steps until halt. A non-zero maxSteps bounds the number of steps.
func (m *Machine) run(maxSteps uint64) error {
	for !m.state.Halted {
		if maxSteps > 0 && m.state.Steps >= maxSteps {
			return &StepLimitError{Program: m.program.Name, Limit: maxSteps}
		}

		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Runner runs programs to completion.
type Runner struct {
	registry Registry
	maxSteps uint64
}

// NewRunner creates a runner resolving functions through reg.
func NewRunner(reg Registry) Runner {
	return Runner{registry: reg}
}

// WithMaxSteps bounds the number of instructions a run may execute. The
// same bound applies separately to each function call evaluated directly.
// Zero means no bound.
func (r Runner) WithMaxSteps(n uint64) Runner {
	r.maxSteps = n
	return r
}

// Run executes p on inputs until it halts. A failed run has no result.
func (r Runner) Run(p *Program, inputs []uint64) (*RunResult, error) {
	m, err := NewMachine(p, r.registry, inputs)
	if err != nil {
		return nil, err
	}
	m.emu.maxSteps = r.maxSteps

	if err := m.run(r.maxSteps); err != nil {
		return nil, err
	}

	res := m.Result()
	Trace("Run",
		"Program", p.Name,
		"Inputs", inputs,
		"Result", res.Value,
		"Cycles", res.Cycles,
		"Steps", res.Steps,
	)

	return res, nil
}

package api

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/slang/config"
	"github.com/sarchlab/slang/core"
)

// DebugRequest asks for a debug session. Breakpoints are instruction
// indices of the expanded program.
type DebugRequest struct {
	Program     *core.Program
	Degree      int
	Inputs      []string
	Breakpoints []int
}

// DebugState is a snapshot of a debug session.
type DebugState struct {
	PC        int
	Next      string
	Paused    bool
	Halted    bool
	Stopped   bool
	Variables []VariableValue
	Cycles    uint64
	Steps     uint64
	Err       error
}

// DebugSession controls one program mapped to its own core. The session
// starts before the first instruction.
type DebugSession struct {
	Name     string
	engine   sim.Engine
	platform *config.Platform
	recorder *core.StepRecorder
}

func (d *driverImpl) Debug(req DebugRequest) (*DebugSession, error) {
	inputs, err := ParseInputs(req.Inputs)
	if err != nil {
		return nil, err
	}

	p, err := d.prepare(req.Program, req.Degree)
	if err != nil {
		return nil, err
	}

	engine := d.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	name := fmt.Sprintf("Session%d", d.sessions.Add(1))
	platform := config.NewPlatformBuilder().
		WithEngine(engine).
		WithFreq(d.freq).
		WithRegistry(d.registry).
		WithArchitecture(d.architecture).
		Build(name)

	s := &DebugSession{
		Name:     name,
		engine:   engine,
		platform: platform,
		recorder: &core.StepRecorder{},
	}
	platform.Core.AcceptHook(s.recorder)

	if err := platform.MapProgram(p, inputs); err != nil {
		return nil, err
	}

	for _, idx := range req.Breakpoints {
		if err := s.SetBreakpoint(idx); err != nil {
			return nil, err
		}
	}

	core.Trace("DebugSession", "Session", name, "Program", p.Name)

	return s, nil
}

// Program returns the expanded program being debugged.
func (s *DebugSession) Program() *core.Program {
	return s.platform.Core.Program()
}

// SetBreakpoint pauses the session before the instruction at idx.
func (s *DebugSession) SetBreakpoint(idx int) error {
	return s.platform.Core.SetBreakpoint(idx)
}

// ClearBreakpoint removes the breakpoint at idx.
func (s *DebugSession) ClearBreakpoint(idx int) {
	s.platform.Core.ClearBreakpoint(idx)
}

// Breakpoints lists the current breakpoints.
func (s *DebugSession) Breakpoints() []int {
	return s.platform.Core.Breakpoints()
}

// Step executes the next instruction and pauses again.
func (s *DebugSession) Step() (DebugState, error) {
	s.platform.Core.StepOver()
	return s.State(), s.platform.Core.Err()
}

// Continue runs until the next breakpoint or until the program halts.
func (s *DebugSession) Continue() (DebugState, error) {
	c := s.platform.Core
	if c.Paused() {
		c.Resume()
	}

	if err := s.engine.Run(); err != nil {
		return s.State(), err
	}

	return s.State(), c.Err()
}

// Stop ends the session. Later steps do nothing.
func (s *DebugSession) Stop() DebugState {
	s.platform.Core.Stop()
	return s.State()
}

// Trace returns every instruction executed so far.
func (s *DebugSession) Trace() []core.StepRecord {
	return s.recorder.Steps
}

// State returns a snapshot of the session.
func (s *DebugSession) State() DebugState {
	c := s.platform.Core
	snap := c.Snapshot()

	state := DebugState{
		PC:        c.PC(),
		Paused:    c.Paused(),
		Halted:    c.Halted(),
		Stopped:   c.Stopped(),
		Variables: variableValues(snap),
		Cycles:    snap.Cycles,
		Steps:     snap.Steps,
		Err:       c.Err(),
	}

	if p := c.Program(); !state.Halted && state.PC < p.Len() {
		state.Next = p.Instructions[state.PC].String()
	}

	return state
}

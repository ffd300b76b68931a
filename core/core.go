package core

import (
	"errors"
	"sort"

	"github.com/sarchlab/akita/v4/sim"
)

// Core executes a mapped program one instruction per tick. It pauses at
// breakpoints and can be resumed, stepped or stopped between ticks.
type Core struct {
	*sim.TickingComponent

	registry    Registry
	machine     *Machine
	breakpoints map[int]bool
	paused      bool
	stopped     bool
	skipBreak   bool
	err         error
}

// MapProgram prepares the core to run p on inputs and schedules the first
// tick. Previous run state and breakpoints are discarded.
func (c *Core) MapProgram(p *Program, inputs []uint64) error {
	m, err := NewMachine(p, c.registry, inputs)
	if err != nil {
		return err
	}

	c.machine = m
	c.breakpoints = make(map[int]bool)
	c.paused = false
	c.stopped = false
	c.skipBreak = false
	c.err = nil

	Trace("MapProgram",
		"Core", c.Name(),
		"Program", p.Name,
		"Inputs", inputs,
	)

	c.TickLater()

	return nil
}

// Tick executes one instruction.
func (c *Core) Tick() (madeProgress bool) {
	if !c.runnable() {
		return false
	}

	pc := c.machine.PC()
	if c.breakpoints[pc] && !c.skipBreak {
		c.paused = true
		Trace("Breakpoint",
			"Core", c.Name(),
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"PC", pc,
			"Inst", c.machine.Program().Instructions[pc].String(),
		)
		LogState(c.machine)
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosBreakpoint,
			Item: StepRecord{
				PC:     pc,
				Inst:   c.machine.Program().Instructions[pc],
				Next:   pc,
				Cycles: c.machine.Cycles(),
			},
		})
		return false
	}
	c.skipBreak = false

	return c.step()
}

func (c *Core) runnable() bool {
	return c.machine != nil &&
		!c.machine.Halted() &&
		!c.paused &&
		!c.stopped &&
		c.err == nil
}

func (c *Core) step() bool {
	pc := c.machine.PC()
	if err := c.machine.Step(); err != nil {
		c.err = err
		Trace("Fault", "Core", c.Name(), "Error", err.Error())
		return false
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosInstExecuted,
		Item: StepRecord{
			PC:     pc,
			Inst:   c.machine.Program().Instructions[pc],
			Next:   c.machine.PC(),
			Cycles: c.machine.Cycles(),
		},
	})

	if c.machine.Halted() {
		Trace("Halt",
			"Core", c.Name(),
			"Time", float64(c.Engine.CurrentTime()*1e9),
			"Result", c.machine.Value(Result),
			"Cycles", c.machine.Cycles(),
		)
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosHalt,
			Item:   c.machine.Result(),
		})
	}

	return true
}

// SetBreakpoint pauses execution before the instruction at idx runs.
func (c *Core) SetBreakpoint(idx int) error {
	if c.machine == nil {
		return errors.New("no program mapped")
	}
	if idx < 0 || idx >= c.machine.Program().Len() {
		return errors.New("breakpoint out of range")
	}

	c.breakpoints[idx] = true
	return nil
}

// ClearBreakpoint removes the breakpoint at idx, if any.
func (c *Core) ClearBreakpoint(idx int) {
	delete(c.breakpoints, idx)
}

// Breakpoints lists the instruction indices that carry a breakpoint.
func (c *Core) Breakpoints() []int {
	var list []int
	for idx := range c.breakpoints {
		list = append(list, idx)
	}
	sort.Ints(list)
	return list
}

// Resume continues a paused core. The instruction it paused at runs
// without triggering its breakpoint again.
func (c *Core) Resume() {
	if !c.paused {
		return
	}

	c.paused = false
	c.skipBreak = true
	c.TickLater()
}

// StepOver executes exactly one instruction of a paused or freshly mapped
// core, ignoring any breakpoint on it. The core stays paused afterwards.
func (c *Core) StepOver() bool {
	if c.machine == nil || c.machine.Halted() || c.stopped || c.err != nil {
		return false
	}

	c.paused = true
	c.skipBreak = false
	return c.step()
}

// Stop ends the run. A stopped core does not tick again until a new
// program is mapped.
func (c *Core) Stop() {
	c.stopped = true
}

// Paused reports whether the core is waiting at a breakpoint or after a
// single step.
func (c *Core) Paused() bool {
	return c.paused
}

// Stopped reports whether Stop was called.
func (c *Core) Stopped() bool {
	return c.stopped
}

// Halted reports whether the mapped program ran to completion.
func (c *Core) Halted() bool {
	return c.machine != nil && c.machine.Halted()
}

// Err returns the error that ended the run, if any.
func (c *Core) Err() error {
	return c.err
}

// PC returns the index of the next instruction.
func (c *Core) PC() int {
	if c.machine == nil {
		return 0
	}
	return c.machine.PC()
}

// Program returns the mapped program.
func (c *Core) Program() *Program {
	if c.machine == nil {
		return nil
	}
	return c.machine.Program()
}

// Snapshot returns the current run state.
func (c *Core) Snapshot() *RunResult {
	if c.machine == nil {
		return nil
	}
	return c.machine.Result()
}

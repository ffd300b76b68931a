package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// HookPosInstExecuted marks when the core finished one instruction.
var HookPosInstExecuted = &sim.HookPos{Name: "Inst Executed"}

// HookPosBreakpoint marks when the core paused at a breakpoint.
var HookPosBreakpoint = &sim.HookPos{Name: "Breakpoint"}

// HookPosHalt marks when the mapped program halted.
var HookPosHalt = &sim.HookPos{Name: "Halt"}

// StepRecord is the hook item of HookPosInstExecuted and HookPosBreakpoint.
type StepRecord struct {
	PC     int
	Inst   Instruction
	Next   int
	Cycles uint64
}

// StepRecorder is a hook that keeps every executed instruction.
type StepRecorder struct {
	Steps []StepRecord
}

// Func records the executed instruction carried by ctx.
func (r *StepRecorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosInstExecuted {
		return
	}

	r.Steps = append(r.Steps, ctx.Item.(StepRecord))
}

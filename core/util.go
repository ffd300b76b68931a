package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// RenderProgram prints the program as a table of index, label and command.
// When the program was produced by expansion, the originating instruction
// of the previous program is shown as well.
func RenderProgram(p *Program) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s (%d instructions)", p.Name, p.Len()))

	if p.Previous == nil {
		t.AppendHeader(table.Row{"#", "Label", "Instruction", "Cycles"})
	} else {
		t.AppendHeader(table.Row{"#", "Label", "Instruction", "Cycles", "From"})
	}

	for idx, inst := range p.Instructions {
		row := table.Row{idx + 1, inst.Label.String(), inst.Command(), inst.Cycles()}
		if p.Previous != nil {
			from := ""
			if inst.Origin >= 0 {
				from = fmt.Sprintf("#%d %s", inst.Origin+1,
					p.Previous.Instructions[inst.Origin].Command())
			}
			row = append(row, from)
		}
		t.AppendRow(row)
	}

	return t.Render()
}

// RenderVariables prints a variable snapshot in display order.
func RenderVariables(r *RunResult) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s: %d cycles, %d steps", r.Program, r.Cycles, r.Steps))
	t.AppendHeader(table.Row{"Variable", "Value"})

	for _, v := range r.SortedVariables() {
		t.AppendRow(table.Row{v.String(), r.Variables[v]})
	}

	return t.Render()
}

func LogState(m *Machine) {
	slog.Debug("StateCheckpoint",
		"Program", m.program.Name,
		"PC", m.state.PC,
		"Cycles", m.state.Cycles,
		"Steps", m.state.Steps,
		"Halted", m.state.Halted,
		"Vars", m.state.Vars,
	)
}

package verify

import (
	"errors"
	"fmt"

	"github.com/sarchlab/slang/config"
	"github.com/sarchlab/slang/core"
)

// RunLint performs static lint checks on a program and every function it
// can reach through reg. Architecture checks apply to the program itself,
// since inlined functions only ever run as part of an expansion of it.
// Returns a list of issues found, or empty list if no issues.
func RunLint(p *core.Program, reg core.Registry, arch config.Architecture) []Issue {
	var issues []Issue

	issues = append(issues, lintCalls(p, reg)...)
	issues = append(issues, lintArchitecture(p, arch)...)
	issues = append(issues, lintFlow(p)...)

	return issues
}

// lintCalls walks the call graph breadth first.
func lintCalls(p *core.Program, reg core.Registry) []Issue {
	var issues []Issue

	visited := map[string]bool{p.Name: true}
	queue := []*core.Program{p}

	for len(queue) > 0 {
		prog := queue[0]
		queue = queue[1:]

		for idx, inst := range prog.Instructions {
			if !inst.Opcode.IsQuotation() {
				continue
			}

			callees, callIssues := lintCall(prog, idx, inst.Function, prog.Arguments(idx), reg)
			issues = append(issues, callIssues...)

			for _, callee := range callees {
				if !visited[callee.Name] {
					visited[callee.Name] = true
					queue = append(queue, callee)
				}
			}
		}
	}

	if _, err := core.NewExpander(reg).Degree(p); err != nil {
		var cycleErr *core.CyclicCallError
		if errors.As(err, &cycleErr) {
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Program: p.Name,
				Index:   -1,
				Message: cycleErr.Error(),
				Details: map[string]interface{}{"path": cycleErr.Path},
			})
		}
	}

	return issues
}

// lintCall checks one call and the calls nested in its arguments. It
// returns the callees that could be resolved.
func lintCall(
	prog *core.Program,
	idx int,
	name string,
	args []*core.Argument,
	reg core.Registry,
) ([]*core.Program, []Issue) {
	var (
		callees []*core.Program
		issues  []Issue
	)

	callee, err := reg.ProgramByName(name)
	if err != nil {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			Program: prog.Name,
			Index:   idx,
			Message: fmt.Sprintf("Call to undefined function %s", name),
			Details: map[string]interface{}{"function": name},
		})
	} else {
		callees = append(callees, callee)

		if required := callee.InputCount(); len(args) > required {
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Program: prog.Name,
				Index:   idx,
				Message: fmt.Sprintf("%s takes %d inputs but is called with %d arguments; the rest are ignored",
					name, required, len(args)),
				Details: map[string]interface{}{
					"function": name,
					"inputs":   required,
					"args":     len(args),
				},
			})
		}
	}

	for _, a := range args {
		if a.Call == nil {
			continue
		}
		nested, nestedIssues := lintCall(prog, idx, a.Call.Name, a.Call.Args, reg)
		callees = append(callees, nested...)
		issues = append(issues, nestedIssues...)
	}

	return callees, issues
}

func lintArchitecture(p *core.Program, arch config.Architecture) []Issue {
	var issues []Issue

	for idx, inst := range p.Instructions {
		if arch.Supports(inst.Opcode) {
			continue
		}

		need := config.MinimumArchitecture(inst.Opcode)
		issues = append(issues, Issue{
			Type:    IssueArch,
			Program: p.Name,
			Index:   idx,
			Message: fmt.Sprintf("%s needs architecture %s, selected %s", inst.Opcode, need, arch),
			Details: map[string]interface{}{
				"opcode":   string(inst.Opcode),
				"required": need.String(),
				"selected": arch.String(),
			},
		})
	}

	return issues
}

func lintFlow(p *core.Program) []Issue {
	var issues []Issue

	reachable := reachableInstructions(p)
	for idx := range p.Instructions {
		if !reachable[idx] {
			issues = append(issues, Issue{
				Type:    IssueFlow,
				Program: p.Name,
				Index:   idx,
				Message: fmt.Sprintf("Instruction %s is unreachable", p.Instructions[idx]),
			})
		}
	}

	targeted := make(map[core.Label]bool)
	for _, inst := range p.Instructions {
		if inst.HasTarget() {
			targeted[inst.Target] = true
		}
	}
	for _, l := range p.Labels() {
		if targeted[l] {
			continue
		}
		idx, _ := p.InstructionAt(l)
		issues = append(issues, Issue{
			Type:    IssueFlow,
			Program: p.Name,
			Index:   idx,
			Message: fmt.Sprintf("Label %s is never jumped to", l),
			Details: map[string]interface{}{"label": l.String()},
		})
	}

	if p.Len() > 0 && !writesResult(p) {
		issues = append(issues, Issue{
			Type:    IssueFlow,
			Program: p.Name,
			Index:   -1,
			Message: "The result variable y is never written; the program always yields 0",
		})
	}

	return issues
}

// reachableInstructions follows fall-through and jump edges from the first
// instruction.
func reachableInstructions(p *core.Program) map[int]bool {
	reachable := make(map[int]bool)
	if p.Len() == 0 {
		return reachable
	}

	work := []int{0}
	for len(work) > 0 {
		idx := work[len(work)-1]
		work = work[:len(work)-1]

		if idx >= p.Len() || reachable[idx] {
			continue
		}
		reachable[idx] = true

		inst := p.Instructions[idx]
		if inst.Opcode != core.GotoLabel {
			work = append(work, idx+1)
		}
		if inst.HasTarget() && !inst.Target.IsExit() {
			if target, err := p.InstructionAt(inst.Target); err == nil {
				work = append(work, target)
			}
		}
	}

	return reachable
}

func writesResult(p *core.Program) bool {
	for _, inst := range p.Instructions {
		if inst.Var != core.Result {
			continue
		}
		switch inst.Opcode {
		case core.Increase, core.Decrease, core.ZeroVariable,
			core.ConstantAssignment, core.Assignment, core.Quotation:
			return true
		}
	}
	return false
}

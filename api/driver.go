// Package api defines the driver API for running, expanding and debugging
// S-language programs.
package api

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/slang/config"
	"github.com/sarchlab/slang/core"
	"github.com/sarchlab/slang/verify"
)

// Driver provides the interface to run programs against one registry.
type Driver interface {
	// Run expands the program to the requested degree and runs it on the
	// inputs until it halts.
	Run(req RunRequest) (*RunResponse, error)

	// View expands the program to the requested degree and describes every
	// instruction of the result.
	View(req ViewRequest) (*ViewResponse, error)

	// Debug expands the program and maps it to a fresh core that executes
	// one instruction at a time under the caller's control.
	Debug(req DebugRequest) (*DebugSession, error)
}

// RunRequest asks for one run. Inputs are decimal strings assigned to x1,
// x2, ... in order.
type RunRequest struct {
	Program *core.Program
	Degree  int
	Inputs  []string
}

// VariableValue is one entry of a variable snapshot.
type VariableValue struct {
	Name  string
	Value uint64
}

// RunResponse is the outcome of a halted run.
type RunResponse struct {
	Result    uint64
	Variables []VariableValue
	Cycles    uint64
	Steps     uint64
	Degree    int
	Credits   uint64
}

// ViewRequest asks for the expansion of a program at a degree.
type ViewRequest struct {
	Program *core.Program
	Degree  int
}

// ViewRow describes one instruction of an expanded program.
type ViewRow struct {
	Index    int
	Label    string
	Opcode   core.Opcode
	Operands string
	Command  string
	Cycles   uint64
	// Origin is the index of the instruction in the previous round this
	// row was expanded from, -1 at degree 0.
	Origin  int
	Lineage []string
}

// ViewResponse lists the instructions of an expanded program.
type ViewResponse struct {
	Program   *core.Program
	Degree    int
	MaxDegree int
	Cycles    uint64
	Rows      []ViewRow
	Table     string
}

type cacheKey struct {
	program *core.Program
	degree  int
}

type driverImpl struct {
	registry     core.Registry
	architecture config.Architecture
	engine       sim.Engine
	freq         sim.Freq
	maxSteps     uint64
	expander     *core.Expander
	cache        *lru.Cache[cacheKey, *core.Program]
	sessions     atomic.Uint64
}

// ParseInputs converts decimal input strings to values. Surrounding spaces
// are ignored; anything else that is not a non-negative integer is an
// InputValueError.
func ParseInputs(inputs []string) ([]uint64, error) {
	values := make([]uint64, len(inputs))
	for i, s := range inputs {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, &core.InputValueError{Position: i + 1, Value: s}
		}
		values[i] = v
	}
	return values, nil
}

// expand returns the program expanded to degree, from the cache when the
// same program was expanded before.
func (d *driverImpl) expand(p *core.Program, degree int) (*core.Program, error) {
	if p == nil {
		return nil, fmt.Errorf("no program given")
	}

	key := cacheKey{program: p, degree: degree}
	if expanded, ok := d.cache.Get(key); ok {
		return expanded, nil
	}

	expanded, err := d.expander.ExpandToDegree(p, degree)
	if err != nil {
		return nil, err
	}

	d.cache.Add(key, expanded)
	core.Trace("Expand",
		"Program", p.Name,
		"Degree", degree,
		"Instructions", expanded.Len(),
	)

	return expanded, nil
}

// prepare expands the program and checks that the driver's architecture
// can execute the result.
func (d *driverImpl) prepare(p *core.Program, degree int) (*core.Program, error) {
	expanded, err := d.expand(p, degree)
	if err != nil {
		return nil, err
	}

	if err := config.CheckSupport(expanded, d.architecture); err != nil {
		return nil, err
	}

	return expanded, nil
}

func (d *driverImpl) Run(req RunRequest) (*RunResponse, error) {
	inputs, err := ParseInputs(req.Inputs)
	if err != nil {
		return nil, err
	}

	p, err := d.prepare(req.Program, req.Degree)
	if err != nil {
		return nil, err
	}

	res, err := core.NewRunner(d.registry).WithMaxSteps(d.maxSteps).Run(p, inputs)
	if err != nil {
		return nil, err
	}

	return &RunResponse{
		Result:    res.Value,
		Variables: variableValues(res),
		Cycles:    res.Cycles,
		Steps:     res.Steps,
		Degree:    req.Degree,
		Credits:   verify.CreditCost(req.Program, d.architecture),
	}, nil
}

func (d *driverImpl) View(req ViewRequest) (*ViewResponse, error) {
	p, err := d.expand(req.Program, req.Degree)
	if err != nil {
		return nil, err
	}

	maxDegree, err := d.expander.Degree(req.Program)
	if err != nil {
		return nil, err
	}

	resp := &ViewResponse{
		Program:   p,
		Degree:    req.Degree,
		MaxDegree: maxDegree,
		Table:     core.RenderProgram(p),
	}

	for idx, inst := range p.Instructions {
		row := ViewRow{
			Index:    idx,
			Label:    inst.Label.String(),
			Opcode:   inst.Opcode,
			Operands: inst.Operands(),
			Command:  inst.Command(),
			Cycles:   inst.Cycles(),
			Origin:   inst.Origin,
		}
		for _, prev := range p.Lineage(idx)[1:] {
			row.Lineage = append(row.Lineage, prev.String())
		}

		resp.Cycles += inst.Cycles()
		resp.Rows = append(resp.Rows, row)
	}

	return resp, nil
}

func variableValues(res *core.RunResult) []VariableValue {
	vars := res.SortedVariables()
	values := make([]VariableValue, len(vars))
	for i, v := range vars {
		values[i] = VariableValue{Name: v.String(), Value: res.Variables[v]}
	}
	return values
}

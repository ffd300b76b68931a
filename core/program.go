package core

import (
	"fmt"
	"sort"
	"strings"
)

// Program is an immutable, validated S-language program.
type Program struct {
	Name         string
	Instructions []Instruction

	// Previous is the program this one was expanded from, nil for source
	// programs. Instruction.Origin indexes into Previous.Instructions.
	Previous *Program

	labels    map[Label]int
	variables []Variable
	// args caches the parsed argument list of quotation instructions.
	args map[int][]*Argument
}

// ProgramBuilder accumulates instructions and validates them on Build.
type ProgramBuilder struct {
	name     string
	insts    []Instruction
	previous *Program
}

// NewProgramBuilder starts a program called name.
func NewProgramBuilder(name string) *ProgramBuilder {
	return &ProgramBuilder{name: name}
}

// WithPrevious records the program the new one is expanded from.
func (b *ProgramBuilder) WithPrevious(p *Program) *ProgramBuilder {
	b.previous = p
	return b
}

// Append adds instructions at the end of the program.
func (b *ProgramBuilder) Append(insts ...Instruction) *ProgramBuilder {
	b.insts = append(b.insts, insts...)
	return b
}

// Build validates the instructions and creates the program. Duplicate
// labels, missing operands, unparsable function arguments and jumps to
// undeclared labels are all errors.
func (b *ProgramBuilder) Build() (*Program, error) {
	p := &Program{
		Name:         b.name,
		Instructions: make([]Instruction, len(b.insts)),
		Previous:     b.previous,
		labels:       make(map[Label]int),
		args:         make(map[int][]*Argument),
	}
	copy(p.Instructions, b.insts)

	seen := make(map[Variable]bool)
	addVar := func(v Variable) {
		if !v.IsZero() && !seen[v] {
			seen[v] = true
			p.variables = append(p.variables, v)
		}
	}

	for idx, inst := range p.Instructions {
		if missing := inst.checkOperands(); missing != "" {
			return nil, &MissingOperandError{
				Program: p.Name, Index: idx, Opcode: inst.Opcode, Operand: missing,
			}
		}

		if !inst.Label.IsEmpty() {
			if inst.Label.IsExit() {
				return nil, fmt.Errorf("program %s: instruction %d declares the EXIT label",
					p.Name, idx+1)
			}
			if first, ok := p.labels[inst.Label]; ok {
				return nil, &DuplicateLabelError{
					Program: p.Name, Label: inst.Label, First: first, Second: idx,
				}
			}
			p.labels[inst.Label] = idx
		}

		for _, v := range inst.Variables() {
			addVar(v)
		}

		if inst.Opcode.IsQuotation() {
			args, err := ParseArguments(inst.Args)
			if err != nil {
				return nil, fmt.Errorf("program %s: instruction %d: %w", p.Name, idx+1, err)
			}
			vars, err := validateArguments(inst.Args, args)
			if err != nil {
				return nil, fmt.Errorf("program %s: instruction %d: %w", p.Name, idx+1, err)
			}
			for _, v := range vars {
				addVar(v)
			}
			p.args[idx] = args
		}
	}

	for idx, inst := range p.Instructions {
		if !inst.HasTarget() || inst.Target.IsExit() {
			continue
		}
		if _, ok := p.labels[inst.Target]; !ok {
			return nil, &UnknownLabelError{Program: p.Name, Label: inst.Target, Index: idx}
		}
	}

	return p, nil
}

// MustBuild is Build for programs known to be valid.
func (b *ProgramBuilder) MustBuild() *Program {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.Instructions)
}

// InstructionAt resolves a declared label to an instruction index.
func (p *Program) InstructionAt(l Label) (int, error) {
	idx, ok := p.labels[l]
	if !ok {
		return -1, &UnknownLabelError{Program: p.Name, Label: l, Index: -1}
	}
	return idx, nil
}

// Labels returns the declared labels in ascending order.
func (p *Program) Labels() []Label {
	labels := make([]Label, 0, len(p.labels))
	for l := range p.labels {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Number() < labels[j].Number() })
	return labels
}

// Variables returns every referenced variable: y first, then inputs and
// work variables by index.
func (p *Program) Variables() []Variable {
	vars := make([]Variable, len(p.variables))
	copy(vars, p.variables)
	sortVariables(vars)
	return vars
}

// InputCount is the highest referenced input index.
func (p *Program) InputCount() int {
	n := 0
	for _, v := range p.variables {
		if v.Kind == InputVariable && v.Index > n {
			n = v.Index
		}
	}
	return n
}

// Arguments returns the parsed argument list of the quotation instruction
// at idx.
func (p *Program) Arguments(idx int) []*Argument {
	return p.args[idx]
}

// IsBasic reports whether every instruction is basic.
func (p *Program) IsBasic() bool {
	for _, inst := range p.Instructions {
		if !inst.IsBasic() {
			return false
		}
	}
	return true
}

// Functions returns the names of functions invoked directly by the program,
// including calls nested in arguments, without duplicates.
func (p *Program) Functions() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	var walk func(args []*Argument)
	walk = func(args []*Argument) {
		for _, a := range args {
			if a.Call != nil {
				add(a.Call.Name)
				walk(a.Call.Args)
			}
		}
	}

	for idx, inst := range p.Instructions {
		if inst.Opcode.IsQuotation() {
			add(inst.Function)
			walk(p.args[idx])
		}
	}
	return names
}

// Lineage returns the instruction at idx followed by the instructions it
// was expanded from, newest first. Rounds that passed an instruction
// through unchanged do not repeat it.
func (p *Program) Lineage(idx int) []Instruction {
	var chain []Instruction
	for prog := p; prog != nil && idx >= 0 && idx < prog.Len(); prog = prog.Previous {
		inst := prog.Instructions[idx]
		if n := len(chain); n == 0 || chain[n-1].String() != inst.String() {
			chain = append(chain, inst)
		}
		idx = inst.Origin
	}
	return chain
}

func (p *Program) String() string {
	var sb strings.Builder
	for i, inst := range p.Instructions {
		fmt.Fprintf(&sb, "#%d %s\n", i+1, inst)
	}
	return sb.String()
}

func sortVariables(vars []Variable) {
	sort.Slice(vars, func(i, j int) bool {
		a, b := vars[i], vars[j]
		if a.Kind != b.Kind {
			return kindOrder(a.Kind) < kindOrder(b.Kind)
		}
		return a.Index < b.Index
	})
}

func kindOrder(k VariableKind) int {
	switch k {
	case ResultVariable:
		return 0
	case InputVariable:
		return 1
	default:
		return 2
	}
}

package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// programDoc is the YAML form of a program file. The top-level program is
// the one that runs; functions are only reachable through quotations.
type programDoc struct {
	Name         string           `yaml:"name"`
	Instructions []instructionDoc `yaml:"instructions"`
	Functions    []functionDoc    `yaml:"functions"`
}

type functionDoc struct {
	Name         string           `yaml:"name"`
	Instructions []instructionDoc `yaml:"instructions"`
}

type instructionDoc struct {
	Label    string  `yaml:"label"`
	Op       string  `yaml:"op"`
	Variable string  `yaml:"variable"`
	Target   string  `yaml:"target"`
	Constant *uint64 `yaml:"constant"`
	Source   string  `yaml:"source"`
	Function string  `yaml:"function"`
	Args     string  `yaml:"args"`
}

// LoadProgramFile reads a program file from disk.
func LoadProgramFile(path string) (*Program, *MapRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading program file: %w", err)
	}

	return LoadProgram(data)
}

// LoadProgram decodes a YAML program document and returns the main program
// together with a registry of its functions. Every program is validated,
// and every function the main program can reach must be defined without
// cycles.
func LoadProgram(data []byte) (*Program, *MapRegistry, error) {
	var doc programDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decoding program: %w", err)
	}

	if doc.Name == "" {
		doc.Name = "main"
	}

	functions := make([]*Program, 0, len(doc.Functions))
	for _, f := range doc.Functions {
		if f.Name == "" {
			return nil, nil, fmt.Errorf("function without a name")
		}

		p, err := buildProgram(f.Name, f.Instructions)
		if err != nil {
			return nil, nil, err
		}
		functions = append(functions, p)
	}

	reg, err := NewRegistry(functions...)
	if err != nil {
		return nil, nil, err
	}

	main, err := buildProgram(doc.Name, doc.Instructions)
	if err != nil {
		return nil, nil, err
	}

	if _, err := newDegreeCalc(reg).program(main); err != nil {
		return nil, nil, fmt.Errorf("program %s: %w", main.Name, err)
	}

	Trace("LoadProgram",
		"Program", main.Name,
		"Instructions", main.Len(),
		"Functions", reg.Names(),
	)

	return main, reg, nil
}

func buildProgram(name string, docs []instructionDoc) (*Program, error) {
	b := NewProgramBuilder(name)

	for idx, d := range docs {
		inst, err := d.instruction()
		if err != nil {
			return nil, fmt.Errorf("program %s: instruction %d: %w", name, idx+1, err)
		}

		if inst.Opcode == ConstantAssignment || inst.Opcode == JumpEqualConstant {
			if d.Constant == nil {
				return nil, &MissingOperandError{
					Program: name, Index: idx, Opcode: inst.Opcode, Operand: "constant",
				}
			}
		}

		b.Append(inst)
	}

	return b.Build()
}

func (d instructionDoc) instruction() (Instruction, error) {
	op, err := ParseOpcode(strings.ToUpper(strings.TrimSpace(d.Op)))
	if err != nil {
		return Instruction{}, err
	}

	inst := newInst(op, Variable{})

	if inst.Label, err = ParseLabel(strings.TrimSpace(d.Label)); err != nil {
		return Instruction{}, err
	}
	if inst.Target, err = ParseLabel(strings.TrimSpace(d.Target)); err != nil {
		return Instruction{}, err
	}
	if inst.Var, err = parseOptionalVariable(d.Variable); err != nil {
		return Instruction{}, err
	}
	if inst.Other, err = parseOptionalVariable(d.Source); err != nil {
		return Instruction{}, err
	}

	if d.Constant != nil {
		inst.Const = *d.Constant
	}
	inst.Function = strings.TrimSpace(d.Function)
	inst.Args = strings.TrimSpace(d.Args)

	return inst, nil
}

func parseOptionalVariable(s string) (Variable, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Variable{}, nil
	}
	return ParseVariable(s)
}

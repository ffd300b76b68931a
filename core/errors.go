package core

import (
	"fmt"
	"strings"
)

// DuplicateLabelError is returned when two instructions of one program
// declare the same label.
type DuplicateLabelError struct {
	Program string
	Label   Label
	First   int
	Second  int
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("program %s: label %s declared by instruction %d and instruction %d",
		e.Program, e.Label, e.First+1, e.Second+1)
}

// UnknownLabelError is returned when a jump target is never declared.
type UnknownLabelError struct {
	Program string
	Label   Label
	// Index of the referencing instruction, -1 when resolved at run time
	// without an instruction context.
	Index int
}

func (e *UnknownLabelError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("program %s: unknown label %s", e.Program, e.Label)
	}
	return fmt.Sprintf("program %s: instruction %d jumps to unknown label %s",
		e.Program, e.Index+1, e.Label)
}

// UnknownFunctionError is returned when a registry has no program of the
// given name.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", e.Name)
}

// MissingOperandError is returned for an instruction that lacks an operand
// its opcode needs.
type MissingOperandError struct {
	Program string
	Index   int
	Opcode  Opcode
	Operand string
}

func (e *MissingOperandError) Error() string {
	return fmt.Sprintf("program %s: instruction %d (%s) is missing operand %s",
		e.Program, e.Index+1, e.Opcode, e.Operand)
}

// ArgumentSyntaxError is returned for a function argument string that does
// not parse.
type ArgumentSyntaxError struct {
	Args string
	Err  error
}

func (e *ArgumentSyntaxError) Error() string {
	return fmt.Sprintf("invalid function arguments %q: %v", e.Args, e.Err)
}

func (e *ArgumentSyntaxError) Unwrap() error {
	return e.Err
}

// CyclicCallError is returned when a function invokes itself, directly or
// through other functions.
type CyclicCallError struct {
	Path []string
}

func (e *CyclicCallError) Error() string {
	return "cyclic function call: " + strings.Join(e.Path, " -> ")
}

// InputCountError is returned when fewer inputs are supplied than the
// program references.
type InputCountError struct {
	Program  string
	Required int
	Supplied int
}

func (e *InputCountError) Error() string {
	return fmt.Sprintf("program %s needs %d inputs, got %d",
		e.Program, e.Required, e.Supplied)
}

// InputValueError is returned for an input that is not a non-negative
// integer.
type InputValueError struct {
	Position int
	Value    string
}

func (e *InputValueError) Error() string {
	return fmt.Sprintf("input x%d: %q is not a non-negative integer",
		e.Position, e.Value)
}

// StepLimitError is returned when a run exceeds its configured step limit.
type StepLimitError struct {
	Program string
	Limit   uint64
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("program %s did not halt within %d steps", e.Program, e.Limit)
}

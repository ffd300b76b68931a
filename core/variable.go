package core

import (
	"fmt"
	"strconv"
	"strings"
)

// VariableKind tells which register file a variable lives in.
type VariableKind int

const (
	// NoVariable is the zero value, used by instructions that have no
	// variable operand.
	NoVariable VariableKind = iota
	InputVariable
	WorkVariable
	ResultVariable
)

// Variable names one register of an S-language program.
type Variable struct {
	Kind  VariableKind
	Index int
}

// Result is the distinguished accumulator y.
var Result = Variable{Kind: ResultVariable}

// Input returns x<n>.
func Input(n int) Variable {
	if n <= 0 {
		panic(fmt.Sprintf("input variable index must be positive, got %d", n))
	}
	return Variable{Kind: InputVariable, Index: n}
}

// Work returns z<n>.
func Work(n int) Variable {
	if n <= 0 {
		panic(fmt.Sprintf("work variable index must be positive, got %d", n))
	}
	return Variable{Kind: WorkVariable, Index: n}
}

// IsZero reports whether v is the empty variable.
func (v Variable) IsZero() bool {
	return v.Kind == NoVariable
}

func (v Variable) String() string {
	switch v.Kind {
	case InputVariable:
		return "x" + strconv.Itoa(v.Index)
	case WorkVariable:
		return "z" + strconv.Itoa(v.Index)
	case ResultVariable:
		return "y"
	default:
		return ""
	}
}

// ParseVariable parses x<n>, z<n> or y, ignoring case.
func ParseVariable(s string) (Variable, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "y" {
		return Result, nil
	}

	if len(s) < 2 {
		return Variable{}, fmt.Errorf("invalid variable %q", s)
	}

	var kind VariableKind
	switch s[0] {
	case 'x':
		kind = InputVariable
	case 'z':
		kind = WorkVariable
	default:
		return Variable{}, fmt.Errorf("invalid variable %q", s)
	}

	n, err := strconv.Atoi(s[1:])
	if err != nil || n <= 0 || s[1] == '+' {
		return Variable{}, fmt.Errorf("invalid variable %q", s)
	}

	return Variable{Kind: kind, Index: n}, nil
}

// MustParseVariable is ParseVariable for constant operands in code and
// tests.
func MustParseVariable(s string) Variable {
	v, err := ParseVariable(s)
	if err != nil {
		panic(err)
	}
	return v
}

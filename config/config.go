// Package config describes the architectures a program can be run on and
// builds platforms that enforce them.
package config

import (
	"fmt"
	"strings"

	"github.com/sarchlab/slang/core"
)

// Architecture is one of the instruction-set tiers I to IV. Every tier
// supports the opcodes of the tiers below it.
type Architecture int

const (
	ArchitectureI Architecture = iota + 1
	ArchitectureII
	ArchitectureIII
	ArchitectureIV
)

// Architectures lists every tier, lowest first.
var Architectures = []Architecture{
	ArchitectureI, ArchitectureII, ArchitectureIII, ArchitectureIV,
}

var architectureNames = map[Architecture]string{
	ArchitectureI:   "I",
	ArchitectureII:  "II",
	ArchitectureIII: "III",
	ArchitectureIV:  "IV",
}

// Credit surcharge of running on each tier.
var surcharges = map[Architecture]uint64{
	ArchitectureI:   5,
	ArchitectureII:  100,
	ArchitectureIII: 500,
	ArchitectureIV:  1000,
}

var minimumArchitecture = map[core.Opcode]Architecture{
	core.Neutral:            ArchitectureI,
	core.Increase:           ArchitectureI,
	core.Decrease:           ArchitectureI,
	core.JumpNotZero:        ArchitectureI,
	core.ZeroVariable:       ArchitectureII,
	core.GotoLabel:          ArchitectureII,
	core.ConstantAssignment: ArchitectureII,
	core.JumpZero:           ArchitectureIII,
	core.Assignment:         ArchitectureIII,
	core.JumpEqualConstant:  ArchitectureIII,
	core.JumpEqualVariable:  ArchitectureIII,
	core.Quotation:          ArchitectureIV,
	core.JumpEqualFunction:  ArchitectureIV,
}

func (a Architecture) String() string {
	if name, ok := architectureNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Architecture(%d)", int(a))
}

// ParseArchitecture accepts roman numerals I to IV or digits 1 to 4.
func ParseArchitecture(s string) (Architecture, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, a := range Architectures {
		if s == a.String() || s == fmt.Sprint(int(a)) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown architecture %q", s)
}

// Surcharge is the fixed credit cost of running on the tier.
func (a Architecture) Surcharge() uint64 {
	return surcharges[a]
}

// Supports reports whether the tier can execute op.
func (a Architecture) Supports(op core.Opcode) bool {
	return MinimumArchitecture(op) <= a
}

// MinimumArchitecture is the lowest tier that executes op.
func MinimumArchitecture(op core.Opcode) Architecture {
	a, ok := minimumArchitecture[op]
	if !ok {
		panic(fmt.Sprintf("unknown opcode %q", string(op)))
	}
	return a
}

// Requirement is the lowest tier that executes every instruction of p.
// An empty program needs tier I.
func Requirement(p *core.Program) Architecture {
	req := ArchitectureI
	for _, inst := range p.Instructions {
		if a := MinimumArchitecture(inst.Opcode); a > req {
			req = a
		}
	}
	return req
}

// UnsupportedError is returned when a program is mapped to a tier that
// cannot execute one of its instructions.
type UnsupportedError struct {
	Program      string
	Index        int
	Opcode       core.Opcode
	Architecture Architecture
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("program %s: instruction %d (%s) needs architecture %s, have %s",
		e.Program, e.Index+1, e.Opcode, MinimumArchitecture(e.Opcode), e.Architecture)
}

// CheckSupport returns an UnsupportedError for the first instruction of p
// that a cannot execute.
func CheckSupport(p *core.Program, a Architecture) error {
	for idx, inst := range p.Instructions {
		if !a.Supports(inst.Opcode) {
			return &UnsupportedError{
				Program: p.Name, Index: idx, Opcode: inst.Opcode, Architecture: a,
			}
		}
	}
	return nil
}

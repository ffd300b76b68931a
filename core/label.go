package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Label is either a numbered label L<n> or one of the two sentinels.
// The zero value is the empty label.
type Label struct {
	n    int
	exit bool
}

var (
	// EmptyLabel means fall through to the next instruction.
	EmptyLabel = Label{}
	// ExitLabel halts the program.
	ExitLabel = Label{exit: true}
)

// NumberedLabel returns L<n>.
func NumberedLabel(n int) Label {
	if n <= 0 {
		panic(fmt.Sprintf("label number must be positive, got %d", n))
	}
	return Label{n: n}
}

// IsEmpty reports whether l is the fall-through sentinel.
func (l Label) IsEmpty() bool {
	return l.n == 0 && !l.exit
}

// IsExit reports whether l is the halt sentinel.
func (l Label) IsExit() bool {
	return l.exit
}

// Number returns n for L<n> and 0 for sentinels.
func (l Label) Number() int {
	return l.n
}

func (l Label) String() string {
	switch {
	case l.exit:
		return "EXIT"
	case l.n == 0:
		return ""
	default:
		return "L" + strconv.Itoa(l.n)
	}
}

// ParseLabel parses L<n> or EXIT, ignoring case. The empty string yields
// EmptyLabel.
func ParseLabel(s string) (Label, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch {
	case s == "":
		return EmptyLabel, nil
	case s == "EXIT":
		return ExitLabel, nil
	case strings.HasPrefix(s, "L"):
		n, err := strconv.Atoi(s[1:])
		if err != nil || n <= 0 || s[1] == '+' {
			return Label{}, fmt.Errorf("invalid label %q", s)
		}
		return Label{n: n}, nil
	default:
		return Label{}, fmt.Errorf("invalid label %q", s)
	}
}

// MustParseLabel is ParseLabel for constant operands in code and tests.
func MustParseLabel(s string) Label {
	l, err := ParseLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

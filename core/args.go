package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Function arguments are written as a comma separated list where each item
// is an integer, a variable name or a nested call:
//
//	x1, 3, SUB(ADD(x2, 1), z1)

type argList struct {
	Args []*Argument `( @@ ( "," @@ )* )?`
}

// Argument is one function argument.
type Argument struct {
	Call   *Call   `  @@`
	Number *string `| @Number`
	Ident  *string `| @Ident`
}

// Call is a nested function invocation inside an argument list.
type Call struct {
	Name string      `@Ident "("`
	Args []*Argument `( @@ ( "," @@ )* )? ")"`
}

var argLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `-?[0-9]+`},
	{Name: "Punct", Pattern: `[(),]`},
})

var argParser = participle.MustBuild[argList](
	participle.Lexer(argLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseArguments parses a function argument string. Only top-level commas
// separate arguments, and parentheses must balance.
func ParseArguments(s string) ([]*Argument, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	list, err := argParser.ParseString("", s)
	if err != nil {
		return nil, &ArgumentSyntaxError{Args: s, Err: err}
	}

	return list.Args, nil
}

// FormatArguments renders args in canonical form.
func FormatArguments(args []*Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

// IsCall reports whether a is a nested call.
func (a *Argument) IsCall() bool {
	return a.Call != nil
}

// Constant returns the literal value of a number argument.
func (a *Argument) Constant() (int64, bool) {
	if a.Number == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(*a.Number, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Variable resolves an identifier argument to a variable.
func (a *Argument) Variable() (Variable, error) {
	if a.Ident == nil {
		return Variable{}, fmt.Errorf("argument %s is not a variable", a)
	}
	return ParseVariable(*a.Ident)
}

func (a *Argument) String() string {
	switch {
	case a.Call != nil:
		return a.Call.Name + "(" + FormatArguments(a.Call.Args) + ")"
	case a.Number != nil:
		return *a.Number
	case a.Ident != nil:
		return *a.Ident
	default:
		return ""
	}
}

// validateArguments checks that identifiers name variables and constants
// are non-negative, and returns the variables referenced.
func validateArguments(src string, args []*Argument) ([]Variable, error) {
	var vars []Variable
	for _, a := range args {
		switch {
		case a.Call != nil:
			inner, err := validateArguments(src, a.Call.Args)
			if err != nil {
				return nil, err
			}
			vars = append(vars, inner...)
		case a.Number != nil:
			n, ok := a.Constant()
			if !ok || n < 0 {
				return nil, &ArgumentSyntaxError{
					Args: src,
					Err:  fmt.Errorf("constant %s is not a non-negative integer", *a.Number),
				}
			}
		case a.Ident != nil:
			v, err := a.Variable()
			if err != nil {
				return nil, &ArgumentSyntaxError{Args: src, Err: err}
			}
			vars = append(vars, v)
		}
	}
	return vars, nil
}

// renameArguments returns a copy of args with every variable identifier
// replaced through rename.
func renameArguments(args []*Argument, rename func(Variable) Variable) []*Argument {
	out := make([]*Argument, len(args))
	for i, a := range args {
		switch {
		case a.Call != nil:
			out[i] = &Argument{Call: &Call{
				Name: a.Call.Name,
				Args: renameArguments(a.Call.Args, rename),
			}}
		case a.Ident != nil:
			name := *a.Ident
			if v, err := ParseVariable(name); err == nil {
				name = rename(v).String()
			}
			out[i] = &Argument{Ident: &name}
		default:
			n := *a.Number
			out[i] = &Argument{Number: &n}
		}
	}
	return out
}

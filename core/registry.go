package core

import "fmt"

// Registry resolves function names to programs. Implementations must be
// safe for concurrent reads.
type Registry interface {
	ProgramByName(name string) (*Program, error)
}

// MapRegistry is a Registry backed by a map. It is never modified after
// NewRegistry returns.
type MapRegistry struct {
	programs map[string]*Program
	order    []string
}

// NewRegistry indexes programs by name.
func NewRegistry(programs ...*Program) (*MapRegistry, error) {
	r := &MapRegistry{programs: make(map[string]*Program)}
	for _, p := range programs {
		if _, ok := r.programs[p.Name]; ok {
			return nil, fmt.Errorf("function %q defined twice", p.Name)
		}
		r.programs[p.Name] = p
		r.order = append(r.order, p.Name)
	}
	return r, nil
}

// ProgramByName returns the named program or an UnknownFunctionError.
func (r *MapRegistry) ProgramByName(name string) (*Program, error) {
	if r != nil {
		if p, ok := r.programs[name]; ok {
			return p, nil
		}
	}
	return nil, &UnknownFunctionError{Name: name}
}

// Names returns the registered names in registration order.
func (r *MapRegistry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

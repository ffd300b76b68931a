package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	registry Registry
}

// NewBuilder returns a builder with a 1 GHz clock and an empty registry.
func NewBuilder() Builder {
	return Builder{
		freq:     1 * sim.GHz,
		registry: &MapRegistry{},
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithRegistry sets the registry quotations are resolved through.
func (b Builder) WithRegistry(reg Registry) Builder {
	b.registry = reg
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	c := &Core{
		registry:    b.registry,
		breakpoints: make(map[int]bool),
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}

package config

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/slang/core"
)

// Platform is a core bound to an architecture. Programs the architecture
// cannot execute are refused when mapped.
type Platform struct {
	Name         string
	Architecture Architecture
	Core         *core.Core
}

// MapProgram checks p against the architecture and maps it to the core.
func (p *Platform) MapProgram(prog *core.Program, inputs []uint64) error {
	if err := CheckSupport(prog, p.Architecture); err != nil {
		return err
	}

	return p.Core.MapProgram(prog, inputs)
}

func (p *Platform) String() string {
	return fmt.Sprintf("%s(%s)", p.Name, p.Architecture)
}

// PlatformBuilder can build platforms.
type PlatformBuilder struct {
	engine       sim.Engine
	freq         sim.Freq
	registry     core.Registry
	architecture Architecture
}

// NewPlatformBuilder returns a builder for the highest tier at 1 GHz.
func NewPlatformBuilder() PlatformBuilder {
	return PlatformBuilder{
		freq:         1 * sim.GHz,
		architecture: ArchitectureIV,
	}
}

// WithEngine sets the engine that drives the core.
func (b PlatformBuilder) WithEngine(engine sim.Engine) PlatformBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b PlatformBuilder) WithFreq(freq sim.Freq) PlatformBuilder {
	b.freq = freq
	return b
}

// WithRegistry sets the registry quotations are resolved through.
func (b PlatformBuilder) WithRegistry(reg core.Registry) PlatformBuilder {
	b.registry = reg
	return b
}

// WithArchitecture sets the tier the platform enforces.
func (b PlatformBuilder) WithArchitecture(a Architecture) PlatformBuilder {
	if _, ok := surcharges[a]; !ok {
		panic(fmt.Sprintf("unknown architecture %d", int(a)))
	}
	b.architecture = a
	return b
}

// Build creates a platform.
func (b PlatformBuilder) Build(name string) *Platform {
	cb := core.NewBuilder().
		WithEngine(b.engine).
		WithFreq(b.freq)
	if b.registry != nil {
		cb = cb.WithRegistry(b.registry)
	}

	return &Platform{
		Name:         name,
		Architecture: b.architecture,
		Core:         cb.Build(name + ".Core"),
	}
}

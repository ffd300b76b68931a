package api

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/slang/config"
	"github.com/sarchlab/slang/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	registry     core.Registry
	architecture config.Architecture
	engine       sim.Engine
	freq         sim.Freq
	cacheSize    int
	maxSteps     uint64
}

// NewDriverBuilder returns a builder for the highest architecture with a
// 128-entry expansion cache.
func NewDriverBuilder() DriverBuilder {
	return DriverBuilder{
		architecture: config.ArchitectureIV,
		freq:         1 * sim.GHz,
		cacheSize:    128,
	}
}

// WithRegistry sets the registry functions are resolved through.
func (b DriverBuilder) WithRegistry(reg core.Registry) DriverBuilder {
	b.registry = reg
	return b
}

// WithArchitecture sets the architecture programs must fit.
func (b DriverBuilder) WithArchitecture(a config.Architecture) DriverBuilder {
	b.architecture = a
	return b
}

// WithEngine sets the engine debug sessions run on. Without one, every
// session gets its own serial engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of debug cores.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithCacheSize sets how many expanded programs are kept.
func (b DriverBuilder) WithCacheSize(n int) DriverBuilder {
	if n <= 0 {
		panic("cache size must be positive")
	}
	b.cacheSize = n
	return b
}

// WithMaxSteps bounds runs. Zero means no bound.
func (b DriverBuilder) WithMaxSteps(n uint64) DriverBuilder {
	b.maxSteps = n
	return b
}

// Build create a driver.
func (b DriverBuilder) Build() Driver {
	reg := b.registry
	if reg == nil {
		reg = &core.MapRegistry{}
	}

	cache, err := lru.New[cacheKey, *core.Program](b.cacheSize)
	if err != nil {
		panic(err)
	}

	return &driverImpl{
		registry:     reg,
		architecture: b.architecture,
		engine:       b.engine,
		freq:         b.freq,
		maxSteps:     b.maxSteps,
		expander:     core.NewExpander(reg),
		cache:        cache,
	}
}

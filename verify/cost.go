package verify

import (
	"github.com/sarchlab/slang/config"
	"github.com/sarchlab/slang/core"
)

// DegreeCost is the size and declared cost of one expansion of a program.
type DegreeCost struct {
	Degree       int
	Instructions int
	Cycles       uint64
}

// StaticCost sums the declared cycles of the program expanded to degree.
func StaticCost(p *core.Program, reg core.Registry, degree int) (uint64, error) {
	expanded, err := core.NewExpander(reg).ExpandToDegree(p, degree)
	if err != nil {
		return 0, err
	}

	return declaredCycles(expanded), nil
}

// FullCost is the static cost of the fully expanded program. It also
// returns the degree that takes.
func FullCost(p *core.Program, reg core.Registry) (uint64, int, error) {
	full, degree, err := core.NewExpander(reg).ExpandFully(p)
	if err != nil {
		return 0, 0, err
	}

	return declaredCycles(full), degree, nil
}

// CreditCost is what running the unexpanded program on arch is charged.
func CreditCost(p *core.Program, arch config.Architecture) uint64 {
	return declaredCycles(p) + arch.Surcharge()
}

// CostByDegree lists the cost of every expansion from degree 0 up to the
// fully expanded program.
func CostByDegree(p *core.Program, reg core.Registry) ([]DegreeCost, error) {
	expander := core.NewExpander(reg)
	if _, err := expander.Degree(p); err != nil {
		return nil, err
	}

	var costs []DegreeCost
	for degree := 0; ; degree++ {
		costs = append(costs, DegreeCost{
			Degree:       degree,
			Instructions: p.Len(),
			Cycles:       declaredCycles(p),
		})

		if p.IsBasic() {
			return costs, nil
		}

		next, err := expander.ExpandOnce(p)
		if err != nil {
			return nil, err
		}
		p = next
	}
}

func declaredCycles(p *core.Program) uint64 {
	var total uint64
	for _, inst := range p.Instructions {
		total += inst.Cycles()
	}
	return total
}

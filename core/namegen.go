package core

// nameAllocator hands out work variables and labels that no instruction of
// the scanned program uses. One allocator serves one expansion round.
type nameAllocator struct {
	lastWork  int
	lastLabel int
}

func newNameAllocator(p *Program) *nameAllocator {
	a := &nameAllocator{}

	for idx, inst := range p.Instructions {
		a.seeVariable(inst.Var)
		a.seeVariable(inst.Other)
		a.seeLabel(inst.Label)
		a.seeLabel(inst.Target)

		if inst.Opcode.IsQuotation() {
			vars, _ := validateArguments(inst.Args, p.Arguments(idx))
			for _, v := range vars {
				a.seeVariable(v)
			}
		}
	}

	return a
}

func (a *nameAllocator) seeVariable(v Variable) {
	if v.Kind == WorkVariable && v.Index > a.lastWork {
		a.lastWork = v.Index
	}
}

func (a *nameAllocator) seeLabel(l Label) {
	if l.Number() > a.lastLabel {
		a.lastLabel = l.Number()
	}
}

func (a *nameAllocator) freshWork() Variable {
	a.lastWork++
	return Work(a.lastWork)
}

func (a *nameAllocator) freshLabel() Label {
	a.lastLabel++
	return NumberedLabel(a.lastLabel)
}

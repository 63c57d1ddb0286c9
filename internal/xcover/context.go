package xcover

// SearchContext is the mutable per-worker search state. One is created per
// worker at the start of solving; additional ones are produced by Clone
// when a sibling subtree is handed off to a new task (§4.F). The owning
// Instance is never mutated and may be shared by any number of contexts.
type SearchContext struct {
	inst *Instance

	activeItems   *sparseSet   // primary items still needing coverage
	activeOptions []*sparseSet // activeOptions[item]: options still containing item

	chosenOptions []int // chosenOptions[0:level): stack of selected options
	childNum      []int // childNum[0:level): branch index taken at each level
	numChildren   []int // numChildren[0:level): branch count at each level

	level int

	Nodes     int64
	Solutions int64
}

// NewSearchContext builds the initial state for inst: every primary item is
// active, and activeOptions[item] holds every option that references item.
func NewSearchContext(inst *Instance) *SearchContext {
	ctx := &SearchContext{
		inst:          inst,
		activeItems:   newSparseSet(inst.NItems),
		activeOptions: make([]*sparseSet, inst.NItems),
		chosenOptions: make([]int, inst.NItems),
		childNum:      make([]int, inst.NItems),
		numChildren:   make([]int, inst.NItems),
	}
	for item := 0; item < inst.NPrimary; item++ {
		ctx.activeItems.add(item)
	}
	for item := 0; item < inst.NItems; item++ {
		ctx.activeOptions[item] = newSparseSet(inst.NOptions)
	}
	for option := 0; option < inst.NOptions; option++ {
		for _, item := range inst.Option(option) {
			ctx.activeOptions[item].add(option)
		}
	}
	return ctx
}

// Level reports the current search depth (number of options selected on
// the path from the root to this point).
func (ctx *SearchContext) Level() int { return ctx.level }

// ChosenOptions returns the options selected on the current path, in
// selection order. The returned slice aliases the context's storage and
// must not be retained past the next mutation.
func (ctx *SearchContext) ChosenOptions() []int { return ctx.chosenOptions[:ctx.level] }

package xcover

// cover removes item from future consideration: if item is primary it comes
// out of activeItems, and every option that still contains item is
// deactivated everywhere else it appears. uncover is the exact mirror and
// depends on deactivate/reactivate walking their option lists in opposite
// directions, per the sparse-set's LIFO undo contract.
func (ctx *SearchContext) cover(item int) {
	if ctx.inst.IsPrimary(item) {
		ctx.activeItems.remove(item)
	}
	active := ctx.activeOptions[item]
	for _, option := range active.members() {
		ctx.deactivate(option, item)
	}
}

// deactivate removes option from the active-options set of every item it
// contains other than coveredItem.
func (ctx *SearchContext) deactivate(option, coveredItem int) {
	for _, item := range ctx.inst.Option(option) {
		if item == coveredItem {
			continue
		}
		ctx.activeOptions[item].remove(option)
	}
}

// uncover restores exactly what the matching cover(item) removed, relying
// on the sparse-set's strict LIFO unremove to reconstruct the original
// permutation bit-for-bit.
func (ctx *SearchContext) uncover(item int) {
	active := ctx.activeOptions[item]
	members := active.members()
	for i := len(members) - 1; i >= 0; i-- {
		ctx.reactivate(members[i], item)
	}
	if ctx.inst.IsPrimary(item) {
		ctx.activeItems.unremove()
	}
}

// reactivate is the mirror of deactivate: it walks option's items in
// reverse of deactivate's forward order and unremoves option from each.
func (ctx *SearchContext) reactivate(option, uncoveredItem int) {
	items := ctx.inst.Option(option)
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if item == uncoveredItem {
			continue
		}
		ctx.activeOptions[item].unremove()
	}
}

// chooseOption pushes option as the level-th pick and covers every other
// item it contains. unchooseOption is the exact reverse.
func (ctx *SearchContext) chooseOption(option, chosenItem int) {
	ctx.chosenOptions[ctx.level] = option
	ctx.level++
	for _, item := range ctx.inst.Option(option) {
		if item == chosenItem {
			continue
		}
		ctx.cover(item)
	}
}

func (ctx *SearchContext) unchooseOption(option, chosenItem int) {
	items := ctx.inst.Option(option)
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if item == chosenItem {
			continue
		}
		ctx.uncover(item)
	}
	ctx.level--
}

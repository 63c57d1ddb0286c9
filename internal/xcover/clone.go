package xcover

// Clone produces an independent SearchContext identical to ctx: every
// sparse-set is copied in full (capacity and all of p/q, not just the
// active prefix, since the removed suffix carries LIFO-restore state the
// clone's own subtree still depends on), plus the stacks and counters.
// Continuing the search from the clone explores exactly the same subtree
// continuing from ctx would have.
func (ctx *SearchContext) Clone() *SearchContext {
	clone := &SearchContext{
		inst:          ctx.inst,
		activeItems:   ctx.activeItems.clone(),
		activeOptions: make([]*sparseSet, len(ctx.activeOptions)),
		chosenOptions: append([]int(nil), ctx.chosenOptions...),
		childNum:      append([]int(nil), ctx.childNum...),
		numChildren:   append([]int(nil), ctx.numChildren...),
		level:         ctx.level,
		Nodes:         ctx.Nodes,
		Solutions:     ctx.Solutions,
	}
	for i, s := range ctx.activeOptions {
		clone.activeOptions[i] = s.clone()
	}
	return clone
}

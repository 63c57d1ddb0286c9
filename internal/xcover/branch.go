package xcover

// chooseNextItem implements MRV branching: the active item with the fewest
// remaining options, ties broken by encounter order in activeItems' own
// iteration order (i.e. smallest position in its p array) — the scan order
// below fixes the tie deterministically by using a strict "<" comparison,
// so the first-seen minimum wins.
func (ctx *SearchContext) chooseNextItem() int {
	best := -1
	bestOptions := int(^uint(0) >> 1) // max int
	for _, item := range ctx.activeItems.members() {
		k := ctx.activeOptions[item].len()
		if k < bestOptions {
			best = item
			bestOptions = k
		}
	}
	return best
}

// Visitor receives each solution as it is found. level is the depth at
// which it was found (== number of options chosen), nodes is the local
// node counter at that point, and options is the chosen-option stack
// (valid only for the duration of the call — copy it to retain it).
type Visitor func(ctx *SearchContext, level int, nodes int64, options []int)

// Reporter is invoked when the local node counter hits the next progress
// watermark (§6: "Explored <nodes> nodes..."). It receives the branch
// bookkeeping needed to render the per-level token trailer.
type Reporter func(ctx *SearchContext, nodes, solutions int64, childNum, numChildren []int, level int)

// SolveConfig bundles the read-only knobs a search needs, kept separate
// from Instance per the "pure over its inputs" design (spec.md §9):
// report interval, max solutions, and the optional visitor/reporter hooks.
// Each context carries its own "next report" watermark rather than sharing
// one process-wide counter.
type SolveConfig struct {
	ReportEvery  int64 // 0 disables progress reporting
	MaxSolutions int64 // soft-stop once a context's local solutions reach this
	Visit        Visitor
	Report       Reporter
}

// solveState is per-context mutable bookkeeping that must NOT be shared
// across a clone, unlike SolveConfig which is shared read-only.
type solveState struct {
	nextReport int64
}

// Solve runs the sequential DFS from ctx's current state, honoring cfg's
// progress/visit hooks and soft stop. It never spawns tasks; spawned tasks
// run Engine.solve in parallel.go, which follows the same steps (§4.E).
func Solve(ctx *SearchContext, cfg SolveConfig) {
	st := &solveState{nextReport: cfg.ReportEvery}
	solve(ctx, cfg, st)
}

func solve(ctx *SearchContext, cfg SolveConfig, st *solveState) {
	ctx.Nodes++
	if cfg.ReportEvery > 0 && ctx.Nodes == st.nextReport {
		if cfg.Report != nil {
			cfg.Report(ctx, ctx.Nodes, ctx.Solutions, ctx.childNum[:ctx.level], ctx.numChildren[:ctx.level], ctx.level)
		}
		st.nextReport += cfg.ReportEvery
	}

	if ctx.activeItems.isEmpty() {
		ctx.Solutions++
		if cfg.Visit != nil {
			cfg.Visit(ctx, ctx.level, ctx.Nodes, ctx.ChosenOptions())
		}
		return
	}

	item := ctx.chooseNextItem()
	activeOptions := ctx.activeOptions[item]
	if activeOptions.isEmpty() {
		return // dead end: chosen item cannot be covered
	}

	ctx.cover(item)
	numChildren := activeOptions.len()
	ctx.numChildren[ctx.level] = numChildren
	members := activeOptions.members()
	for k := 0; k < numChildren; k++ {
		option := members[k]
		ctx.childNum[ctx.level] = k
		ctx.chooseOption(option, item)
		solve(ctx, cfg, st)
		if cfg.MaxSolutions > 0 && ctx.Solutions >= cfg.MaxSolutions {
			// Soft-stop: abandon this context without unwinding the
			// remaining choose/cover pairs. The context is about to be
			// discarded by the caller (Solve's caller owns its lifetime),
			// so restoring it would be wasted work. Matches the original
			// engine's stop-after behavior (see SPEC_FULL.md §9.5).
			return
		}
		ctx.unchooseOption(option, item)
	}
	ctx.uncover(item)
}

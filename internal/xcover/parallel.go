package xcover

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultTaskBudget is the process-wide cap on dynamically spawned
// subtrees (spec.md §4.G(ii)). Once spawned_tasks reaches it, no further
// tasks are ever spawned anywhere in the process — the remainder of the
// tree is explored serially within whichever task discovered it.
const DefaultTaskBudget = 1000

// Engine drives the intra-process half of the parallel search: a shared,
// monotonically-increasing task-spawn counter, a shared solution
// accumulator, and the errgroup used as the "wait for all tasks" barrier
// (spec.md §5). Every Engine is single-use: construct one per RunLocal call.
type Engine struct {
	cfg    SolveConfig
	budget int64

	spawned     atomic.Int64 // process-wide, atomically incremented, never decremented
	accumulated atomic.Int64 // sum of every completed subtree's local solution count

	group errgroup.Group
}

// NewEngine builds an Engine with the given budget (0 selects
// DefaultTaskBudget).
func NewEngine(cfg SolveConfig, budget int64) *Engine {
	if budget <= 0 {
		budget = DefaultTaskBudget
	}
	return &Engine{cfg: cfg, budget: budget}
}

// Accumulated returns the running total of solutions contributed by every
// subtree that has completed so far.
func (eng *Engine) Accumulated() int64 { return eng.accumulated.Load() }

func newSolveState(ctx *SearchContext, cfg SolveConfig) *solveState {
	if cfg.ReportEvery <= 0 {
		return &solveState{}
	}
	// Relative to the context's own node count, per spec.md §9: "next
	// report watermark should be a per-context counter, not shared" — a
	// cloned context inherits a large Nodes value, so basing the first
	// watermark on cfg.ReportEvery alone could be unreachable forever.
	return &solveState{nextReport: ctx.Nodes + cfg.ReportEvery}
}

// RunRootStride explores only the root-level branches k satisfying
// k % step == offset (spec.md §4.G(i)); this stride restriction is applied
// only at this, the outermost recursive call. Every node beneath the root
// goes through solve, which may additionally spawn bounded dynamic tasks
// (spec.md §4.G(ii)). The context's own Solutions/Nodes end up reflecting
// only this worker's serial share, folded into eng.accumulated before
// this call returns; the full total is eng.Accumulated() once RunLocal's
// single eng.group.Wait() call returns.
func (eng *Engine) RunRootStride(ctx *SearchContext, offset, step int) {
	st := newSolveState(ctx, eng.cfg)
	ctx.Nodes++
	if eng.cfg.ReportEvery > 0 && ctx.Nodes == st.nextReport {
		eng.report(ctx, st)
	}

	if ctx.activeItems.isEmpty() {
		// Degenerate instance with no primary items: exactly one solution,
		// the empty selection (spec.md §8). Counted once globally, not
		// once per stride participant, to preserve the count-invariance
		// property spec.md §8.4 requires across (P,T) configurations —
		// see DESIGN.md for why this departs from the original engine.
		if offset == 0 {
			ctx.Solutions++
			if eng.cfg.Visit != nil {
				eng.cfg.Visit(ctx, 0, ctx.Nodes, nil)
			}
		}
		eng.accumulated.Add(ctx.Solutions)
		return
	}

	item := ctx.chooseNextItem()
	activeOptions := ctx.activeOptions[item]
	if activeOptions.isEmpty() {
		eng.accumulated.Add(ctx.Solutions)
		return
	}

	ctx.cover(item)
	numChildren := activeOptions.len()
	ctx.numChildren[0] = numChildren
	members := activeOptions.members()
	for k := offset; k < numChildren; k += step {
		option := members[k]
		ctx.childNum[0] = k
		ctx.chooseOption(option, item)
		eng.solve(ctx, st)
		if eng.cfg.MaxSolutions > 0 && ctx.Solutions >= eng.cfg.MaxSolutions {
			eng.accumulated.Add(ctx.Solutions)
			return
		}
		ctx.unchooseOption(option, item)
	}
	ctx.uncover(item)
	eng.accumulated.Add(ctx.Solutions)
}

func (eng *Engine) report(ctx *SearchContext, st *solveState) {
	if eng.cfg.Report != nil {
		eng.cfg.Report(ctx, ctx.Nodes, ctx.Solutions, ctx.childNum[:ctx.level], ctx.numChildren[:ctx.level], ctx.level)
	}
	st.nextReport += eng.cfg.ReportEvery
}

// solve is the budgeted DFS step: identical to the plain Solve in
// branch.go, except that at each child branch it first consults the
// process-wide task counter (spec.md §4.G(ii)). Under budget, the branch
// becomes an independent task over a cloned context and the parent moves
// on to the next child without undoing (the clone, not the parent, now
// owns that subtree). Over budget, the branch runs inline exactly as the
// plain serial engine would.
func (eng *Engine) solve(ctx *SearchContext, st *solveState) {
	ctx.Nodes++
	if eng.cfg.ReportEvery > 0 && ctx.Nodes == st.nextReport {
		eng.report(ctx, st)
	}

	if ctx.activeItems.isEmpty() {
		ctx.Solutions++
		if eng.cfg.Visit != nil {
			eng.cfg.Visit(ctx, ctx.level, ctx.Nodes, ctx.ChosenOptions())
		}
		return
	}

	item := ctx.chooseNextItem()
	activeOptions := ctx.activeOptions[item]
	if activeOptions.isEmpty() {
		return
	}

	ctx.cover(item)
	numChildren := activeOptions.len()
	ctx.numChildren[ctx.level] = numChildren
	members := activeOptions.members()
	for k := 0; k < numChildren; k++ {
		option := members[k]

		if eng.spawned.Add(1) <= eng.budget {
			clone := ctx.Clone()
			clone.Solutions = 0 // the parent's solutions are counted by the parent
			clone.childNum[clone.level] = k
			clone.chooseOption(option, item)
			childState := newSolveState(clone, eng.cfg)
			eng.group.Go(func() error {
				eng.solve(clone, childState)
				eng.accumulated.Add(clone.Solutions)
				return nil
			})
			continue // parent keeps its own state; the clone owns this subtree now
		}

		ctx.childNum[ctx.level] = k
		ctx.chooseOption(option, item)
		eng.solve(ctx, st)
		if eng.cfg.MaxSolutions > 0 && ctx.Solutions >= eng.cfg.MaxSolutions {
			// See branch.go's Solve: abandon without unwinding, the
			// context belongs to whichever task discovered it and is
			// about to be retired.
			return
		}
		ctx.unchooseOption(option, item)
	}
	ctx.uncover(item)
}

// RunLocal fans out workers goroutines over ctx's root, each exploring a
// disjoint stride of root-level branches (spec.md §4.G(i)), sharing one
// Engine's task budget and accumulator for the dynamic spawning of
// sub-branches (spec.md §4.G(ii)). rank/size identify this process among
// size peer processes; workers defaults to 1 if <= 0. It returns this
// process's local solution total — callers combine it across processes
// via internal/cluster.
func RunLocal(ctx *SearchContext, cfg SolveConfig, workers int, rank, size int, budget int64) int64 {
	if workers <= 0 {
		workers = 1
	}
	if size <= 0 {
		size = 1
	}
	eng := NewEngine(cfg, budget)
	step := workers * size

	var wg errgroup.Group
	for t := 0; t < workers; t++ {
		offset := rank*workers + t
		worker := ctx.Clone()
		wg.Go(func() error {
			eng.RunRootStride(worker, offset, step)
			return nil
		})
	}
	_ = wg.Wait()

	// Only one Wait is ever issued against eng.group, and only after every
	// root-stride goroutine has finished: any eng.group.Go still issued
	// after that comes from a task the group is already counting, so the
	// counter is never zero when it happens. sync.WaitGroup requires Add to
	// happen-before any Wait that could observe a zero counter, and a second concurrent
	// Wait here — one per worker, as a prior version of this function had
	// — would race that contract and can trip the runtime's "WaitGroup
	// misuse: Add called concurrently with Wait" fatal panic.
	eng.group.Wait()
	return eng.Accumulated()
}

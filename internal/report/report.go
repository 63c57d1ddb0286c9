// Package report renders the three pieces of externally-observable text
// the search engine's driver emits: the progress line, the solution line,
// and the final summary line (spec.md §6). It is a thin I/O layer —
// formatting only, no search logic — kept separate from internal/xcover so
// the engine itself stays pure over its inputs.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"xcover/internal/xcover"
)

const digits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// maxTokens bounds the per-level branch trailer on the progress line to
// spec.md §6's "up to 44 two-character tokens" — a deliberate, documented
// deviation from the original C's off-by-one loop bound (SPEC_FULL.md §9.1).
const maxTokens = 44

func digit(n int) byte {
	if n >= 0 && n < len(digits) {
		return digits[n]
	}
	return '*'
}

// Progress writes the "Explored N nodes..." line plus its per-level branch
// trailer: one two-character token per level with more than one child.
func Progress(w io.Writer, nodes, solutions int64, elapsed time.Duration, childNum, numChildren []int) {
	fmt.Fprintf(w, "Explored %d nodes, found %d solutions, elapsed %.1fs.", nodes, solutions, elapsed.Seconds())
	emitted := 0
	for k := 0; k < len(childNum) && emitted < maxTokens; k++ {
		m := numChildren[k]
		if m == 1 {
			continue
		}
		n := childNum[k]
		fmt.Fprintf(w, " %c%c", digit(n), digit(m))
		emitted++
	}
	fmt.Fprintln(w)
}

// Solution writes "Found solution at level L after N nodes" followed by
// the chosen options, named by item.
func Solution(w io.Writer, inst *xcover.Instance, level int, nodes int64, options []int) {
	fmt.Fprintf(w, "Found solution at level %d after %d nodes\n", level, nodes)
	for _, option := range options {
		names := make([]string, 0, 4)
		for _, item := range inst.Option(option) {
			names = append(names, inst.Name(item))
		}
		fmt.Fprintf(w, "+ %s\n", strings.Join(names, " "))
	}
}

// Done writes the final "DONE. Found <total> solutions in <t>s" line,
// emitted once, on rank 0, after the distributed reduction completes.
func Done(w io.Writer, total int64, elapsed time.Duration) {
	fmt.Fprintf(w, "DONE. Found %d solutions in %.3fs\n", total, elapsed.Seconds())
}

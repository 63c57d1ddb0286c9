package xcover

import "fmt"

// Instance is an immutable exact-cover problem: items split into a primary
// prefix [0, NPrimary) that must be covered exactly once and a secondary
// suffix [NPrimary, NItems) that may be covered at most once, plus a
// CSR-encoded option list. It never mutates after construction and is
// shared read-only across every worker's SearchContext.
type Instance struct {
	NItems    int
	NPrimary  int
	NOptions  int
	ItemName  []string // len == NItems; may be empty if names were not supplied
	options   []int    // flat CSR item indices
	ptr       []int    // len == NOptions+1
}

// NewInstance validates and builds an Instance from a CSR option layout.
// ptr must be strictly non-decreasing with ptr[0]==0 and
// ptr[len(ptr)-1]==len(options); every option must contain at least one
// primary item and no duplicate item within itself.
func NewInstance(nItems, nPrimary int, itemName []string, options []int, ptr []int) (*Instance, error) {
	nOptions := len(ptr) - 1
	if nOptions < 0 {
		return nil, fmt.Errorf("xcover: ptr must have at least one element, got %d", len(ptr))
	}
	if ptr[0] != 0 {
		return nil, fmt.Errorf("xcover: ptr[0] must be 0, got %d", ptr[0])
	}
	if ptr[nOptions] != len(options) {
		return nil, fmt.Errorf("xcover: ptr[%d]=%d must equal len(options)=%d", nOptions, ptr[nOptions], len(options))
	}
	for k := 0; k < nOptions; k++ {
		if ptr[k] > ptr[k+1] {
			return nil, fmt.Errorf("xcover: ptr must be non-decreasing, ptr[%d]=%d > ptr[%d]=%d", k, ptr[k], k+1, ptr[k+1])
		}
	}
	if nPrimary < 0 || nPrimary > nItems {
		return nil, fmt.Errorf("xcover: n_primary=%d out of range [0,%d]", nPrimary, nItems)
	}
	if itemName != nil && len(itemName) != nItems {
		return nil, fmt.Errorf("xcover: item_name has %d entries, want %d", len(itemName), nItems)
	}

	for k := 0; k < nOptions; k++ {
		seen := make(map[int]bool, ptr[k+1]-ptr[k])
		hasPrimary := false
		for p := ptr[k]; p < ptr[k+1]; p++ {
			item := options[p]
			if item < 0 || item >= nItems {
				return nil, fmt.Errorf("xcover: option %d references out-of-range item %d", k, item)
			}
			if seen[item] {
				return nil, fmt.Errorf("xcover: option %d contains duplicate item %d", k, item)
			}
			seen[item] = true
			if item < nPrimary {
				hasPrimary = true
			}
		}
		if !hasPrimary {
			return nil, fmt.Errorf("xcover: option %d has no primary item", k)
		}
	}

	inst := &Instance{
		NItems:   nItems,
		NPrimary: nPrimary,
		NOptions: nOptions,
		ItemName: itemName,
		options:  options,
		ptr:      ptr,
	}
	return inst, nil
}

// IsPrimary reports whether item must be covered exactly once.
func (inst *Instance) IsPrimary(item int) bool { return item < inst.NPrimary }

// Option returns the items of option k, in CSR storage order. The returned
// slice aliases the instance's storage and must not be mutated.
func (inst *Instance) Option(k int) []int { return inst.options[inst.ptr[k]:inst.ptr[k+1]] }

// Name returns the printable name for item, falling back to its index.
func (inst *Instance) Name(item int) string {
	if item >= 0 && item < len(inst.ItemName) && inst.ItemName[item] != "" {
		return inst.ItemName[item]
	}
	return fmt.Sprintf("#%d", item)
}

// SPDX-Licence-Identifier: MIT

package seccompdb

import "sort"

// normalise rewrites a raw predicate list into the canonical rule
// chain described in spec.md §4.1: operators rewritten to the stored
// basis with negation folded into the action-branch bit, predicates
// sorted ascending by argument index, and linked into a single chain
// of Nodes where only the deepest node carries the action. An empty
// input normalises to a nil chain (the unconditional rule).
//
// normalise validates chain length and argument-index range and
// uniqueness before building any node; an unknown raw operator is
// detected while the chain is being built, and the partial chain is
// discarded. On any error it returns (nil, err) and the database is
// untouched, satisfying the "no mutation on failure" requirement of
// spec.md §4.2/§4.6.
func normalise(action Action, preds []RawPredicate) (*Node, error) {
	if len(preds) > MaxArgs {
		return nil, invalidf("chain length %d exceeds MaxArgs (%d)", len(preds), MaxArgs)
	}
	if len(preds) == 0 {
		return nil, nil
	}

	seen := make(map[uint32]bool, len(preds))
	sorted := append([]RawPredicate(nil), preds...)
	for _, p := range sorted {
		if p.ArgIndex >= MaxArgs {
			return nil, invalidf("argument index %d out of range", p.ArgIndex)
		}
		if seen[p.ArgIndex] {
			return nil, invalidf("duplicate argument index %d", p.ArgIndex)
		}
		seen[p.ArgIndex] = true
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ArgIndex < sorted[j].ArgIndex
	})

	var head, tail *Node
	for i, p := range sorted {
		basis, ok := normBasis[p.Op]
		if !ok {
			return nil, invalidf("unknown raw operator %v", p.Op)
		}
		n := &Node{
			ArgIndex:     p.ArgIndex,
			Op:           basis.op,
			Datum:        p.Datum,
			ActionBranch: basis.branch,
			RefCount:     1,
		}
		if i == len(sorted)-1 {
			n.Action = action
		}
		if tail != nil {
			tail.setBranch(tail.ActionBranch, []*Node{n})
		} else {
			head = n
		}
		tail = n
	}
	return head, nil
}

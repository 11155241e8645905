// SPDX-Licence-Identifier: MIT

package seccompdb

// PredicateView is the pre-order traversal contract spec.md §6
// promises a downstream code generator: an argument index, the
// stored operator, the datum, the action-branch bit, and — only on a
// leaf — the action. True and False hold the level lists reached on
// each branch, in the same (ArgIndex, Op) order the tree stores them
// in, so "sibling level lists yield alternatives at the same
// (arg-index, op)" holds for a consumer walking this view exactly as
// it holds for the tree itself.
type PredicateView struct {
	ArgIndex     uint32
	Op           Op
	Datum        uint64
	ActionBranch bool
	Action       Action // ActionNone unless this is a leaf

	True  []*PredicateView
	False []*PredicateView
}

// EntryView is one syscall's contribution to a traversal: its number,
// either a stored unconditional action or the pre-order root level of
// its decision tree.
type EntryView struct {
	Number        uint64
	Unconditional Action // ActionNone unless Root is empty
	Root          []*PredicateView
}

func viewLevel(level []*Node) []*PredicateView {
	if len(level) == 0 {
		return nil
	}
	out := make([]*PredicateView, len(level))
	for i, n := range level {
		out[i] = &PredicateView{
			ArgIndex:     n.ArgIndex,
			Op:           n.Op,
			Datum:        n.Datum,
			ActionBranch: n.ActionBranch,
			Action:       n.Action,
			True:         viewLevel(n.True),
			False:        viewLevel(n.False),
		}
	}
	return out
}

// Walk returns a traversal of every syscall entry in ascending order,
// each with its tree (if any) rendered pre-order per PredicateView.
// This is the contract a kernel-program code generator would consume;
// Walk builds and returns the view, it does not itself emit any
// generated program.
func (db *Database) Walk() []EntryView {
	out := make([]EntryView, len(db.Entries))
	for i, e := range db.Entries {
		out[i] = EntryView{
			Number:        e.Number,
			Unconditional: e.Unconditional,
			Root:          viewLevel(e.Root),
		}
	}
	return out
}

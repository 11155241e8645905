// SPDX-Licence-Identifier: MIT

package seccompdb

// SyscallEntry pairs a syscall number with the root level of its
// decision tree. Root is empty when the syscall is filtered
// unconditionally — either because the most recently merged rule for
// it carried no predicates (spec.md §4.1's "rule Z"), or because a
// later empty-chain rule collapsed a previously non-empty tree
// (case C). In both situations Unconditional holds the action that
// applies. Root can also become empty when case D.2.a removes the last
// node of the root level; Unconditional then keeps its previous value,
// which is ActionNone for an entry whose first rule carried predicates.
// Unconditional is ActionNone on every entry that has a tree.
type SyscallEntry struct {
	Number        uint64
	Root          []*Node
	Unconditional Action
}

// HasTree reports whether this entry currently has a non-empty
// decision tree.
func (e *SyscallEntry) HasTree() bool {
	return len(e.Root) > 0
}

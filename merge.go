// SPDX-Licence-Identifier: MIT

package seccompdb

// mergeChain folds the chain rooted at c into the level list pointed
// to by levelPtr, implementing case D of spec.md §4.4 (case A/B/C are
// handled by Database.Add before this is ever called). It walks an
// explicit cursor pair — the current level and the current chain node
// — rather than recursing, per the Design Notes' preference for an
// explicit work stack over recursive tree walks.
//
// Every exit path either grafts the unconsumed remainder of c's chain
// into the tree (transferring ownership of that remainder to the
// level it was grafted into) or discards c's remainder outright;
// because Go manages node lifetime with the garbage collector, "free"
// is simply "stop referencing" — there is no separate cleanup pass to
// run afterwards, and no risk of the double-free the Design Notes warn
// a manually managed implementation must guard against.
func mergeChain(levelPtr *[]*Node, c *Node) error {
	for {
		idx, ec := findSlot(*levelPtr, c)
		if ec == nil {
			insertInLevel(levelPtr, idx, c)
			return nil
		}
		ec.RefCount++

		cLeaf, ecLeaf := c.isLeaf(), ec.isLeaf()
		switch {
		case ecLeaf && cLeaf:
			// Case D.2.a: both leaves.
			if ec.ActionBranch == c.ActionBranch {
				// ec already covers exactly this case; discard c.
				return nil
			}
			// The two leaves disagree on which branch the action
			// applies to, so the predicate fires the action
			// unconditionally: remove ec from its level entirely.
			removeFromLevel(levelPtr, idx)
			return nil

		case ecLeaf:
			// Case D.2.b: ec is a leaf, c is internal.
			cCont, cContBranch := c.continuation()
			if cCont == nil {
				return internalf("chain node has no continuation on its own action branch")
			}
			if ec.ActionBranch == cContBranch {
				// c continues on ec's action-branch side: ec is
				// already shorter (more inclusive) there.
				return nil
			}
			// c continues on ec's non-action-branch side. If that
			// side is still empty, graft directly. If a subtree is
			// already there (an earlier rule shortened differently
			// through this same leaf), merge into it instead of
			// overwriting it outright — the literal source
			// reassigns the pointer unconditionally here, which
			// would silently drop whatever an earlier merge had
			// already attached; re-derived against I4/I5 instead of
			// copied, per the Design Notes' warning about this
			// merger's trickier corners.
			if existing := ec.branch(cContBranch); existing == nil {
				ec.setBranch(cContBranch, []*Node{cCont})
				return nil
			}
			levelPtr = ptrToBranch(ec, cContBranch)
			c = cCont
			continue

		case cLeaf:
			// Case D.2.c: c is a leaf, ec is internal. The new rule
			// is the shorter, more inclusive one: promote ec to a
			// leaf with the new action and branch, dropping whatever
			// subtree now sits on the (new) action-branch side.
			ec.Action = c.Action
			ec.ActionBranch = c.ActionBranch
			ec.setBranch(ec.ActionBranch, nil)
			return nil

		default:
			// Case D.2.d: both internal.
			cCont, cContBranch := c.continuation()
			if cCont == nil {
				return internalf("chain node has no continuation on its own action branch")
			}
			existing := ec.branch(cContBranch)
			if existing == nil {
				ec.setBranch(cContBranch, []*Node{cCont})
				return nil
			}
			// Descend into both sides and repeat.
			levelPtr = ptrToBranch(ec, cContBranch)
			c = cCont
		}
	}
}

// ptrToBranch returns the address of n's True or False field, so the
// caller can keep mutating the level list in place on the next loop
// iteration.
func ptrToBranch(n *Node, trueSide bool) *[]*Node {
	if trueSide {
		return &n.True
	}
	return &n.False
}

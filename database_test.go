// SPDX-Licence-Identifier: MIT

package seccompdb

import "testing"

func TestAddUnconditionalOnNewSyscall(t *testing.T) {
	db := New(ActionDeny)
	if err := db.Add(ActionAllow, 42, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry := db.Find(42)
	if entry == nil {
		t.Fatalf("expected entry for syscall 42")
	}
	if entry.HasTree() {
		t.Fatalf("expected no tree root, got %+v", entry.Root)
	}
	if entry.Unconditional != ActionAllow {
		t.Fatalf("expected unconditional ALLOW, got %v", entry.Unconditional)
	}
	if db.DefaultAction != ActionDeny {
		t.Fatalf("default action must be untouched")
	}
}

func TestAddUnconditionalCollapsesExistingTree(t *testing.T) {
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 42, []RawPredicate{{ArgIndex: 0, Op: RawEQ, Datum: 7}}))
	must(t, db.Add(ActionAllow, 42, nil))

	entry := db.Find(42)
	if entry.HasTree() {
		t.Fatalf("expected tree to be collapsed, got %+v", entry.Root)
	}
	if entry.Unconditional != ActionAllow {
		t.Fatalf("expected unconditional ALLOW, got %v", entry.Unconditional)
	}
}

func TestAddChainIsSortedAndShaped(t *testing.T) {
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 42, []RawPredicate{
		{ArgIndex: 0, Op: RawEQ, Datum: 7},
		{ArgIndex: 1, Op: RawNE, Datum: 0},
	}))

	entry := db.Find(42)
	if len(entry.Root) != 1 {
		t.Fatalf("expected a single root node, got %d", len(entry.Root))
	}
	root := entry.Root[0]
	if root.ArgIndex != 0 || root.Op != OpEQ || root.Datum != 7 || !root.ActionBranch {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.True) != 1 {
		t.Fatalf("expected one child on the true branch, got %d", len(root.True))
	}
	leaf := root.True[0]
	if leaf.ArgIndex != 1 || leaf.Op != OpEQ || leaf.ActionBranch {
		t.Fatalf("unexpected leaf: %+v", leaf)
	}
	if leaf.Action != ActionAllow {
		t.Fatalf("expected leaf action ALLOW, got %v", leaf.Action)
	}
}

func TestAddShortenedRuleFromRawLT(t *testing.T) {
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 10, []RawPredicate{{ArgIndex: 0, Op: RawLT, Datum: 5}}))

	entry := db.Find(10)
	if len(entry.Root) != 1 {
		t.Fatalf("expected a single root node, got %d", len(entry.Root))
	}
	leaf := entry.Root[0]
	if leaf.Op != OpGE || leaf.Datum != 5 || leaf.ActionBranch {
		t.Fatalf("unexpected leaf: %+v", leaf)
	}
	if leaf.Action != ActionAllow {
		t.Fatalf("expected ALLOW, got %v", leaf.Action)
	}
}

func TestAddSamePredicateOppositeBranchesCollapsesLevel(t *testing.T) {
	// RawEQ and RawNE on the same arg/datum normalise to the same
	// stored (Op, Datum) but opposite ActionBranch: arg0==3 fires
	// Allow on the true side, arg0!=3 fires Deny on the false side.
	// Once both sides of a single predicate carry an action, the
	// predicate itself stops discriminating anything, so the merger
	// drops it from the level entirely.
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 10, []RawPredicate{{ArgIndex: 0, Op: RawEQ, Datum: 3}}))
	must(t, db.Add(ActionDeny, 10, []RawPredicate{{ArgIndex: 0, Op: RawNE, Datum: 3}}))

	entry := db.Find(10)
	if entry.HasTree() {
		t.Fatalf("expected level to collapse to an empty tree, got %+v", entry.Root)
	}
}

func TestAddSameActionFlagLeafKeepsExistingAction(t *testing.T) {
	// Two leaves that land on the same ActionBranch (both RawEQ) are
	// treated as the same node; the existing leaf's action is kept
	// and the new rule's action is silently discarded, rather than
	// overwritten. This matches db_add_syscall's "rc=0 goto add_free"
	// path for matching action flags, which does not touch ec->action.
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 10, []RawPredicate{{ArgIndex: 0, Op: RawEQ, Datum: 3}}))
	must(t, db.Add(ActionKillProcess, 10, []RawPredicate{{ArgIndex: 0, Op: RawEQ, Datum: 3}}))

	entry := db.Find(10)
	if len(entry.Root) != 1 {
		t.Fatalf("expected a single root node, got %d", len(entry.Root))
	}
	leaf := entry.Root[0]
	if leaf.Action != ActionAllow {
		t.Fatalf("expected the original ALLOW action to survive, got %v", leaf.Action)
	}
}

func TestAddShorterRulePromotesExistingLeaf(t *testing.T) {
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 10, []RawPredicate{
		{ArgIndex: 0, Op: RawEQ, Datum: 3},
		{ArgIndex: 1, Op: RawEQ, Datum: 9},
	}))
	must(t, db.Add(ActionAllow, 10, []RawPredicate{{ArgIndex: 0, Op: RawEQ, Datum: 3}}))

	entry := db.Find(10)
	if len(entry.Root) != 1 {
		t.Fatalf("expected a single root node, got %d", len(entry.Root))
	}
	leaf := entry.Root[0]
	if leaf.Datum != 3 || !leaf.ActionBranch {
		t.Fatalf("unexpected leaf: %+v", leaf)
	}
	if leaf.Action != ActionAllow {
		t.Fatalf("expected ALLOW, got %v", leaf.Action)
	}
	if len(leaf.True) != 0 {
		t.Fatalf("expected the deeper subtree to be dropped, got %+v", leaf.True)
	}
}

func TestAddExistingUnconditionalDiscardsNewRule(t *testing.T) {
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 42, nil))
	must(t, db.Add(ActionKillProcess, 42, []RawPredicate{{ArgIndex: 0, Op: RawEQ, Datum: 1}}))

	entry := db.Find(42)
	if entry.HasTree() {
		t.Fatalf("expected the unconditional entry to remain untouched, got %+v", entry.Root)
	}
	if entry.Unconditional != ActionAllow {
		t.Fatalf("expected the original ALLOW to survive, got %v", entry.Unconditional)
	}
}

func TestAddNewSyscallOrdering(t *testing.T) {
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 10, nil))
	must(t, db.Add(ActionAllow, 5, nil))
	must(t, db.Add(ActionAllow, 20, nil))

	if len(db.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(db.Entries))
	}
	var nums []uint64
	for _, e := range db.Entries {
		nums = append(nums, e.Number)
	}
	want := []uint64{5, 10, 20}
	for i, w := range want {
		if nums[i] != w {
			t.Fatalf("expected ascending order %v, got %v", want, nums)
		}
	}
}

func TestAddInvalidRuleLeavesDatabaseUnchanged(t *testing.T) {
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 42, []RawPredicate{{ArgIndex: 0, Op: RawEQ, Datum: 1}}))
	before := db.NodeCount()

	err := db.Add(ActionAllow, 42, []RawPredicate{
		{ArgIndex: 0, Op: RawEQ, Datum: 2},
		{ArgIndex: 0, Op: RawNE, Datum: 3},
	})
	if err == nil {
		t.Fatalf("expected an error for a duplicate argument index")
	}
	if db.NodeCount() != before {
		t.Fatalf("database mutated on a failed Add: before=%d after=%d", before, db.NodeCount())
	}
}

func TestFindUnknownSyscall(t *testing.T) {
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 42, nil))
	if db.Find(41) != nil || db.Find(43) != nil {
		t.Fatalf("Find should only match an exact syscall number")
	}
}

func TestDestroyClearsDatabase(t *testing.T) {
	db := New(ActionDeny)
	must(t, db.Add(ActionAllow, 42, []RawPredicate{{ArgIndex: 0, Op: RawEQ, Datum: 1}}))
	db.Destroy()
	if len(db.Entries) != 0 || db.NodeCount() != 0 {
		t.Fatalf("expected an empty database after Destroy")
	}
	if db.DefaultAction != ActionDeny {
		t.Fatalf("Destroy must not change DefaultAction")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

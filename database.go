// SPDX-Licence-Identifier: MIT

package seccompdb

// Database is a filter database: a default action plus the ordered
// sequence of syscall entries it has accumulated. Entries is always
// kept sorted ascending by Number with no duplicates (I6).
//
// Database is not safe for concurrent use. Add and Destroy require
// exclusive access; Find only needs the caller to guarantee no
// concurrent mutator is running. Callers synchronise externally —
// Database itself carries no lock.
type Database struct {
	DefaultAction Action
	Entries       []*SyscallEntry

	// MaxNodes caps the total number of decision nodes the database
	// may hold across all entries. Zero means unlimited, matching a
	// freestanding allocator that never fails on its own. A non-zero
	// budget gives ErrNoMemory a concrete, testable trigger: Add
	// rejects a rule that would push the total over the budget before
	// touching the existing tree.
	MaxNodes int

	nodeCount int
}

// New creates an empty database with the given default action: the
// verdict applied to any syscall with no matching entry at all.
func New(defaultAction Action) *Database {
	return &Database{DefaultAction: defaultAction}
}

// NodeCount returns the total number of decision nodes currently held
// across every syscall entry's tree.
func (db *Database) NodeCount() int {
	return db.nodeCount
}

// Destroy releases every tree the database holds by dropping all
// syscall entries and resetting the node count; no tree is walked, as
// the garbage collector reclaims the detached nodes. After Destroy the
// database may be reused as if freshly constructed with New, except
// that DefaultAction and MaxNodes are preserved.
func (db *Database) Destroy() {
	db.Entries = nil
	db.nodeCount = 0
}

// Find returns the syscall entry for the given number, or nil if none
// has been added yet. It performs a linear scan of the ordered entry
// sequence, which is sufficient per spec.md §4.3; callers must treat
// the result as read-only.
func (db *Database) Find(syscall uint64) *SyscallEntry {
	for _, e := range db.Entries {
		if e.Number == syscall {
			return e
		}
		if e.Number > syscall {
			break
		}
	}
	return nil
}

// Add normalises the given action and predicate list into a rule
// chain for syscall, then merges it into the database, implementing
// cases A–D of spec.md §4.4. It returns ErrInvalid if the predicate
// list is malformed, ErrNoMemory if MaxNodes would be exceeded, or
// ErrInternal if the merger reaches a state the invariants say is
// unreachable. On any error the database is left exactly as it was.
func (db *Database) Add(action Action, syscall uint64, preds []RawPredicate) error {
	chain, err := normalise(action, preds)
	if err != nil {
		return err
	}
	if db.MaxNodes > 0 {
		needed := len(preds)
		if db.nodeCount+needed > db.MaxNodes {
			return ErrNoMemory
		}
	}

	idx, entry := db.findInsertionPoint(syscall)

	// Case A: brand-new syscall.
	if entry == nil {
		entry = &SyscallEntry{Number: syscall}
		if chain == nil {
			entry.Unconditional = action
		} else {
			entry.Root = []*Node{chain}
		}
		db.insertEntry(idx, entry)
		db.nodeCount += len(preds)
		return nil
	}

	// Case B: existing entry already fires unconditionally.
	if !entry.HasTree() {
		return nil
	}

	// Case C: new rule is unconditional; it subsumes everything.
	if chain == nil {
		before := countNodes(entry.Root)
		entry.Root = nil
		entry.Unconditional = action
		db.nodeCount -= before
		return nil
	}

	// Case D: both non-empty; walk and merge.
	before := countNodes(entry.Root)
	if err := mergeChain(&entry.Root, chain); err != nil {
		return err
	}
	after := countNodes(entry.Root)
	db.nodeCount += after - before
	return nil
}

// findInsertionPoint returns the existing entry for syscall and its
// index, or the index at which a new entry must be inserted to keep
// Entries sorted (with a nil entry) if none exists yet.
func (db *Database) findInsertionPoint(syscall uint64) (int, *SyscallEntry) {
	for i, e := range db.Entries {
		if e.Number == syscall {
			return i, e
		}
		if e.Number > syscall {
			return i, nil
		}
	}
	return len(db.Entries), nil
}

func (db *Database) insertEntry(idx int, e *SyscallEntry) {
	db.Entries = append(db.Entries, nil)
	copy(db.Entries[idx+1:], db.Entries[idx:])
	db.Entries[idx] = e
}

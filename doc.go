// SPDX-Licence-Identifier: MIT

// Package seccompdb implements an in-memory filter database for
// system-call policy. Callers submit rules of the form "if syscall N
// is invoked and an optional conjunction of per-argument predicates
// holds, take action A"; the database folds each rule into a compact
// per-syscall decision tree, preserving exact semantic equivalence
// with the sequence of rules submitted while eliminating redundant
// subtrees and preferring the most inclusive (shortest) rule when two
// rules cover overlapping argument space.
//
// The database does not evaluate syscalls, persist anything, resolve
// syscall names to numbers, or generate a kernel program from the
// resulting trees; those are the responsibility of collaborators
// outside this package. Database is not safe for concurrent mutation;
// callers must synchronise their own access.
package seccompdb

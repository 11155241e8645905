// SPDX-Licence-Identifier: MIT

package seccompdb

import (
	"errors"
	"fmt"
)

// The three error kinds spec.md §6/§7 names. Callers distinguish them
// with errors.Is; the wrapping constructors below keep a descriptive
// message without losing that identity.
var (
	// ErrInvalid reports a malformed rule: a duplicate argument
	// index, or a chain longer than MaxArgs. The database is
	// unchanged.
	ErrInvalid = errors.New("seccompdb: invalid rule")

	// ErrNoMemory reports that merging the rule would exceed the
	// database's node budget. No mutation has occurred.
	ErrNoMemory = errors.New("seccompdb: node budget exceeded")

	// ErrInternal reports that the merger reached a state the
	// invariants say is unreachable. Should never be observed; it
	// exists so a regression is reported rather than silently
	// miscompiling the policy.
	ErrInternal = errors.New("seccompdb: internal invariant violation")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

func internalf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInternal}, args...)...)
}

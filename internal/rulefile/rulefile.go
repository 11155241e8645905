// SPDX-Licence-Identifier: MIT

// Package rulefile defines a YAML document format for bulk-loading a
// policy into a seccompdb.Database. It is the ambient config layer
// the core package itself has no reason to know about, modeled the
// way flowd-org/flowd's internal/types.Config is loaded with
// gopkg.in/yaml.v3.
package rulefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lmarten/seccompdb"
)

// ArgRule is a single argument predicate as written in a rule file.
type ArgRule struct {
	Index uint32 `yaml:"index"`
	Op    string `yaml:"op"`
	Datum uint64 `yaml:"datum"`
}

// Rule is one policy rule: a syscall number, the action to take, and
// an optional conjunction of argument predicates.
type Rule struct {
	Syscall uint64    `yaml:"syscall"`
	Action  string    `yaml:"action"`
	Args    []ArgRule `yaml:"args,omitempty"`
}

// Document is the top-level shape of a rule file: a default action
// plus the ordered list of rules to apply on top of it.
type Document struct {
	DefaultAction string `yaml:"default_action"`
	Rules         []Rule `yaml:"rules"`
}

// Load reads and unmarshals a rule file from path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rulefile: read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("rulefile: parse %s: %w", path, err)
	}
	return &doc, nil
}

var rawOps = map[string]seccompdb.RawOp{
	"eq": seccompdb.RawEQ,
	"ne": seccompdb.RawNE,
	"lt": seccompdb.RawLT,
	"le": seccompdb.RawLE,
	"gt": seccompdb.RawGT,
	"ge": seccompdb.RawGE,
}

var actions = map[string]seccompdb.Action{
	"allow":        seccompdb.ActionAllow,
	"deny":         seccompdb.ActionDeny,
	"errno":        seccompdb.ActionErrno,
	"trace":        seccompdb.ActionTrace,
	"kill":         seccompdb.ActionKillProcess,
	"kill_thread":  seccompdb.ActionKillThread,
	"kill_process": seccompdb.ActionKillProcess,
	"trap":         seccompdb.ActionTrap,
	"log":          seccompdb.ActionLog,
	"user_notify":  seccompdb.ActionUserNotify,
}

func parseAction(s string) (seccompdb.Action, error) {
	a, ok := actions[s]
	if !ok {
		return seccompdb.ActionNone, fmt.Errorf("rulefile: unknown action %q", s)
	}
	return a, nil
}

func parseOp(s string) (seccompdb.RawOp, error) {
	op, ok := rawOps[s]
	if !ok {
		return 0, fmt.Errorf("rulefile: unknown operator %q", s)
	}
	return op, nil
}

// NewDatabase builds a fresh database from the document's default
// action, without applying any rules. Callers that want logging or a
// correlation ID around the apply step (as the CLI does) call this
// and Apply separately instead of going through a single helper.
func (d *Document) NewDatabase() (*seccompdb.Database, error) {
	def, err := parseAction(d.DefaultAction)
	if err != nil {
		return nil, err
	}
	return seccompdb.New(def), nil
}

// Apply feeds each rule through db.Add in file order, exactly the
// ambient string/constant boundary a production rule-loading API
// would sit behind (spec.md's core never sees raw strings).
func (d *Document) Apply(db *seccompdb.Database) error {
	for i, r := range d.Rules {
		action, err := parseAction(r.Action)
		if err != nil {
			return fmt.Errorf("rulefile: rule %d: %w", i, err)
		}
		preds := make([]seccompdb.RawPredicate, 0, len(r.Args))
		for _, a := range r.Args {
			op, err := parseOp(a.Op)
			if err != nil {
				return fmt.Errorf("rulefile: rule %d: %w", i, err)
			}
			preds = append(preds, seccompdb.RawPredicate{ArgIndex: a.Index, Op: op, Datum: a.Datum})
		}
		if err := db.Add(action, r.Syscall, preds); err != nil {
			return fmt.Errorf("rulefile: rule %d (syscall %d): %w", i, r.Syscall, err)
		}
	}
	return nil
}

// Build loads path and returns a fully populated database in one
// step, for callers (the CLI's load and dump subcommands) that
// don't need to observe the intermediate empty database.
func Build(path string) (*Document, *seccompdb.Database, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	db, err := doc.NewDatabase()
	if err != nil {
		return nil, nil, err
	}
	if err := doc.Apply(db); err != nil {
		return nil, nil, err
	}
	return doc, db, nil
}

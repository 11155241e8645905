// SPDX-Licence-Identifier: MIT

package rulefile

import (
	"testing"

	"github.com/lmarten/seccompdb"
)

func TestLoadParsesDocument(t *testing.T) {
	doc, err := Load("testdata/basic.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.DefaultAction != "deny" {
		t.Fatalf("expected default_action deny, got %q", doc.DefaultAction)
	}
	if len(doc.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(doc.Rules))
	}
	if doc.Rules[0].Syscall != 257 || doc.Rules[0].Action != "allow" {
		t.Fatalf("unexpected first rule: %+v", doc.Rules[0])
	}
	if len(doc.Rules[0].Args) != 1 || doc.Rules[0].Args[0].Datum != 0 {
		t.Fatalf("unexpected args on first rule: %+v", doc.Rules[0].Args)
	}
}

func TestBuildAppliesRulesInOrder(t *testing.T) {
	_, db, err := Build("testdata/basic.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.DefaultAction != seccompdb.ActionDeny {
		t.Fatalf("expected default action deny, got %v", db.DefaultAction)
	}
	if entry := db.Find(0); entry == nil || entry.Unconditional != seccompdb.ActionAllow {
		t.Fatalf("expected syscall 0 to be unconditionally allowed")
	}
	if entry := db.Find(60); entry == nil || entry.Unconditional != seccompdb.ActionKillProcess {
		t.Fatalf("expected syscall 60 to kill the process")
	}
	entry := db.Find(257)
	if entry == nil || !entry.HasTree() {
		t.Fatalf("expected syscall 257 to carry a conditional tree")
	}
}

func TestApplyRejectsUnknownAction(t *testing.T) {
	doc := &Document{DefaultAction: "deny", Rules: []Rule{{Syscall: 1, Action: "nonsense"}}}
	db := seccompdb.New(seccompdb.ActionDeny)
	if err := doc.Apply(db); err == nil {
		t.Fatalf("expected an error for an unknown action")
	}
}

func TestApplyRejectsUnknownOperator(t *testing.T) {
	doc := &Document{DefaultAction: "deny", Rules: []Rule{{
		Syscall: 1,
		Action:  "allow",
		Args:    []ArgRule{{Index: 0, Op: "nope", Datum: 0}},
	}}}
	db := seccompdb.New(seccompdb.ActionDeny)
	if err := doc.Apply(db); err == nil {
		t.Fatalf("expected an error for an unknown operator")
	}
}

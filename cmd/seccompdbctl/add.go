// SPDX-Licence-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lmarten/seccompdb"
)

func newAddCmd() *cobra.Command {
	var (
		syscallNum uint64
		actionStr  string
		defaultStr string
		argFlags   []string
	)
	c := &cobra.Command{
		Use:   "add",
		Short: "Build a single rule from flags and merge it into a fresh database",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger().WithField("run_id", uuid.New().String())

			action, err := parseActionFlag(actionStr)
			if err != nil {
				return err
			}
			def, err := parseActionFlag(defaultStr)
			if err != nil {
				return err
			}
			preds, err := parseArgFlags(argFlags)
			if err != nil {
				return err
			}

			db := seccompdb.New(def)
			log.WithFields(logrus.Fields{
				"syscall": syscallNum,
				"action":  actionStr,
				"args":    len(preds),
			}).Info("merging rule")

			if err := db.Add(action, syscallNum, preds); err != nil {
				log.WithError(err).Error("failed to add rule")
				return err
			}

			entry := db.Find(syscallNum)
			if entry.HasTree() {
				fmt.Printf("syscall %d: conditional (%d root alternatives)\n", syscallNum, len(entry.Root))
			} else {
				fmt.Printf("syscall %d: %s\n", syscallNum, entry.Unconditional)
			}
			return nil
		},
	}
	c.Flags().Uint64Var(&syscallNum, "syscall", 0, "syscall number")
	c.Flags().StringVar(&actionStr, "action", "allow", "action to apply (allow|deny|errno|trace|kill|kill_thread|kill_process|trap|log|user_notify)")
	c.Flags().StringVar(&defaultStr, "default", "deny", "database default action")
	c.Flags().StringArrayVar(&argFlags, "arg", nil, "argument predicate idx=op:datum, may be repeated")
	return c
}

var cliActions = map[string]seccompdb.Action{
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

var cliOps = map[string]seccompdb.RawOp{
	"eq": seccompdb.RawEQ,
	"ne": seccompdb.RawNE,
	"lt": seccompdb.RawLT,
	"le": seccompdb.RawLE,
	"gt": seccompdb.RawGT,
	"ge": seccompdb.RawGE,
}

func parseActionFlag(s string) (seccompdb.Action, error) {
	a, ok := cliActions[s]
	if !ok {
		return seccompdb.ActionNone, fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

// parseArgFlags parses a slice of "idx=op:datum" strings into
// RawPredicates, e.g. "1=eq:0".
func parseArgFlags(flags []string) ([]seccompdb.RawPredicate, error) {
	preds := make([]seccompdb.RawPredicate, 0, len(flags))
	for _, f := range flags {
		idxPart, rest, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("malformed --arg %q, expected idx=op:datum", f)
		}
		opPart, datumPart, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("malformed --arg %q, expected idx=op:datum", f)
		}
		idx, err := strconv.ParseUint(idxPart, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("malformed --arg %q: bad index: %w", f, err)
		}
		op, ok := cliOps[opPart]
		if !ok {
			return nil, fmt.Errorf("malformed --arg %q: unknown operator %q", f, opPart)
		}
		datum, err := strconv.ParseUint(datumPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed --arg %q: bad datum: %w", f, err)
		}
		preds = append(preds, seccompdb.RawPredicate{ArgIndex: uint32(idx), Op: op, Datum: datum})
	}
	return preds, nil
}

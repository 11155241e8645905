// SPDX-Licence-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lmarten/seccompdb"
	"github.com/lmarten/seccompdb/internal/rulefile"
)

func newDumpCmd() *cobra.Command {
	var jsonOut bool
	c := &cobra.Command{
		Use:   "dump <file>",
		Short: "Load a rule file and print its decision trees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger().WithField("run_id", uuid.New().String())
			path := args[0]

			log.WithField("file", path).Info("loading rule file for dump")
			_, db, err := rulefile.Build(path)
			if err != nil {
				log.WithError(err).Error("failed to load rule file")
				return err
			}

			entries := db.Walk()
			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			for _, e := range entries {
				printEntry(os.Stdout, e)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&jsonOut, "json", false, "emit JSON instead of indented text")
	return c
}

// dumpText renders every entry as indented text, the format printEntry
// writes to stdout a line at a time; tests exercise it directly
// against a buffer instead of capturing process output.
func dumpText(w io.Writer, entries []seccompdb.EntryView) {
	for _, e := range entries {
		printEntry(w, e)
	}
}

func printEntry(w io.Writer, e seccompdb.EntryView) {
	if len(e.Root) == 0 {
		fmt.Fprintf(w, "syscall %d: %s\n", e.Number, e.Unconditional)
		return
	}
	fmt.Fprintf(w, "syscall %d:\n", e.Number)
	printLevel(w, e.Root, 1)
}

func printLevel(w io.Writer, level []*seccompdb.PredicateView, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range level {
		branch := "false"
		if n.ActionBranch {
			branch = "true"
		}
		if n.Action != seccompdb.ActionNone {
			fmt.Fprintf(w, "%sarg%d %s %d -> %s (%s branch)\n", indent, n.ArgIndex, n.Op, n.Datum, n.Action, branch)
		} else {
			fmt.Fprintf(w, "%sarg%d %s %d (%s branch continues)\n", indent, n.ArgIndex, n.Op, n.Datum, branch)
		}
		printLevel(w, n.True, depth+1)
		printLevel(w, n.False, depth+1)
	}
}

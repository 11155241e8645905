// SPDX-Licence-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lmarten/seccompdb/internal/rulefile"
)

func newStatsCmd() *cobra.Command {
	var maxNodes int
	c := &cobra.Command{
		Use:   "stats <file>",
		Short: "Load a rule file and report syscall/node counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger().WithField("run_id", uuid.New().String())
			path := args[0]

			doc, err := rulefile.Load(path)
			if err != nil {
				log.WithError(err).Error("failed to load rule file")
				return err
			}
			db, err := doc.NewDatabase()
			if err != nil {
				return err
			}
			db.MaxNodes = maxNodes
			if err := doc.Apply(db); err != nil {
				log.WithError(err).Error("failed to apply rule file")
				return err
			}

			fmt.Printf("syscalls: %s\n", humanize.Comma(int64(len(db.Entries))))
			fmt.Printf("nodes:    %s\n", humanize.Comma(int64(db.NodeCount())))
			if maxNodes > 0 {
				headroom := maxNodes - db.NodeCount()
				fmt.Printf("headroom: %s of %s nodes\n", humanize.Comma(int64(headroom)), humanize.Comma(int64(maxNodes)))
			} else {
				fmt.Println("headroom: unlimited (no --max-nodes set)")
			}
			return nil
		},
	}
	c.Flags().IntVar(&maxNodes, "max-nodes", 0, "node budget to report headroom against (0 = unlimited)")
	return c
}

// SPDX-Licence-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lmarten/seccompdb/internal/rulefile"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Load a YAML rule file and print a per-syscall summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger().WithField("run_id", uuid.New().String())
			path := args[0]

			log.WithField("file", path).Info("loading rule file")
			_, db, err := rulefile.Build(path)
			if err != nil {
				log.WithError(err).Error("failed to load rule file")
				return err
			}
			log.WithFields(logrus.Fields{
				"syscalls": len(db.Entries),
				"nodes":    db.NodeCount(),
			}).Info("rule file loaded")

			for _, e := range db.Entries {
				if e.HasTree() {
					fmt.Printf("syscall %d: conditional (%d root alternatives)\n", e.Number, len(e.Root))
				} else {
					fmt.Printf("syscall %d: %s\n", e.Number, e.Unconditional)
				}
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd verifies generated files are current
var checkCmd = &cobra.Command{
	Use:   "check [patterns...]",
	Short: "Fail when generated collection files are stale or missing",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	stale, err := newRunner().Check(commandContext(cmd), args...)

	for _, path := range stale {
		fmt.Fprintf(cmd.OutOrStdout(), "stale: %s\n", path)
	}

	return err
}

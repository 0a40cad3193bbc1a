package main

import (
	"github.com/spf13/cobra"
)

// listCmd prints marker items and their planned collections
var listCmd = &cobra.Command{
	Use:   "list [patterns...]",
	Short: "List marker items and the collections planned for them",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	return newRunner().List(commandContext(cmd), cmd.OutOrStdout(), args...)
}

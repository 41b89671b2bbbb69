package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <display-id>",
	Short: "Show one issue in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadBoard(cmd.Context(), nil)
		if err != nil {
			return err
		}

		issue, ok := store.Lookup(args[0])
		if !ok {
			return fmt.Errorf("issue %q not found", args[0])
		}

		if jsonOutput {
			printJSON(issue)
			return nil
		}
		printIssueTable(&issue)
		return nil
	},
}

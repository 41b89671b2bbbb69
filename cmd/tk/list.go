package main

import (
	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/board"
)

var (
	listSearch  string
	listScope   string
	listMine    bool
	listProject int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues in load order",
	RunE: func(cmd *cobra.Command, args []string) error {
		var projectID *int
		if listProject != 0 {
			projectID = &listProject
		}
		store, err := loadBoard(cmd.Context(), projectID)
		if err != nil {
			return err
		}

		scope := listScope
		if listMine {
			scope = board.FilterMine
		}
		results := board.NewView(store).Results(listSearch, scope, actor)

		if jsonOutput {
			printJSON(results.Filtered)
			return nil
		}
		printIssueList(results.Filtered)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "filter by display id, title, or project name")
	listCmd.Flags().StringVar(&listScope, "scope", board.FilterAll, "scope filter: all, mine, or a status")
	listCmd.Flags().BoolVar(&listMine, "mine", false, "shorthand for --scope mine")
	listCmd.Flags().IntVar(&listProject, "project", 0, "limit to one project id")
}

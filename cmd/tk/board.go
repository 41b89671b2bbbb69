package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/board"
	"github.com/groblegark/trak/internal/client"
	"github.com/groblegark/trak/internal/model"
	"github.com/groblegark/trak/internal/ui"
)

// stderrNotifier surfaces board notifications as stderr lines, the CLI
// equivalent of the board's toast messages.
type stderrNotifier struct{}

func (stderrNotifier) Info(msg string)  { fmt.Fprintln(os.Stderr, ui.RenderMuted(msg)) }
func (stderrNotifier) Error(msg string) { fmt.Fprintln(os.Stderr, "Error: "+msg) }

// loadBoard creates a board store and loads it for the given project scope
// (nil = all projects).
func loadBoard(ctx context.Context, projectID *int) (*board.Store, error) {
	scope := client.ScopeAll()
	if projectID != nil {
		scope = client.ScopeProject(*projectID)
	}
	store := board.NewStore(apiClient, logger, stderrNotifier{})
	if err := store.Load(ctx, scope); err != nil {
		return nil, err
	}
	return store, nil
}

var (
	boardSearch  string
	boardScope   string
	boardProject int
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Render the issue board grouped by status column",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var projectID *int
		if boardProject != 0 {
			projectID = &boardProject
		}
		store, err := loadBoard(ctx, projectID)
		if err != nil {
			return err
		}

		view := board.NewView(store)
		results := view.Results(boardSearch, boardScope, actor)

		if jsonOutput {
			printJSON(results.ByStatus)
			return nil
		}

		titleWidth := ui.Width(100) - 40
		if titleWidth < 20 {
			titleWidth = 20
		}
		for _, status := range model.Statuses {
			column := results.ByStatus[status]
			fmt.Printf("%s (%d)\n", ui.RenderStatus(status), len(column))
			for i := range column {
				issue := &column[i]
				fmt.Printf("  %s  %s  %s  [%s]\n",
					ui.RenderAccent(issue.DisplayID),
					truncate(issue.Title, titleWidth),
					ui.RenderPriority(issue.Priority),
					issue.Assignee.Initials,
				)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	boardCmd.Flags().StringVar(&boardSearch, "search", "", "filter by display id, title, or project name")
	boardCmd.Flags().StringVar(&boardScope, "scope", board.FilterAll,
		"scope filter: all, mine, or a status ("+strings.Join(statusNames(), ", ")+")")
	boardCmd.Flags().IntVar(&boardProject, "project", 0, "limit the board to one project id")
}

func statusNames() []string {
	names := make([]string, len(model.Statuses))
	for i, s := range model.Statuses {
		names[i] = s.String()
	}
	return names
}

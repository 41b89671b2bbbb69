package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/groblegark/trak/internal/model"
	"github.com/groblegark/trak/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printIssueTable(issue *model.Issue) {
	now := time.Now()
	fmt.Printf("ID:        %s\n", ui.RenderAccent(issue.DisplayID))
	fmt.Printf("Title:     %s\n", issue.Title)
	fmt.Printf("Type:      %s\n", issue.Type)
	fmt.Printf("Status:    %s\n", ui.RenderStatus(issue.Status))
	fmt.Printf("Priority:  %s\n", ui.RenderPriority(issue.Priority))
	fmt.Printf("Project:   %s (%s)\n", issue.Project.Name, issue.Project.Key)
	fmt.Printf("Assignee:  %s (%s)\n", issue.Assignee.DisplayName, issue.Assignee.Initials)
	fmt.Printf("Reporter:  %s\n", issue.Reporter.DisplayName)
	if issue.StoryPoints > 0 {
		fmt.Printf("Points:    %d\n", issue.StoryPoints)
	}
	fmt.Printf("Created:   %s\n", issue.CreatedAgo(now))
	fmt.Printf("Updated:   %s\n", issue.UpdatedAgo(now))
}

func printIssueList(issues []model.Issue) {
	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTYPE\tPRIORITY\tTITLE\tASSIGNEE\tUPDATED")
	for i := range issues {
		issue := &issues[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			issue.DisplayID,
			issue.Status.Label(),
			issue.Type,
			issue.Priority,
			truncate(issue.Title, 50),
			issue.Assignee.DisplayName,
			issue.UpdatedAgo(now),
		)
	}
	w.Flush()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

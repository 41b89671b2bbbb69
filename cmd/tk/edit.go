package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/client"
	"github.com/groblegark/trak/internal/model"
)

var (
	editTitle       string
	editDescription string
	editType        string
	editStatus      string
	editPriority    string
	editPoints      int
	editAssignee    int
)

var editCmd = &cobra.Command{
	Use:   "edit <display-id>",
	Short: "Edit fields of an existing issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backendID, err := resolveIssueID(cmd, args[0])
		if err != nil {
			return err
		}

		req := &client.UpdateIssueRequest{}
		changed := false
		if cmd.Flags().Changed("title") {
			req.Name = &editTitle
			changed = true
		}
		if cmd.Flags().Changed("description") {
			req.Description = &editDescription
			changed = true
		}
		if cmd.Flags().Changed("type") {
			req.Type = &editType
			changed = true
		}
		if cmd.Flags().Changed("status") {
			if !model.Status(editStatus).IsValid() {
				return fmt.Errorf("invalid status %q", editStatus)
			}
			req.Status = &editStatus
			changed = true
		}
		if cmd.Flags().Changed("priority") {
			req.Priority = &editPriority
			changed = true
		}
		if cmd.Flags().Changed("points") {
			req.StoryPoint = &editPoints
			changed = true
		}
		if cmd.Flags().Changed("assignee") {
			req.AssignedTo = &editAssignee
			changed = true
		}
		if !changed {
			return fmt.Errorf("nothing to change (see tk edit --help)")
		}

		raw, err := apiClient.UpdateIssue(cmd.Context(), backendID, req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(raw)
			return nil
		}
		fmt.Printf("Updated issue %d\n", raw.ID)
		return nil
	},
}

// resolveIssueID maps a display id (or a bare backend id) to the backend id.
func resolveIssueID(cmd *cobra.Command, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		return n, nil
	}
	store, err := loadBoard(cmd.Context(), nil)
	if err != nil {
		return 0, err
	}
	issue, ok := store.Lookup(ref)
	if !ok {
		return 0, fmt.Errorf("issue %q not found", ref)
	}
	return issue.BackendID, nil
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&editDescription, "description", "", "new description")
	editCmd.Flags().StringVar(&editType, "type", "", "new type")
	editCmd.Flags().StringVar(&editStatus, "status", "", "new status")
	editCmd.Flags().StringVar(&editPriority, "priority", "", "new priority")
	editCmd.Flags().IntVar(&editPoints, "points", 0, "new story points")
	editCmd.Flags().IntVar(&editAssignee, "assignee", 0, "new assignee user id")
}

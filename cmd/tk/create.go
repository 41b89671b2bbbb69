package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/client"
	"github.com/groblegark/trak/internal/model"
)

var (
	createDescription string
	createType        string
	createStatus      string
	createPriority    string
	createPoints      int
	createProject     int
	createAssignee    int
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if createStatus != "" && !model.Status(createStatus).IsValid() {
			return fmt.Errorf("invalid status %q", createStatus)
		}

		req := &client.CreateIssueRequest{
			Name:        args[0],
			Description: createDescription,
			Type:        createType,
			Status:      createStatus,
			Priority:    createPriority,
			StoryPoint:  createPoints,
			ProjectID:   createProject,
		}
		if createAssignee != 0 {
			req.AssignedTo = &createAssignee
		}

		raw, err := apiClient.CreateIssue(cmd.Context(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(raw)
			return nil
		}
		fmt.Printf("Created issue %d: %s\n", raw.ID, raw.Name)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createDescription, "description", "", "issue description")
	createCmd.Flags().StringVar(&createType, "type", "task", "issue type")
	createCmd.Flags().StringVar(&createStatus, "status", "", "initial status (default todo)")
	createCmd.Flags().StringVar(&createPriority, "priority", "medium", "priority: low, medium, high, critical")
	createCmd.Flags().IntVar(&createPoints, "points", 0, "story points")
	createCmd.Flags().IntVar(&createProject, "project", 0, "project id")
	createCmd.Flags().IntVar(&createAssignee, "assignee", 0, "assignee user id")
}

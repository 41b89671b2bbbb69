package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/model"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List known projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := apiClient.ListProjects(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(projects)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKEY\tNAME")
		for _, p := range projects {
			fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, model.ProjectKey(p.Name), p.Name)
		}
		w.Flush()
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List known users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := apiClient.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(users)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tINITIALS\tNAME")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, model.Initials(u.Name), u.Name)
		}
		w.Flush()
		return nil
	},
}

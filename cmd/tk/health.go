package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := apiClient.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}
		fmt.Printf("Server %s: %s\n", serverURL, status)
		return nil
	},
}

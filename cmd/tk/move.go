package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/board"
)

var moveCmd = &cobra.Command{
	Use:   "move <display-id> <target>",
	Short: "Move an issue to another column",
	Long: `Move resolves the target the way the board resolves a drop: a status
name moves the issue into that column, and another issue's display id moves it
into that issue's current column. The move is applied optimistically and
rolled back if the server rejects it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadBoard(cmd.Context(), nil)
		if err != nil {
			return err
		}

		drag := board.NewDragController(store)
		if err := drag.Start(args[0]); err != nil {
			return err
		}

		switch outcome := drag.End(cmd.Context(), args[1]); outcome {
		case board.OutcomeMoved:
			issue, _ := store.Lookup(args[0])
			fmt.Printf("Moved %s to %s\n", args[0], issue.Status.Label())
			return nil
		case board.OutcomeNoChange:
			fmt.Printf("%s unchanged\n", args[0])
			return nil
		case board.OutcomeFailed:
			return fmt.Errorf("move rejected by server; local state rolled back")
		default:
			return fmt.Errorf("move cancelled")
		}
	},
}

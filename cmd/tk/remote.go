package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/config"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage named server profiles",
	// Remote management works offline; skip client setup.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger()
		return nil
	},
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured remotes",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.RemotesPath()
		if err != nil {
			return err
		}
		cfg, err := config.LoadRemotes(path)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tURL\tNATS\tUSER")
		for name, r := range cfg.Remotes {
			marker := " "
			if name == cfg.Active {
				marker = "*"
			}
			fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", marker, name, r.URL, r.NATSURL, r.UserID)
		}
		return w.Flush()
	},
}

var (
	remoteAddToken string
	remoteAddNATS  string
	remoteAddUser  string
)

var remoteAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add or update a remote",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.RemotesPath()
		if err != nil {
			return err
		}
		cfg, err := config.LoadRemotes(path)
		if err != nil {
			return err
		}

		cfg.Remotes[args[0]] = config.Remote{
			URL:     args[1],
			Token:   remoteAddToken,
			NATSURL: remoteAddNATS,
			UserID:  remoteAddUser,
		}
		// First remote becomes active automatically.
		if cfg.Active == "" {
			cfg.Active = args[0]
		}
		if err := config.SaveRemotes(path, cfg); err != nil {
			return err
		}
		fmt.Printf("Remote %q saved\n", args[0])
		return nil
	},
}

var remoteUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active remote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.RemotesPath()
		if err != nil {
			return err
		}
		cfg, err := config.LoadRemotes(path)
		if err != nil {
			return err
		}

		if _, ok := cfg.Remotes[args[0]]; !ok {
			return fmt.Errorf("remote %q not found", args[0])
		}
		cfg.Active = args[0]
		if err := config.SaveRemotes(path, cfg); err != nil {
			return err
		}
		fmt.Printf("Active remote is now %q\n", args[0])
		return nil
	},
}

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a remote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.RemotesPath()
		if err != nil {
			return err
		}
		cfg, err := config.LoadRemotes(path)
		if err != nil {
			return err
		}

		if _, ok := cfg.Remotes[args[0]]; !ok {
			return fmt.Errorf("remote %q not found", args[0])
		}
		delete(cfg.Remotes, args[0])
		if cfg.Active == args[0] {
			cfg.Active = ""
		}
		if err := config.SaveRemotes(path, cfg); err != nil {
			return err
		}
		fmt.Printf("Remote %q removed\n", args[0])
		return nil
	},
}

func init() {
	remoteAddCmd.Flags().StringVar(&remoteAddToken, "token", "", "bearer token for this remote")
	remoteAddCmd.Flags().StringVar(&remoteAddNATS, "nats", "", "NATS URL for this remote")
	remoteAddCmd.Flags().StringVar(&remoteAddUser, "user", "", "backend user id for the mine filter")

	remoteCmd.AddCommand(remoteListCmd)
	remoteCmd.AddCommand(remoteAddCmd)
	remoteCmd.AddCommand(remoteUseCmd)
	remoteCmd.AddCommand(remoteRemoveCmd)
}

// Command tk is the trak CLI: a board client for the issues service plus the
// server entrypoint (tk serve).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/client"
	"github.com/groblegark/trak/internal/config"
	"github.com/groblegark/trak/internal/ui"
)

var (
	remoteName string
	serverURL  string
	authToken  string
	jsonOutput bool
	actor      string
	verbose    bool
	noColor    bool

	apiClient client.IssueClient
	natsURL   string
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tk",
	Short: "CLI client for the trak issues service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger()
		if noColor || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}

		remote, err := resolveRemote()
		if err != nil {
			return err
		}
		if serverURL == "" {
			serverURL = remote.URL
		}
		if authToken == "" {
			authToken = remote.Token
		}
		if natsURL == "" {
			natsURL = remote.NATSURL
		}
		if actor == "" {
			actor = remote.UserID
		}
		if serverURL == "" {
			return fmt.Errorf("no server configured (use --server, TRAK_SERVER, or tk remote add)")
		}

		apiClient = client.NewHTTPClient(serverURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if apiClient != nil {
			apiClient.Close()
		}
	},
}

// newLogger writes text logs to stderr; info and below are dropped unless
// --verbose is set.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveRemote loads the active (or named) remote profile. Flags and
// environment take precedence over the profile; a missing remotes file is
// not an error.
func resolveRemote() (config.Remote, error) {
	path, err := config.RemotesPath()
	if err != nil {
		return config.Remote{}, nil
	}
	cfg, err := config.LoadRemotes(path)
	if err != nil {
		return config.Remote{}, fmt.Errorf("load remotes: %w", err)
	}

	if remoteName != "" {
		r, ok := cfg.Remotes[remoteName]
		if !ok {
			return config.Remote{}, fmt.Errorf("remote %q not found", remoteName)
		}
		return r, nil
	}
	if cfg.Active != "" {
		if r, err := cfg.ActiveRemote(); err == nil {
			return r, nil
		}
	}
	return config.Remote{}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&remoteName, "remote", "", "named remote profile to use")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", os.Getenv("TRAK_SERVER"), "server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("TRAK_TOKEN"), "bearer token for authentication")
	rootCmd.PersistentFlags().StringVar(&natsURL, "nats", os.Getenv("TRAK_NATS_URL"), "NATS URL for event subscriptions")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", os.Getenv("TRAK_ACTOR"), "backend user id backing the mine filter")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

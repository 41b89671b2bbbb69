package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/events"
	"github.com/groblegark/trak/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream issue lifecycle events",
	Long: `Watch subscribes to the event bus and prints every issue and project
event as it happens. Requires a NATS URL (--nats, TRAK_NATS_URL, or the
active remote's nats_url).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if natsURL == "" {
			return fmt.Errorf("no NATS URL configured (use --nats or TRAK_NATS_URL)")
		}

		sub, err := events.NewNATSSubscriber(natsURL)
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		defer sub.Close()

		ch, unsubscribe, err := sub.Subscribe(events.TopicAll)
		if err != nil {
			return fmt.Errorf("subscribe: %w", err)
		}
		defer unsubscribe()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fmt.Fprintln(os.Stderr, ui.RenderMuted("Watching for events (Ctrl-C to stop)..."))
		for {
			select {
			case <-ctx.Done():
				return nil
			case data, ok := <-ch:
				if !ok {
					return nil
				}
				printEvent(data)
			}
		}
	},
}

func printEvent(data []byte) {
	if jsonOutput {
		fmt.Println(string(data))
		return
	}
	var env struct {
		ID    string          `json:"id"`
		Topic string          `json:"topic"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Printf("%s %s %s\n", ui.RenderMuted(env.ID), ui.RenderAccent(env.Topic), env.Data)
}

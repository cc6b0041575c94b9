package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events <id>",
		Short: "Stream a match's events",
		Long: `Connect to the match's websocket endpoint and stream events in real-time.

Events include:
  - connected: Subscription is active
  - match_started: Both fleets are placed
  - move_resolved: A shot was fired
  - match_over: A fleet was sunk

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(args[0])
		},
	}
}

func streamEvents(matchID string) error {
	url := client.WebsocketURL(fmt.Sprintf("/api/v1/matches/%s/events", matchID))

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	conn, resp, err := websocket.DefaultDialer.Dial(url, client.Headers())
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	out := NewOutput(cfg.Output)
	if cfg.Output != "json" {
		out.PrintMessage(fmt.Sprintf("Connected to match %s", matchID))
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigCh:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Normal closes and Ctrl+C end the stream quietly
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return fmt.Errorf("stream error: %w", err)
			}
			break
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("invalid event: %w", err)
		}
		if event.Type == "connected" {
			continue
		}
		if cfg.Output == "json" {
			// One event per line
			fmt.Println(string(data))
			continue
		}
		out.Print(event)
	}

	if cfg.Output != "json" {
		out.PrintMessage("Disconnected")
	}
	return nil
}

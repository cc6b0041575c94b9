package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchNewCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchFireCmd())

	return cmd
}

// ShipRequest is one ship of a fleet layout file
type ShipRequest struct {
	Identifier int          `json:"identifier"`
	Kind       string       `json:"kind"`
	Spaces     []Coordinate `json:"spaces"`
}

// CreateMatchRequest is the request body for creating a match
type CreateMatchRequest struct {
	UserName       string        `json:"user_name,omitempty"`
	VictoryMessage string        `json:"victory_message,omitempty"`
	Opponent       string        `json:"opponent,omitempty"`
	AutoPlace      bool          `json:"auto_place,omitempty"`
	Ships          []ShipRequest `json:"ships,omitempty"`
}

func newMatchNewCmd() *cobra.Command {
	var (
		opponent       string
		autoPlace      bool
		layoutFile     string
		userName       string
		victoryMessage string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a match against a bot",
		Long: `Start a match against a bot. Either place your fleet at random with
--auto-place or supply a JSON layout file with --layout:

  [{"identifier": 0, "kind": "carrier", "spaces": [{"x": 0, "y": 0}, ...]}, ...]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := CreateMatchRequest{
				UserName:       userName,
				VictoryMessage: victoryMessage,
				Opponent:       opponent,
				AutoPlace:      autoPlace,
			}

			switch {
			case autoPlace && layoutFile != "":
				return errors.New("use either --auto-place or --layout, not both")
			case layoutFile != "":
				ships, err := readLayout(layoutFile)
				if err != nil {
					return err
				}
				req.Ships = ships
			case !autoPlace:
				return errors.New("a fleet is required: pass --auto-place or --layout")
			}

			var result Match
			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&opponent, "opponent", "hunter", "Bot strategy to play against")
	cmd.Flags().BoolVar(&autoPlace, "auto-place", false, "Place your fleet at random")
	cmd.Flags().StringVar(&layoutFile, "layout", "", "JSON file with your fleet layout")
	cmd.Flags().StringVar(&userName, "name", "", "Display name to record for your user")
	cmd.Flags().StringVar(&victoryMessage, "victory-message", "", "Message announced if you win")

	return cmd
}

func readLayout(path string) ([]ShipRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	var ships []ShipRequest
	if err := json.Unmarshal(data, &ships); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	return ships, nil
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show your view of a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match

			if err := client.Get(fmt.Sprintf("/api/v1/matches/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchFireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fire <id> <x> <y>",
		Short: "Fire at a coordinate on the opponent's board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			var result FireResult
			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/moves", id), Coordinate{X: x, Y: y}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

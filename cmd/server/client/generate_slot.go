package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ow-rando/internal/handlers/generation/v1alpha1"
	"github.com/KirkDiggler/ow-rando/internal/options"
)

var (
	genRunID   string
	genSeed    int64
	genPlayer  int
	genCheck   bool
	genOptions options.Options
	genGoal    string
)

var generateSlotCmd = &cobra.Command{
	Use:   "generate-slot",
	Short: "Generate and store one player's slot",
	RunE:  runGenerateSlot,
}

func init() {
	f := generateSlotCmd.Flags()
	f.StringVar(&genRunID, "run-id", "", "Run ID (generated when empty)")
	f.Int64Var(&genSeed, "seed", 0, "Generation seed")
	f.IntVar(&genPlayer, "player", 1, "Player slot number")
	f.BoolVar(&genCheck, "check", false, "Report locations unreachable with all items")
	f.BoolVar(&genOptions.RandomizeCoordinates, "randomize-coordinates", false, "Randomize the Eye of the Universe coordinates")
	f.BoolVar(&genOptions.RandomizeDarkBrambleLayout, "randomize-dark-bramble-layout", false, "Randomize the Dark Bramble layout")
	f.StringVar(&genGoal, "goal", string(options.GoalSongOfFive), "Goal")
	f.BoolVar(&genOptions.DeathLink, "death-link", false, "Enable death link")
	f.BoolVar(&genOptions.Logsanity, "logsanity", false, "Add ship log locations")
}

func runGenerateSlot(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createGenerationClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := genOptions
	opts.Goal = options.Goal(genGoal)

	req, err := v1alpha1.EncodeRequest(&v1alpha1.GenerateSlotRequest{
		RunID:   genRunID,
		Seed:    genSeed,
		Player:  genPlayer,
		Options: opts,
		Check:   genCheck,
	})
	if err != nil {
		return err
	}

	resp, err := client.GenerateSlot(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate slot: %w", err)
	}
	return printResponse(cmd.OutOrStdout(), resp)
}

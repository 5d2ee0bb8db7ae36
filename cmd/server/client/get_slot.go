package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ow-rando/internal/handlers/generation/v1alpha1"
)

var (
	getRunID  string
	getPlayer int
)

var getSlotCmd = &cobra.Command{
	Use:   "get-slot",
	Short: "Fetch a stored slot",
	RunE:  runGetSlot,
}

func init() {
	getSlotCmd.Flags().StringVar(&getRunID, "run-id", "", "Run ID (required)")
	getSlotCmd.Flags().IntVar(&getPlayer, "player", 1, "Player slot number")
	_ = getSlotCmd.MarkFlagRequired("run-id") // nolint:errcheck // safe to ignore in init
}

func runGetSlot(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createGenerationClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := v1alpha1.EncodeRequest(&v1alpha1.GetSlotRequest{RunID: getRunID, Player: getPlayer})
	if err != nil {
		return err
	}

	resp, err := client.GetSlot(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get slot: %w", err)
	}
	return printResponse(cmd.OutOrStdout(), resp)
}

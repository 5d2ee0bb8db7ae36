package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ow-rando/internal/handlers/generation/v1alpha1"
)

var listRunID string

var listSlotsCmd = &cobra.Command{
	Use:   "list-slots",
	Short: "List every stored slot of a run",
	RunE:  runListSlots,
}

func init() {
	listSlotsCmd.Flags().StringVar(&listRunID, "run-id", "", "Run ID (required)")
	_ = listSlotsCmd.MarkFlagRequired("run-id") // nolint:errcheck // safe to ignore in init
}

func runListSlots(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createGenerationClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := v1alpha1.EncodeRequest(&v1alpha1.ListSlotsRequest{RunID: listRunID})
	if err != nil {
		return err
	}

	resp, err := client.ListSlots(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to list slots: %w", err)
	}
	return printResponse(cmd.OutOrStdout(), resp)
}

package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/ow-rando/internal/handlers/generation/v1alpha1"
	"github.com/KirkDiggler/ow-rando/internal/options"
)

var (
	multiRunID   string
	multiSeed    int64
	multiPlayers int
	multiFile    string
)

var generateMultiworldCmd = &cobra.Command{
	Use:   "generate-multiworld",
	Short: "Generate every player of a multiworld run",
	Long: `Generate every player of a run in one call. Player options come from a
YAML file holding a list of option records, or default options are used
for --players players.`,
	RunE: runGenerateMultiworld,
}

func init() {
	f := generateMultiworldCmd.Flags()
	f.StringVar(&multiRunID, "run-id", "", "Run ID (generated when empty)")
	f.Int64Var(&multiSeed, "seed", 0, "Base seed; each player derives its own")
	f.IntVar(&multiPlayers, "players", 2, "Number of players when no --options file is given")
	f.StringVar(&multiFile, "options", "", "YAML file with a list of player options")
}

func loadPlayers() ([]options.Options, error) {
	if multiFile == "" {
		players := make([]options.Options, multiPlayers)
		for i := range players {
			players[i] = options.Default()
		}
		return players, nil
	}

	raw, err := os.ReadFile(multiFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	var docs []yaml.Node
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("options file must hold a list of player options: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("options file lists no players")
	}

	players := make([]options.Options, 0, len(docs))
	for i := range docs {
		b, err := yaml.Marshal(&docs[i])
		if err != nil {
			return nil, err
		}
		opts, err := options.Parse(b)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		players = append(players, opts)
	}
	return players, nil
}

func runGenerateMultiworld(cmd *cobra.Command, _ []string) error {
	players, err := loadPlayers()
	if err != nil {
		return err
	}

	client, cleanup, err := createGenerationClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := v1alpha1.EncodeRequest(&v1alpha1.GenerateMultiworldRequest{
		RunID:   multiRunID,
		Seed:    multiSeed,
		Players: players,
	})
	if err != nil {
		return err
	}

	resp, err := client.GenerateMultiworld(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate multiworld: %w", err)
	}
	return printResponse(cmd.OutOrStdout(), resp)
}

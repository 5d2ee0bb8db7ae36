package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ow-rando/internal/data"
	"github.com/KirkDiggler/ow-rando/internal/options"
	"github.com/KirkDiggler/ow-rando/internal/orchestrators/generation"
	"github.com/KirkDiggler/ow-rando/internal/pkg/clock"
	"github.com/KirkDiggler/ow-rando/internal/pkg/idgen"
	"github.com/KirkDiggler/ow-rando/internal/repositories/slot"
)

var (
	genSeed        int64
	genPlayer      int
	genOptionsFile string
	genCheck       bool
	genVerbose     bool

	genRandomizeCoordinates bool
	genRandomizeLayout      bool
	genGoal                 string
	genDeathLink            bool
	genLogsanity            bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one player's world and print its slot data",
	Long: `Generate runs every world hook for one player, then prints the slot data
as JSON followed by the spoiler text. Options come from --options (YAML)
and are overridden by any option flag given on the command line.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Generation seed")
	generateCmd.Flags().IntVar(&genPlayer, "player", 1, "Player slot number")
	generateCmd.Flags().StringVar(&genOptionsFile, "options", "", "Path to a YAML options file")
	generateCmd.Flags().BoolVar(&genCheck, "check", false, "Fail unless every location is reachable with all items")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Log generation details to stderr")

	generateCmd.Flags().BoolVar(&genRandomizeCoordinates, "randomize-coordinates", false, "Randomize the Eye of the Universe coordinates")
	generateCmd.Flags().BoolVar(&genRandomizeLayout, "randomize-dark-bramble-layout", false, "Randomize the Dark Bramble room layout")
	generateCmd.Flags().StringVar(&genGoal, "goal", string(options.GoalSongOfFive),
		"Goal: "+strings.Join(goalNames(), ", "))
	generateCmd.Flags().BoolVar(&genDeathLink, "death-link", false, "Enable death link")
	generateCmd.Flags().BoolVar(&genLogsanity, "logsanity", false, "Add ship log locations")
}

func goalNames() []string {
	goals := options.Goals()
	names := make([]string, 0, len(goals))
	for _, g := range goals {
		names = append(names, string(g))
	}
	return names
}

// generateOptions merges the options file with explicitly set flags.
func generateOptions(cmd *cobra.Command) (options.Options, error) {
	opts := options.Default()
	if genOptionsFile != "" {
		raw, err := os.ReadFile(genOptionsFile)
		if err != nil {
			return opts, fmt.Errorf("failed to read options: %w", err)
		}
		opts, err = options.Parse(raw)
		if err != nil {
			return opts, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("randomize-coordinates") {
		opts.RandomizeCoordinates = genRandomizeCoordinates
	}
	if flags.Changed("randomize-dark-bramble-layout") {
		opts.RandomizeDarkBrambleLayout = genRandomizeLayout
	}
	if flags.Changed("goal") {
		opts.Goal = options.Goal(genGoal)
	}
	if flags.Changed("death-link") {
		opts.DeathLink = genDeathLink
	}
	if flags.Changed("logsanity") {
		opts.Logsanity = genLogsanity
	}
	return opts, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if genVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts, err := generateOptions(cmd)
	if err != nil {
		return err
	}

	tables, err := data.Load()
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}

	orch, err := generation.NewOrchestrator(&generation.Config{
		Tables:      tables,
		SlotRepo:    slot.NewInMemory(clock.New()),
		IDGenerator: idgen.NewUUID("run"),
	})
	if err != nil {
		return err
	}

	out, err := orch.GenerateSlot(cmd.Context(), &generation.GenerateSlotInput{
		RunID:   idgen.ForSeed("run", genSeed),
		Seed:    genSeed,
		Player:  genPlayer,
		Options: opts,
		Check:   genCheck,
	})
	if err != nil {
		return err
	}

	if err := printGenerated(cmd.OutOrStdout(), out); err != nil {
		return err
	}

	if genCheck {
		if len(out.Unreachable) > 0 {
			return fmt.Errorf("%d unreachable with all items: %s",
				len(out.Unreachable), describeEntities(out.Unreachable))
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "check passed: all %d regions and %d locations reachable\n",
			len(out.Graph.Regions), len(out.Graph.Locations))
	}
	return nil
}

// describeEntities renders entities as "type id" joined by commas.
func describeEntities(list []core.Entity) string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, e.GetType()+" "+e.GetID())
	}
	return strings.Join(parts, ", ")
}

func printGenerated(w io.Writer, out *generation.GenerateSlotOutput) error {
	slotData, err := out.Slot.Summary.ToMap()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(slotData); err != nil {
		return fmt.Errorf("failed to write slot data: %w", err)
	}

	if out.Slot.Spoiler != "" {
		if _, err := io.WriteString(w, out.Slot.Spoiler); err != nil {
			return fmt.Errorf("failed to write spoiler: %w", err)
		}
	}
	return nil
}

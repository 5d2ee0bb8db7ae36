// Package main is the entry point for the ow-rando CLI and gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ow-rando/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "ow-rando",
	Short: "Outer Wilds randomizer world generator",
	Long: `ow-rando generates Outer Wilds randomizer worlds: randomized Eye of the
Universe coordinates, Dark Bramble layouts, access rules and slot data.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

// Package client provides commands that call a running ow-rando gRPC server
package client

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ow-rando/internal/handlers/generation/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the generation service",
	Long:  `Client commands make real gRPC requests against a running ow-rando server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(generateSlotCmd)
	ClientCmd.AddCommand(getSlotCmd)
	ClientCmd.AddCommand(listSlotsCmd)
	ClientCmd.AddCommand(generateMultiworldCmd)
}

// createGenerationClient connects to the server and returns a client plus
// its cleanup func
func createGenerationClient() (v1alpha1.GenerationServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}
	return v1alpha1.NewGenerationServiceClient(conn), cleanup, nil
}

func printResponse(w io.Writer, resp *structpb.Struct) error {
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to render response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

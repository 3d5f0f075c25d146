// Package client provides commands that call a running vagabond-api server
package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	apperrors "github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/handlers/api/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
	userID     string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running vagabond-api server",
	Long:  `Client commands make real gRPC requests against the PowerRollService.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVar(&userID, "user", "director", "User ID to act as")

	ClientCmd.AddCommand(rollPowerCmd)
	ClientCmd.AddCommand(spendHeroTokenCmd)
	ClientCmd.AddCommand(getResourcesCmd)
	ClientCmd.AddCommand(updateMaliceCmd)
	ClientCmd.AddCommand(setHeroTokensCmd)
}

// createClient creates a power roll service client
func createClient() (v1alpha1.PowerRollServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewPowerRollServiceClient(conn), cleanup, nil
}

// encodeRequest converts a request type into the wire Struct
func encodeRequest(v any) (*structpb.Struct, error) {
	in, err := v1alpha1.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return in, nil
}

// callError restores the server's error code so the CLI reports
// PERMISSION_DENIED and friends instead of a raw status string
func callError(action string, err error) error {
	return apperrors.Wrapf(apperrors.FromGRPCError(err), "failed to %s", action)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

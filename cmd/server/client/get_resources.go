package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/vagabond-api/internal/handlers/api/v1alpha1"
)

var getResourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Show hero tokens and malice",
	Args:  cobra.NoArgs,
	RunE:  getResources,
}

var updateMaliceCmd = &cobra.Command{
	Use:   "malice [delta]",
	Short: "Add to malice (directors only)",
	Args:  cobra.ExactArgs(1),
	RunE:  updateMalice,
}

var setHeroTokensCmd = &cobra.Command{
	Use:   "set-tokens [value]",
	Short: "Set the hero token balance (directors only)",
	Args:  cobra.ExactArgs(1),
	RunE:  setHeroTokens,
}

func getResources(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := client.GetResources(ctx, &structpb.Struct{})
	if err != nil {
		return callError("get resources", err)
	}

	var resp v1alpha1.ResourcesResponse
	if err := v1alpha1.Decode(out, &resp); err != nil {
		return err
	}

	fmt.Printf("Hero tokens: %d\n", resp.HeroTokens)
	fmt.Printf("Malice:      %d\n", resp.Malice)
	return nil
}

func updateMalice(cmd *cobra.Command, args []string) error {
	delta, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("delta must be a number: %w", err)
	}

	return changeCounter(&v1alpha1.UpdateMaliceRequest{UserID: userID, Delta: delta}, v1alpha1.PowerRollServiceClient.UpdateMalice)
}

func setHeroTokens(cmd *cobra.Command, args []string) error {
	value, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("value must be a number: %w", err)
	}

	return changeCounter(&v1alpha1.SetHeroTokensRequest{UserID: userID, Value: value}, v1alpha1.PowerRollServiceClient.SetHeroTokens)
}

type counterCall func(v1alpha1.PowerRollServiceClient, context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error)

func changeCounter(req any, call counterCall) error {
	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	in, err := encodeRequest(req)
	if err != nil {
		return err
	}

	out, err := call(client, ctx, in)
	if err != nil {
		return callError("update counter", err)
	}

	var resp v1alpha1.CounterResponse
	if err := v1alpha1.Decode(out, &resp); err != nil {
		return err
	}

	fmt.Printf("%d -> %d\n", resp.Previous, resp.Value)
	return nil
}

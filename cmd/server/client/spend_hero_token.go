package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/vagabond-api/internal/handlers/api/v1alpha1"
)

var spendFlavor string

var spendHeroTokenCmd = &cobra.Command{
	Use:   "spend [spend-type]",
	Short: "Ask the director to spend hero tokens",
	Long: `Request a hero token spend. Spend types:

  gainSurges, succeedSave, improveTest, regainStamina`,
	Args: cobra.ExactArgs(1),
	RunE: spendHeroToken,
}

func init() {
	spendHeroTokenCmd.Flags().StringVar(&spendFlavor, "flavor", "", "Message flavor text")
}

func spendHeroToken(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	in, err := encodeRequest(&v1alpha1.SpendHeroTokenRequest{
		UserID:    userID,
		SpendType: args[0],
		Flavor:    spendFlavor,
	})
	if err != nil {
		return err
	}

	out, err := client.SpendHeroToken(ctx, in)
	if err != nil {
		return callError("spend hero tokens", err)
	}

	var resp v1alpha1.SpendHeroTokenResponse
	if err := v1alpha1.Decode(out, &resp); err != nil {
		return err
	}

	return printJSON(resp)
}

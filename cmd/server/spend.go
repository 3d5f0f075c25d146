package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/vagabond-api/internal/dialogs"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/orchestrators/resources"
	"github.com/KirkDiggler/vagabond-api/internal/rules"
)

var spendFlavor string

var spendCmd = &cobra.Command{
	Use:   "spend [spend-type]",
	Short: "Spend hero tokens",
	Long: `Spend hero tokens as the configured user. A director applies the spend
directly; anyone else asks the running director over the socket.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: spendTypes(),
	RunE:      runSpend,
}

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Show or change hero tokens and malice",
	Args:  cobra.NoArgs,
	RunE:  runTokens,
}

var tokensSetCmd = &cobra.Command{
	Use:   "set [value]",
	Short: "Set the hero token balance (directors only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokensSet,
}

var maliceCmd = &cobra.Command{
	Use:   "malice [delta]",
	Short: "Add to malice (directors only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runMalice,
}

func init() {
	spendCmd.Flags().StringVar(&spendFlavor, "flavor", "", "Message flavor text")

	tokensCmd.AddCommand(tokensSetCmd)
	tokensCmd.AddCommand(maliceCmd)
}

func spendTypes() []string {
	spends := rules.Default().TokenSpends()
	out := make([]string, 0, len(spends))
	for _, s := range spends {
		out = append(out, s.Key)
	}
	return out
}

// withApp runs fn with a wired app and the current user
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app, user *entities.User) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg, &dialogs.Static{})
	if err != nil {
		return err
	}
	defer a.close()

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, a, user)
}

func runSpend(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app, user *entities.User) error {
		out, err := a.resources.RequestHeroTokenSpend(ctx, &resources.RequestHeroTokenSpendInput{
			User:      user,
			SpendType: args[0],
			Flavor:    spendFlavor,
		})
		if err != nil {
			return err
		}

		switch {
		case out.Broadcast:
			fmt.Println("Spend requested; the director will apply it")
		case out.Result.Spent:
			fmt.Printf("Spent. %d hero tokens left\n", out.Result.Balance)
		default:
			fmt.Println(out.Result.Warning)
		}
		return nil
	})
}

func runTokens(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app, _ *entities.User) error {
		out, err := a.resources.GetResources(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d\n", a.localizer.Localize("VAGABOND.Setting.HeroTokens.Label"), out.Resources.HeroTokens)
		fmt.Printf("%s: %d\n", a.localizer.Localize("VAGABOND.Setting.Malice.Label"), out.Resources.Malice)
		return nil
	})
}

func runTokensSet(cmd *cobra.Command, args []string) error {
	value, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("value must be a number: %w", err)
	}

	return withApp(cmd, func(ctx context.Context, a *app, user *entities.User) error {
		out, err := a.resources.SetHeroTokens(ctx, &resources.SetHeroTokensInput{User: user, Value: value})
		if err != nil {
			return err
		}
		fmt.Printf("%d -> %d\n", out.Previous, out.HeroTokens)
		return nil
	})
}

func runMalice(cmd *cobra.Command, args []string) error {
	delta, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("delta must be a number: %w", err)
	}

	return withApp(cmd, func(ctx context.Context, a *app, user *entities.User) error {
		out, err := a.resources.UpdateMalice(ctx, &resources.UpdateMaliceInput{User: user, Delta: delta})
		if err != nil {
			return err
		}
		fmt.Printf("%d -> %d\n", out.Previous, out.Malice)
		return nil
	})
}

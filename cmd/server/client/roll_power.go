package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/vagabond-api/internal/dialogs"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
)

var (
	rollType     string
	rollFlavor   string
	rollMode     string
	rollSkill    string
	rollTargets  []string
	rollEdges    int
	rollBanes    int
	rollBonuses  int
	actorName    string
	actorMight   int
	actorAgility int
)

var rollPowerCmd = &cobra.Command{
	Use:   "roll",
	Short: "Make a power roll against zero or more targets",
	Long: `Make a power roll. Every target shares the same natural result. Examples:

  roll --type test --edges 1
  roll --type ability --target goblin-1 --target goblin-2 --roll-mode gmroll`,
	Args: cobra.NoArgs,
	RunE: rollPower,
}

func init() {
	rollPowerCmd.Flags().StringVar(&rollType, "type", string(rolls.TypeTest), "Roll type: ability or test")
	rollPowerCmd.Flags().StringVar(&rollFlavor, "flavor", "", "Message flavor text")
	rollPowerCmd.Flags().StringVar(&rollMode, "roll-mode", string(entities.RollModePublic), "publicroll, gmroll, blindroll or selfroll")
	rollPowerCmd.Flags().StringVar(&rollSkill, "skill", "", "Skill applied to a test")
	rollPowerCmd.Flags().StringSliceVar(&rollTargets, "target", nil, "Target IDs")
	rollPowerCmd.Flags().IntVar(&rollEdges, "edges", 0, "Edges")
	rollPowerCmd.Flags().IntVar(&rollBanes, "banes", 0, "Banes")
	rollPowerCmd.Flags().IntVar(&rollBonuses, "bonuses", 0, "Flat bonus")
	rollPowerCmd.Flags().StringVar(&actorName, "actor", "", "Actor name")
	rollPowerCmd.Flags().IntVar(&actorMight, "might", 0, "Actor might")
	rollPowerCmd.Flags().IntVar(&actorAgility, "agility", 0, "Actor agility")
}

func rollPower(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req := &v1alpha1.RollPowerRequest{
		UserID:     userID,
		Type:       rollType,
		Evaluation: "message",
		Modifiers: rolls.Modifiers{
			Edges:   rollEdges,
			Banes:   rollBanes,
			Bonuses: rollBonuses,
		},
		Skill:    rollSkill,
		Flavor:   rollFlavor,
		RollMode: entities.RollMode(rollMode),
	}
	if actorName != "" {
		req.Actor = &entities.Actor{
			ID:   actorName,
			Name: actorName,
			Type: entities.ActorTypeCharacter,
			Characteristics: entities.Characteristics{
				Might:   actorMight,
				Agility: actorAgility,
			},
		}
	}
	for _, id := range rollTargets {
		req.Targets = append(req.Targets, dialogs.Target{UUID: id})
	}

	in, err := encodeRequest(req)
	if err != nil {
		return err
	}

	out, err := client.RollPower(ctx, in)
	if err != nil {
		return callError("roll", err)
	}

	var resp v1alpha1.RollPowerResponse
	if err := v1alpha1.Decode(out, &resp); err != nil {
		return err
	}

	if resp.Cancelled {
		fmt.Println("Roll cancelled")
		return nil
	}

	fmt.Printf("\n🎲 Power Roll (%s)\n", resp.RollMode)
	fmt.Printf("===================\n")
	for i, roll := range resp.Rolls {
		label := "Base"
		if i > 0 {
			label = fmt.Sprintf("Roll %d", i)
		}
		if roll.Target != "" {
			label += " vs " + roll.Target
		}
		fmt.Printf("\n%s:\n", label)
		fmt.Printf("  Formula: %s\n", roll.Formula)
		fmt.Printf("  Dice: %v (natural %d)\n", roll.Dice, roll.NaturalResult)
		fmt.Printf("  Total: %d\n", roll.Total)
		fmt.Printf("  Tier: %d\n", roll.Tier)
		if roll.Critical {
			fmt.Printf("  Critical!\n")
		}
	}

	return nil
}

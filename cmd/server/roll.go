package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/vagabond-api/internal/dialogs"
	"github.com/KirkDiggler/vagabond-api/internal/dialogs/tui"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/orchestrators/powerroll"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
)

var (
	rollType        string
	rollActorID     string
	rollTargets     []string
	rollSkills      []string
	rollSkill       string
	rollAbility     string
	rollChar        string
	rollFlavor      string
	rollMode        string
	rollEdges       int
	rollBanes       int
	rollBonuses     int
	rollInteractive bool
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Make a power roll and post it to chat",
	Long: `Make a power roll as the configured user. With --interactive a terminal
dialog lets you adjust each target's modifiers before rolling.`,
	Args: cobra.NoArgs,
	RunE: runRoll,
}

func init() {
	flags := rollCmd.Flags()
	flags.StringVar(&rollType, "type", string(rolls.TypeTest), "Roll type: ability or test")
	flags.StringVar(&rollActorID, "actor", "", "Actor ID; defaults to the user's character")
	flags.StringSliceVar(&rollTargets, "target", nil, "Target actor IDs")
	flags.StringSliceVar(&rollSkills, "skills", nil, "Skills offered by the dialog")
	flags.StringVar(&rollSkill, "skill", "", "Skill applied to a test")
	flags.StringVar(&rollAbility, "ability", "", "Ability ID")
	flags.StringVar(&rollChar, "characteristic", "", "Characteristic tested")
	flags.StringVar(&rollFlavor, "flavor", "", "Message flavor text")
	flags.StringVar(&rollMode, "roll-mode", string(entities.RollModePublic), "publicroll, gmroll, blindroll or selfroll")
	flags.IntVar(&rollEdges, "edges", 0, "Edges")
	flags.IntVar(&rollBanes, "banes", 0, "Banes")
	flags.IntVar(&rollBonuses, "bonuses", 0, "Flat bonus")
	flags.BoolVarP(&rollInteractive, "interactive", "i", false, "Adjust modifiers in a terminal dialog")
}

var (
	tierStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD93D"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func runRoll(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var dialog dialogs.Dialog = &dialogs.Static{
		RollMode: entities.RollMode(rollMode),
		Skill:    rollSkill,
	}
	if rollInteractive {
		terminal, err := tui.New(&tui.Config{
			Input:     os.Stdin,
			Output:    os.Stderr,
			Localizer: cfg.Localizer(),
		})
		if err != nil {
			return err
		}
		dialog = terminal
	}

	a, err := newApp(ctx, cfg, dialog)
	if err != nil {
		return err
	}
	defer a.close()

	user, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	input := &powerroll.PromptInput{
		User:           user,
		Type:           rolls.Type(rollType),
		Evaluation:     powerroll.EvaluationMessage,
		Modifiers:      rolls.Modifiers{Edges: rollEdges, Banes: rollBanes, Bonuses: rollBonuses},
		Ability:        rollAbility,
		Characteristic: rollChar,
		Skills:         rollSkills,
		Flavor:         rollFlavor,
	}
	if rollActorID != "" {
		input.Actor, err = a.resolveActor(ctx, rollActorID)
		if err != nil {
			return err
		}
	}
	for _, id := range rollTargets {
		input.Targets = append(input.Targets, dialogs.Target{UUID: id})
	}

	out, err := a.powerRoll.Prompt(ctx, input)
	if err != nil {
		return err
	}
	if out == nil {
		fmt.Println(dimStyle.Render("Roll cancelled"))
		return nil
	}

	for _, msg := range out.Messages {
		fmt.Println(tierStyle.Render(msg.Flavor))
		fmt.Println("  " + msg.Content)
	}
	if len(out.Messages) == 0 {
		for _, pr := range out.Derived() {
			record := pr.Record()
			fmt.Printf("%s %d (tier %d)\n", record.Target, record.Total, record.Tier)
		}
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("posted as %s", out.RollMode)))

	return nil
}

// Package powerroll implements the power roll prompt: confirm modifiers
// through a dialog, roll the dice once, and resolve one power roll per target
// against that shared result.
package powerroll

//go:generate mockgen -destination=mock/mock_service.go -package=powerrollmock github.com/KirkDiggler/vagabond-api/internal/orchestrators/powerroll Service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/vagabond-api/internal/dialogs"
	"github.com/KirkDiggler/vagabond-api/internal/dice"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/events"
	"github.com/KirkDiggler/vagabond-api/internal/i18n"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
	"github.com/KirkDiggler/vagabond-api/internal/rules"
	"github.com/KirkDiggler/vagabond-api/internal/services/chat"
)

const (
	tracerName = "github.com/KirkDiggler/vagabond-api/internal/orchestrators/powerroll"

	// sharedTermRollOrder keeps the shared dice from animating again
	sharedTermRollOrder = 999

	labelPromptTitle = "VAGABOND.Roll.Power.Prompt.Title"
)

// Service defines the power roll operations
type Service interface {
	// Prompt returns nil, nil when the user cancels the dialog
	Prompt(ctx context.Context, input *PromptInput) (*PromptOutput, error)
}

// SpeakerResolver finds the actor a user speaks as
type SpeakerResolver interface {
	ResolveSpeaker(ctx context.Context, user *entities.User) (*entities.Actor, error)
}

// Config holds the dependencies for the power roll orchestrator
type Config struct {
	Dialog dialogs.Dialog
	Chat   chat.Service
	Rules  *rules.Rules

	// Optional
	Localizer       i18n.Localizer
	Roller          dice.Roller
	EventBus        events.Bus
	SpeakerResolver SpeakerResolver
	TargetResolver  rolls.TargetResolver
	Tracer          trace.Tracer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Dialog == nil {
		vb.RequiredField("Dialog")
	}
	if c.Chat == nil {
		vb.RequiredField("Chat")
	}
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}

	return vb.Build()
}

type orchestrator struct {
	dialog          dialogs.Dialog
	chat            chat.Service
	rules           *rules.Rules
	loc             i18n.Localizer
	roller          dice.Roller
	bus             events.Bus
	speakerResolver SpeakerResolver
	targetResolver  rolls.TargetResolver
	tracer          trace.Tracer
}

// NewOrchestrator creates a new power roll orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		dialog:          cfg.Dialog,
		chat:            cfg.Chat,
		rules:           cfg.Rules,
		loc:             cfg.Localizer,
		roller:          cfg.Roller,
		bus:             cfg.EventBus,
		speakerResolver: cfg.SpeakerResolver,
		targetResolver:  cfg.TargetResolver,
		tracer:          cfg.Tracer,
	}
	if o.loc == nil {
		o.loc = i18n.DefaultLocalizer()
	}
	if o.roller == nil {
		o.roller = dice.DefaultRoller
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}

	return o, nil
}

// Prompt runs the full prompt flow
func (o *orchestrator) Prompt(ctx context.Context, input *PromptInput) (_ *PromptOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	ctx, span := o.tracer.Start(ctx, "powerroll.Prompt")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	in, err := o.applyDefaults(ctx, input)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("power_roll.type", string(in.Type)),
		attribute.String("power_roll.evaluation", string(in.Evaluation)),
		attribute.Int("power_roll.targets", len(in.Targets)),
	)

	applyActorModifiers(in)

	typeLabel := o.loc.Localize(in.Type.Info().Label)
	req := &dialogs.Request{
		Context: dialogs.PromptContext{
			Type:           in.Type,
			Modifiers:      in.Modifiers,
			Targets:        in.Targets,
			Ability:        in.Ability,
			Characteristic: in.Characteristic,
			Skills:         in.Skills,
		},
		Window: dialogs.Window{
			Title: o.loc.Format(labelPromptTitle, map[string]string{"typeLabel": typeLabel}),
		},
	}

	dialog := o.dialog
	if in.Dialog != nil {
		dialog = in.Dialog
	}
	result, err := dialog.Prompt(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "power roll dialog failed")
	}
	if result == nil {
		slog.Info("Power roll prompt cancelled", "type", in.Type)
		span.SetAttributes(attribute.Bool("power_roll.cancelled", true))
		return nil, nil
	}
	if result.RollMode == "" {
		result.RollMode = entities.RollModePublic
	}
	if !result.RollMode.Valid() {
		return nil, errors.InvalidArgumentf("dialog returned unknown roll mode %q", result.RollMode)
	}

	batch, err := o.buildBatch(ctx, in, result, typeLabel)
	if err != nil {
		return nil, err
	}

	out := &PromptOutput{
		RollMode:   result.RollMode,
		PowerRolls: batch,
	}

	if in.Evaluation == EvaluationMessage {
		out.Messages, err = o.postMessages(ctx, in, result.RollMode, out.Derived())
		if err != nil {
			return nil, err
		}
	}

	o.publishResolved(ctx, in.Actor, out)

	slog.Info("Power roll prompt resolved",
		"type", in.Type,
		"evaluation", in.Evaluation,
		"roll_mode", out.RollMode,
		"rolls", len(out.PowerRolls),
	)

	return out, nil
}

// applyDefaults fills omitted input without touching the caller's copy
func (o *orchestrator) applyDefaults(ctx context.Context, input *PromptInput) (*PromptInput, error) {
	in := *input

	if in.Type == "" {
		in.Type = rolls.TypeTest
	}
	if in.Evaluation == "" {
		in.Evaluation = EvaluationMessage
	}
	if in.Formula == "" {
		in.Formula = rolls.DefaultFormula
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("Type", string(in.Type), rolls.ValidTypes(), vb)
	errors.ValidateEnum("Evaluation", string(in.Evaluation), ValidEvaluations(), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if in.Actor == nil && o.speakerResolver != nil && in.User != nil {
		actor, err := o.speakerResolver.ResolveSpeaker(ctx, in.User)
		if err != nil && !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to resolve speaker")
		}
		in.Actor = actor
	}

	if in.Actor != nil {
		actor := *in.Actor
		actor.Statuses = slices.Clone(in.Actor.Statuses)
		actor.PrepareDerivedData(o.rules)
		in.Actor = &actor
		o.emit(ctx, events.EventActorPrepared, in.Actor, nil)

		if in.Data == nil {
			in.Data = actor.RollData()
		}
	}

	in.Targets = slices.Clone(in.Targets)
	in.Skills = slices.Clone(in.Skills)
	return &in, nil
}

// applyActorModifiers adds the banes imposed by the actor's conditions
func applyActorModifiers(in *PromptInput) {
	if in.Actor == nil {
		return
	}

	if in.Actor.HasStatus(rules.ConditionWeakened) {
		in.Modifiers.Banes++
	}

	if in.Actor.HasStatus(rules.ConditionRestrained) &&
		in.Type == rolls.TypeTest &&
		(in.Characteristic == rules.CharacteristicMight || in.Characteristic == rules.CharacteristicAgility) {
		in.Modifiers.Banes++
	}
}

// buildBatch rolls the base and substitutes its dice into every derived roll
// before any derived roll is evaluated.
func (o *orchestrator) buildBatch(ctx context.Context, in *PromptInput, result *dialogs.Result, typeLabel string) ([]*rolls.PowerRoll, error) {
	base, err := rolls.New(&rolls.Config{
		Formula: in.Formula,
		Data:    in.Data,
		Options: rolls.Options{
			Type:            in.Type,
			BaseRoll:        true,
			DamageSelection: result.Damage,
			Skill:           result.Skill,
		},
		Localizer: o.loc,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build base roll")
	}
	if err := base.Evaluate(ctx, o.roller); err != nil {
		return nil, errors.Wrap(err, "failed to evaluate base roll")
	}

	baseDice := base.FirstDice()
	if baseDice == nil {
		return nil, errors.InvalidArgumentf("power roll formula %q has no dice", base.Formula())
	}
	cloned, err := dice.CloneTerm(baseDice, dice.WithRollOrder(sharedTermRollOrder))
	if err != nil {
		return nil, errors.Wrap(err, "failed to share base dice")
	}
	shared, ok := cloned.(*dice.DieTerm)
	if !ok {
		return nil, errors.Internalf("cloned die group has type %T", cloned)
	}

	flavor := in.Flavor
	if flavor == "" {
		flavor = typeLabel
	}
	if result.Skill != "" {
		flavor += " - " + o.skillLabel(result.Skill)
	}

	batch := make([]*rolls.PowerRoll, 0, len(result.Rolls)+1)
	batch = append(batch, base)

	for _, rc := range result.Rolls {
		ability := rc.Ability
		if in.Ability != "" {
			ability = in.Ability
		}

		roll, err := rolls.New(&rolls.Config{
			Formula: in.Formula,
			Data:    in.Data,
			Options: rolls.Options{
				Type:      in.Type,
				Modifiers: rc.Modifiers,
				Target:    rc.Target,
				Ability:   ability,
				Skill:     result.Skill,
				Flavor:    flavor,
			},
			Localizer: o.loc,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to build power roll")
		}
		if err := roll.ReplaceFirstDice(shared); err != nil {
			return nil, errors.Wrap(err, "failed to share base dice")
		}
		batch = append(batch, roll)
	}

	if in.Evaluation == EvaluationNone {
		return batch, nil
	}

	for _, roll := range batch[1:] {
		if err := roll.Evaluate(ctx, o.roller); err != nil {
			return nil, errors.Wrap(err, "failed to evaluate power roll")
		}
	}

	return batch, nil
}

func (o *orchestrator) skillLabel(key string) string {
	if skill, ok := o.rules.Skill(key); ok {
		return o.loc.Localize(skill.Label)
	}
	return key
}

func (o *orchestrator) postMessages(ctx context.Context, in *PromptInput, mode entities.RollMode, derived []*rolls.PowerRoll) ([]*entities.ChatMessage, error) {
	speaker := entities.Speaker{}
	if in.Actor != nil {
		speaker = entities.Speaker{ActorID: in.Actor.ID, Alias: in.Actor.Name}
	} else if in.User != nil {
		speaker.Alias = in.User.Name
	}

	author := ""
	if in.User != nil {
		author = in.User.ID
	}

	messages := make([]*entities.ChatMessage, 0, len(derived))
	for _, roll := range derived {
		rc, err := roll.RenderContext(ctx, o.loc, o.targetResolver)
		if err != nil {
			return nil, errors.Wrap(err, "failed to render power roll")
		}

		posted, err := o.chat.Post(ctx, &chat.PostInput{
			Message: &entities.ChatMessage{
				Author:  author,
				Speaker: speaker,
				Content: rc.String(),
				Flavor:  roll.Options().Flavor,
				Rolls:   []entities.RollRecord{roll.Record()},
			},
			RollMode: mode,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to post power roll")
		}
		messages = append(messages, posted.Message)
	}

	return messages, nil
}

func (o *orchestrator) publishResolved(ctx context.Context, actor *entities.Actor, out *PromptOutput) {
	tiers := make([]int, 0, len(out.PowerRolls))
	for _, roll := range out.Derived() {
		if tier, ok := roll.Product(); ok {
			tiers = append(tiers, tier)
		}
	}

	o.emit(ctx, events.EventPowerRollResolved, actor, map[string]any{
		events.ContextRollMode:  string(out.RollMode),
		events.ContextTiers:     tiers,
		events.ContextRollCount: len(out.PowerRolls),
	})
}

// emit publishes a hook. Hook failures never fail the roll.
func (o *orchestrator) emit(ctx context.Context, eventType string, actor *entities.Actor, data map[string]any) {
	if o.bus == nil {
		return
	}

	var source core.Entity
	if actor != nil {
		source = events.WrapActor(actor)
	}

	if _, err := events.Emit(ctx, o.bus, eventType, source, nil, data); err != nil {
		slog.Warn("Failed to publish hook",
			"event", eventType,
			"error", err,
		)
	}
}

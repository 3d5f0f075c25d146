// Package v1alpha1 serves the power roll and resource APIs over gRPC
package v1alpha1

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/vagabond-api/internal/dialogs"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/orchestrators/powerroll"
	"github.com/KirkDiggler/vagabond-api/internal/orchestrators/resources"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/users"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	PowerRoll powerroll.Service
	Resources resources.Service
	Users     users.Repository
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.PowerRoll == nil {
		vb.RequiredField("PowerRoll")
	}
	if c.Resources == nil {
		vb.RequiredField("Resources")
	}
	if c.Users == nil {
		vb.RequiredField("Users")
	}

	return vb.Build()
}

// Handler implements PowerRollServiceServer
type Handler struct {
	powerRoll powerroll.Service
	resources resources.Service
	users     users.Repository
}

var _ PowerRollServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		powerRoll: cfg.PowerRoll,
		resources: cfg.Resources,
		users:     cfg.Users,
	}, nil
}

// lookupUser resolves the calling user; unknown ids act as plain players
func (h *Handler) lookupUser(ctx context.Context, id string) (*entities.User, error) {
	if id == "" {
		return nil, errors.InvalidArgument("user_id is required")
	}

	user, err := h.users.Get(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return &entities.User{ID: id, Name: id}, nil
		}
		return nil, errors.Wrapf(err, "failed to look up user %s", id)
	}
	return user, nil
}

func respond(v any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	out, err := Encode(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}

// RollPower runs a prompt with the request's modifiers and returns the batch
func (h *Handler) RollPower(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req RollPowerRequest
	if err := Decode(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	user, err := h.lookupUser(ctx, req.UserID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.powerRoll.Prompt(ctx, &powerroll.PromptInput{
		User:           user,
		Actor:          req.Actor,
		Type:           rolls.Type(req.Type),
		Evaluation:     powerroll.Evaluation(req.Evaluation),
		Formula:        req.Formula,
		Modifiers:      req.Modifiers,
		Targets:        req.Targets,
		Ability:        req.Ability,
		Characteristic: req.Characteristic,
		Skills:         req.Skills,
		Flavor:         req.Flavor,
		Dialog: &dialogs.Static{
			RollMode: req.RollMode,
			Skill:    req.Skill,
		},
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &RollPowerResponse{Cancelled: output == nil, Rolls: []RollResult{}}
	if output != nil {
		resp.RollMode = output.RollMode
		resp.Messages = output.Messages
		for _, pr := range output.PowerRolls {
			resp.Rolls = append(resp.Rolls, RollResult{
				RollRecord: pr.Record(),
				Evaluated:  pr.Evaluated(),
			})
		}
	}

	slog.Debug("Power roll served",
		"user_id", user.ID,
		"rolls", len(resp.Rolls),
	)

	return respond(resp, nil)
}

// SpendHeroToken requests a spend; the director applies it
func (h *Handler) SpendHeroToken(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SpendHeroTokenRequest
	if err := Decode(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	user, err := h.lookupUser(ctx, req.UserID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.resources.RequestHeroTokenSpend(ctx, &resources.RequestHeroTokenSpendInput{
		User:      user,
		SpendType: req.SpendType,
		Flavor:    req.Flavor,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &SpendHeroTokenResponse{Broadcast: output.Broadcast}
	if result := output.Result; result != nil {
		resp.Spent = result.Spent
		resp.Balance = result.Balance
		resp.Warning = result.Warning
		resp.Message = result.Message
	}

	return respond(resp, nil)
}

// GetResources returns the hero token and malice counters
func (h *Handler) GetResources(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	output, err := h.resources.GetResources(ctx)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ResourcesResponse{
		HeroTokens: output.Resources.HeroTokens,
		Malice:     output.Resources.Malice,
	}, nil)
}

// UpdateMalice adjusts malice; directors only
func (h *Handler) UpdateMalice(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req UpdateMaliceRequest
	if err := Decode(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	user, err := h.lookupUser(ctx, req.UserID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.resources.UpdateMalice(ctx, &resources.UpdateMaliceInput{
		User:  user,
		Delta: req.Delta,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&CounterResponse{Previous: output.Previous, Value: output.Malice}, nil)
}

// SetHeroTokens replaces the hero token balance; directors only
func (h *Handler) SetHeroTokens(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SetHeroTokensRequest
	if err := Decode(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	user, err := h.lookupUser(ctx, req.UserID)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.resources.SetHeroTokens(ctx, &resources.SetHeroTokensInput{
		User:  user,
		Value: req.Value,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&CounterResponse{Previous: output.Previous, Value: output.HeroTokens}, nil)
}

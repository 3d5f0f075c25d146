package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/vagabond-api/internal/dialogs"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
)

// RollPowerRequest is the RollPower message. Modifiers arrive with the
// request, so the prompt is confirmed without a dialog.
type RollPowerRequest struct {
	UserID         string            `json:"user_id"`
	Actor          *entities.Actor   `json:"actor,omitempty"`
	Type           string            `json:"type,omitempty"`
	Evaluation     string            `json:"evaluation,omitempty"`
	Formula        string            `json:"formula,omitempty"`
	Modifiers      rolls.Modifiers   `json:"modifiers"`
	Targets        []dialogs.Target  `json:"targets,omitempty"`
	Ability        string            `json:"ability,omitempty"`
	Characteristic string            `json:"characteristic,omitempty"`
	Skills         []string          `json:"skills,omitempty"`
	Skill          string            `json:"skill,omitempty"`
	Flavor         string            `json:"flavor,omitempty"`
	RollMode       entities.RollMode `json:"roll_mode,omitempty"`
}

// RollPowerResponse is the RollPower reply. Rolls[0] is the base roll.
type RollPowerResponse struct {
	Cancelled bool                    `json:"cancelled"`
	RollMode  entities.RollMode       `json:"roll_mode,omitempty"`
	Rolls     []RollResult            `json:"rolls"`
	Messages  []*entities.ChatMessage `json:"messages,omitempty"`
}

// RollResult is one roll of a batch
type RollResult struct {
	entities.RollRecord
	Evaluated bool `json:"evaluated"`
}

// SpendHeroTokenRequest is the SpendHeroToken message
type SpendHeroTokenRequest struct {
	UserID    string `json:"user_id"`
	SpendType string `json:"spend_type"`
	Flavor    string `json:"flavor,omitempty"`
}

// SpendHeroTokenResponse is the SpendHeroToken reply. A broadcast request
// reports nothing else; the outcome is only visible to the director.
type SpendHeroTokenResponse struct {
	Broadcast bool                  `json:"broadcast"`
	Spent     bool                  `json:"spent"`
	Balance   int                   `json:"balance"`
	Warning   string                `json:"warning,omitempty"`
	Message   *entities.ChatMessage `json:"message,omitempty"`
}

// ResourcesResponse is the GetResources reply
type ResourcesResponse struct {
	HeroTokens int `json:"hero_tokens"`
	Malice     int `json:"malice"`
}

// UpdateMaliceRequest is the UpdateMalice message
type UpdateMaliceRequest struct {
	UserID string `json:"user_id"`
	Delta  int    `json:"delta"`
}

// SetHeroTokensRequest is the SetHeroTokens message
type SetHeroTokensRequest struct {
	UserID string `json:"user_id"`
	Value  int    `json:"value"`
}

// CounterResponse reports a counter change
type CounterResponse struct {
	Previous int `json:"previous"`
	Value    int `json:"value"`
}

// Decode reads a Struct message into v
func Decode(in *structpb.Struct, v any) error {
	if in == nil {
		return errors.InvalidArgument("request is required")
	}
	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read request")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	return nil
}

// Encode writes v as a Struct message
func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}

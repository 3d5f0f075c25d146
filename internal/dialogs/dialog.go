// Package dialogs defines the modifier confirmation step of a power roll
// prompt and a non-interactive implementation of it.
package dialogs

//go:generate mockgen -destination=mock/mock_dialog.go -package=dialogsmock github.com/KirkDiggler/vagabond-api/internal/dialogs Dialog

import (
	"context"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
)

// Dialog asks the user to confirm or adjust roll modifiers. A nil result
// with a nil error means the user cancelled.
type Dialog interface {
	Prompt(ctx context.Context, req *Request) (*Result, error)
}

// Func adapts a function to Dialog
type Func func(ctx context.Context, req *Request) (*Result, error)

// Prompt calls f
func (f Func) Prompt(ctx context.Context, req *Request) (*Result, error) {
	return f(ctx, req)
}

// Target is a roll target with its own modifier deltas
type Target struct {
	UUID      string          `json:"uuid"`
	Modifiers rolls.Modifiers `json:"modifiers"`
}

// PromptContext is what the dialog shows
type PromptContext struct {
	Type           rolls.Type      `json:"type"`
	Modifiers      rolls.Modifiers `json:"modifiers"`
	Targets        []Target        `json:"targets,omitempty"`
	Ability        string          `json:"ability,omitempty"`
	Characteristic string          `json:"characteristic,omitempty"`
	Skills         []string        `json:"skills,omitempty"`
}

// Window holds presentation hints
type Window struct {
	Title string `json:"title"`
}

// Request is the input to a dialog
type Request struct {
	Context PromptContext `json:"context"`
	Window  Window        `json:"window"`
}

// RollContext is one confirmed roll
type RollContext struct {
	rolls.Modifiers
	Ability string `json:"ability,omitempty"`
	Target  string `json:"target,omitempty"`
}

// Result is a confirmed dialog
type Result struct {
	Rolls    []RollContext     `json:"rolls"`
	RollMode entities.RollMode `json:"roll_mode"`
	Damage   string            `json:"damage,omitempty"`
	Skill    string            `json:"skill,omitempty"`
}

// DefaultRolls returns the rolls a dialog starts with: one per target with
// the target's deltas layered over the base modifiers, or a single roll with
// the base modifiers when there are no targets.
func DefaultRolls(pc PromptContext) []RollContext {
	if len(pc.Targets) == 0 {
		return []RollContext{{Modifiers: pc.Modifiers, Ability: pc.Ability}}
	}

	out := make([]RollContext, 0, len(pc.Targets))
	for _, t := range pc.Targets {
		out = append(out, RollContext{
			Modifiers: pc.Modifiers.Add(t.Modifiers),
			Ability:   pc.Ability,
			Target:    t.UUID,
		})
	}
	return out
}

package powerroll

import (
	"github.com/KirkDiggler/vagabond-api/internal/dialogs"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
)

// Evaluation controls what happens to the per-target rolls
type Evaluation string

// Evaluation modes
const (
	// EvaluationNone returns the rolls unevaluated
	EvaluationNone Evaluation = "none"
	// EvaluationEvaluate rolls them without posting
	EvaluationEvaluate Evaluation = "evaluate"
	// EvaluationMessage rolls them and posts one chat message per roll
	EvaluationMessage Evaluation = "message"
)

// ValidEvaluations lists the evaluation modes
func ValidEvaluations() []string {
	return []string{string(EvaluationNone), string(EvaluationEvaluate), string(EvaluationMessage)}
}

// PromptInput contains the parameters for a power roll prompt
type PromptInput struct {
	// User authors any posted messages and is used to find a default actor
	User *entities.User

	// Actor defaults to the speaker resolver's answer for User
	Actor *entities.Actor

	Type       rolls.Type
	Evaluation Evaluation
	Formula    string

	// Data defaults to the actor's roll data
	Data map[string]int

	Modifiers      rolls.Modifiers
	Targets        []dialogs.Target
	Ability        string
	Characteristic string
	Skills         []string
	Flavor         string

	// Dialog overrides the configured dialog for this prompt
	Dialog dialogs.Dialog
}

// PromptOutput is a completed batch: the base roll first, then one roll per
// dialog row, all sharing the base roll's dice.
type PromptOutput struct {
	RollMode   entities.RollMode
	PowerRolls []*rolls.PowerRoll
	Messages   []*entities.ChatMessage
}

// Base returns the base roll
func (o *PromptOutput) Base() *rolls.PowerRoll {
	if o == nil || len(o.PowerRolls) == 0 {
		return nil
	}
	return o.PowerRolls[0]
}

// Derived returns the per-target rolls
func (o *PromptOutput) Derived() []*rolls.PowerRoll {
	if o == nil || len(o.PowerRolls) < 2 {
		return nil
	}
	return o.PowerRolls[1:]
}

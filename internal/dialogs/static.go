package dialogs

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
)

// Static confirms every prompt with the default rolls. It is used by the
// API and CLI where modifiers arrive with the request.
type Static struct {
	RollMode entities.RollMode
	Skill    string
	Damage   string

	// Cancel makes every prompt resolve as cancelled
	Cancel bool
}

// Prompt returns the default rolls for the request
func (s *Static) Prompt(ctx context.Context, req *Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Cancel {
		slog.Debug("Static dialog cancelled prompt", "title", req.Window.Title)
		return nil, nil
	}

	mode := s.RollMode
	if mode == "" {
		mode = entities.RollModePublic
	}

	return &Result{
		Rolls:    DefaultRolls(req.Context),
		RollMode: mode,
		Damage:   s.Damage,
		Skill:    s.Skill,
	}, nil
}

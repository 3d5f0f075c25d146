package tui

import (
	"context"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KirkDiggler/vagabond-api/internal/dialogs"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/i18n"
)

// Config holds the terminal dialog dependencies
type Config struct {
	Input     io.Reader
	Output    io.Writer
	Localizer i18n.Localizer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Input == nil {
		vb.RequiredField("Input")
	}
	if c.Output == nil {
		vb.RequiredField("Output")
	}

	return vb.Build()
}

// Dialog runs the modifier prompt in the terminal
type Dialog struct {
	input  io.Reader
	output io.Writer
	loc    i18n.Localizer
}

// New creates a terminal dialog
func New(cfg *Config) (*Dialog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Dialog{
		input:  cfg.Input,
		output: cfg.Output,
		loc:    cfg.Localizer,
	}, nil
}

var _ dialogs.Dialog = (*Dialog)(nil)

// Prompt blocks until the user confirms or cancels
func (d *Dialog) Prompt(ctx context.Context, req *dialogs.Request) (*dialogs.Result, error) {
	if req == nil {
		return nil, errors.InvalidArgument("request is required")
	}

	program := tea.NewProgram(
		NewModel(req, d.loc),
		tea.WithContext(ctx),
		tea.WithInput(d.input),
		tea.WithOutput(d.output),
	)

	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "prompt interrupted")
		}
		return nil, errors.Wrap(err, "failed to run prompt")
	}

	m, ok := final.(Model)
	if !ok {
		return nil, errors.Internalf("unexpected model type %T", final)
	}

	res := m.Result()
	slog.Debug("Terminal prompt finished",
		"title", req.Window.Title,
		"cancelled", res == nil,
	)
	return res, nil
}

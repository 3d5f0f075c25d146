// Package dice provides the roll formula model used by power rolls: a parsed
// sequence of die, operator and numeric terms that is evaluated exactly once.
package dice

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/vagabond-api/internal/errors"
)

// Term classes used in serialized term data
const (
	ClassDie      = "Die"
	ClassOperator = "OperatorTerm"
	ClassNumeric  = "NumericTerm"
)

// TermOptions carries presentation metadata for a term
type TermOptions struct {
	Flavor string `json:"flavor,omitempty"`

	// RollOrder orders dice animation; terms sharing a result elsewhere in a
	// batch use a high value so they are shown once.
	RollOrder int `json:"rollOrder,omitempty"`
}

// Term is one element of a roll formula
type Term interface {
	// Expression is the canonical formula fragment without flavor
	Expression() string
	Flavor() string
	Data() TermData
}

// TermData is the serializable form of a term
type TermData struct {
	Class     string      `json:"class"`
	Number    int         `json:"number,omitempty"`
	Faces     int         `json:"faces,omitempty"`
	Operator  string      `json:"operator,omitempty"`
	Results   []int       `json:"results,omitempty"`
	Evaluated bool        `json:"evaluated,omitempty"`
	Options   TermOptions `json:"options"`
}

// DieTerm is a group of identical dice such as 2d10
type DieTerm struct {
	Number  int
	Faces   int
	Results []int
	Options TermOptions

	evaluated bool
}

// Limits on a single die group. Formulas arrive from API callers and the
// roller allocates one slot per die.
const (
	MaxDice  = 100
	MaxFaces = 1000
)

// NewDieTerm creates an unevaluated die group
func NewDieTerm(number, faces int) (*DieTerm, error) {
	if number <= 0 || faces <= 0 {
		return nil, errors.InvalidArgumentf("dice count and size must be positive: %dd%d", number, faces)
	}
	if number > MaxDice || faces > MaxFaces {
		return nil, errors.InvalidArgumentf("die group %dd%d exceeds %dd%d", number, faces, MaxDice, MaxFaces)
	}
	return &DieTerm{Number: number, Faces: faces}, nil
}

func (d *DieTerm) Expression() string { return fmt.Sprintf("%dd%d", d.Number, d.Faces) }
func (d *DieTerm) Flavor() string     { return d.Options.Flavor }

// Evaluated reports whether the dice have been rolled
func (d *DieTerm) Evaluated() bool { return d.evaluated }

// Total is the sum of the rolled faces, zero before evaluation
func (d *DieTerm) Total() int {
	total := 0
	for _, r := range d.Results {
		total += r
	}
	return total
}

// roll draws faces for the group. A group that already carries results keeps
// them, which is what lets one draw be shared by several rolls.
func (d *DieTerm) roll(roller Roller) error {
	if d.evaluated {
		return nil
	}

	results, err := roller.RollN(d.Number, d.Faces)
	if err != nil {
		return errors.Wrapf(err, "failed to roll %s", d.Expression())
	}
	if len(results) != d.Number {
		return errors.Internalf("roller returned %d results for %s", len(results), d.Expression())
	}

	d.Results = results
	d.evaluated = true
	return nil
}

func (d *DieTerm) Data() TermData {
	results := make([]int, len(d.Results))
	copy(results, d.Results)
	return TermData{
		Class:     ClassDie,
		Number:    d.Number,
		Faces:     d.Faces,
		Results:   results,
		Evaluated: d.evaluated,
		Options:   d.Options,
	}
}

// OperatorTerm joins two terms, "+" or "-"
type OperatorTerm struct {
	Operator string
	Options  TermOptions
}

// NewOperatorTerm creates an operator term
func NewOperatorTerm(operator string) (*OperatorTerm, error) {
	if operator != "+" && operator != "-" {
		return nil, errors.InvalidArgumentf("unsupported operator: %q", operator)
	}
	return &OperatorTerm{Operator: operator}, nil
}

func (o *OperatorTerm) Expression() string { return o.Operator }
func (o *OperatorTerm) Flavor() string     { return o.Options.Flavor }

func (o *OperatorTerm) Data() TermData {
	return TermData{Class: ClassOperator, Operator: o.Operator, Options: o.Options}
}

func (o *OperatorTerm) sign() int {
	if o.Operator == "-" {
		return -1
	}
	return 1
}

// NumericTerm is a flat number
type NumericTerm struct {
	Number  int
	Options TermOptions
}

// NewNumericTerm creates a flat number term with an optional flavor label
func NewNumericTerm(number int, flavor string) *NumericTerm {
	return &NumericTerm{Number: number, Options: TermOptions{Flavor: flavor}}
}

func (n *NumericTerm) Expression() string { return strconv.Itoa(n.Number) }
func (n *NumericTerm) Flavor() string     { return n.Options.Flavor }

func (n *NumericTerm) Data() TermData {
	return TermData{Class: ClassNumeric, Number: n.Number, Options: n.Options}
}

// TermFromData reconstructs a term from its serialized form
func TermFromData(data TermData) (Term, error) {
	switch data.Class {
	case ClassDie:
		die, err := NewDieTerm(data.Number, data.Faces)
		if err != nil {
			return nil, err
		}
		die.Options = data.Options
		if data.Evaluated {
			if len(data.Results) != data.Number {
				return nil, errors.InvalidArgumentf("die term %s has %d results", die.Expression(), len(data.Results))
			}
			die.Results = append([]int(nil), data.Results...)
			die.evaluated = true
		}
		return die, nil
	case ClassOperator:
		op, err := NewOperatorTerm(data.Operator)
		if err != nil {
			return nil, err
		}
		op.Options = data.Options
		return op, nil
	case ClassNumeric:
		return &NumericTerm{Number: data.Number, Options: data.Options}, nil
	default:
		return nil, errors.InvalidArgumentf("unknown term class: %q", data.Class)
	}
}

// CloneTerm copies a term through its serialized form and applies the given
// option overrides to the copy.
func CloneTerm(term Term, overrides ...func(*TermOptions)) (Term, error) {
	if term == nil {
		return nil, errors.InvalidArgument("term is required")
	}

	raw, err := json.Marshal(term.Data())
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal term")
	}

	var data TermData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal term")
	}

	for _, override := range overrides {
		override(&data.Options)
	}

	return TermFromData(data)
}

// WithRollOrder overrides the roll order of a cloned term
func WithRollOrder(order int) func(*TermOptions) {
	return func(o *TermOptions) {
		o.RollOrder = order
	}
}

package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=dicemock github.com/KirkDiggler/vagabond-api/internal/dice Roller

import (
	"context"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/vagabond-api/internal/errors"
)

// Roller draws die faces. It is satisfied by the rpg-toolkit rollers.
type Roller interface {
	Roll(size int) (int, error)
	RollN(count, size int) ([]int, error)
}

// DefaultRoller is the cryptographically random roller from rpg-toolkit
var DefaultRoller Roller = toolkitdice.DefaultRoller

// Roll is a parsed formula that can be evaluated once
type Roll struct {
	formula   string
	terms     []Term
	data      map[string]int
	total     int
	evaluated bool
}

// NewRoll parses formula against the roll data bag
func NewRoll(formula string, data map[string]int) (*Roll, error) {
	terms, err := ParseFormula(formula, data)
	if err != nil {
		return nil, err
	}

	r := &Roll{terms: terms, data: data}
	r.ResetFormula()
	return r, nil
}

// Terms returns the terms in formula order
func (r *Roll) Terms() []Term {
	terms := make([]Term, len(r.terms))
	copy(terms, r.terms)
	return terms
}

// SetTerm replaces the term at index i
func (r *Roll) SetTerm(i int, term Term) error {
	if r.evaluated {
		return errors.FailedPrecondition("cannot modify an evaluated roll")
	}
	if term == nil {
		return errors.InvalidArgument("term is required")
	}
	if i < 0 || i >= len(r.terms) {
		return errors.OutOfRangef("term index %d out of range [0,%d)", i, len(r.terms))
	}
	r.terms[i] = term
	return nil
}

// AppendTerms adds terms to the end of the formula. ResetFormula must be
// called afterwards for Formula to reflect them.
func (r *Roll) AppendTerms(terms ...Term) error {
	if r.evaluated {
		return errors.FailedPrecondition("cannot modify an evaluated roll")
	}
	r.terms = append(r.terms, terms...)
	return nil
}

// ResetFormula recomputes the canonical formula from the current terms
func (r *Roll) ResetFormula() {
	r.formula = FormatTerms(r.terms)
}

// Formula is the canonical formula string
func (r *Roll) Formula() string { return r.formula }

// Data is the roll data bag the formula was parsed against
func (r *Roll) Data() map[string]int { return r.data }

// Evaluated reports whether Evaluate has succeeded
func (r *Roll) Evaluated() bool { return r.evaluated }

// Evaluate rolls every die group and fixes the total. A roll can only be
// evaluated once.
func (r *Roll) Evaluate(ctx context.Context, roller Roller) error {
	if r.evaluated {
		return errors.FailedPrecondition("roll has already been evaluated")
	}
	if err := ctx.Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeCanceled, "roll evaluation canceled")
	}
	if roller == nil {
		roller = DefaultRoller
	}

	total := 0
	sign := 1
	for _, term := range r.terms {
		switch t := term.(type) {
		case *OperatorTerm:
			sign *= t.sign()
			continue
		case *DieTerm:
			if err := t.roll(roller); err != nil {
				return err
			}
			total += sign * t.Total()
		case *NumericTerm:
			total += sign * t.Number
		default:
			return errors.Internalf("unsupported term type %T", term)
		}
		sign = 1
	}

	r.total = total
	r.evaluated = true
	return nil
}

// Total is the evaluated sum; ok is false before evaluation
func (r *Roll) Total() (int, bool) {
	if !r.evaluated {
		return 0, false
	}
	return r.total, true
}

// Dice returns the die groups in formula order
func (r *Roll) Dice() []*DieTerm {
	var dice []*DieTerm
	for _, term := range r.terms {
		if d, ok := term.(*DieTerm); ok {
			dice = append(dice, d)
		}
	}
	return dice
}

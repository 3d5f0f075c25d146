package dice

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/vagabond-api/internal/errors"
)

var (
	// One formula token with an optional [flavor] suffix: NdM, a number,
	// an @reference, or an operator.
	tokenRegex = regexp.MustCompile(`^\s*(?:(\d*)d(\d+)|(\d+)|@([\w.]+)|([+-]))(?:\[([^\]]*)\])?`)
)

// ParseFormula turns a formula such as "2d10 + @might + 2[Favor]" into terms.
// References are resolved from data; a missing reference resolves to zero.
func ParseFormula(formula string, data map[string]int) ([]Term, error) {
	rest := strings.TrimSpace(formula)
	if rest == "" {
		return nil, errors.InvalidArgument("formula is required")
	}

	var terms []Term
	expectOperand := true
	for strings.TrimSpace(rest) != "" {
		m := tokenRegex.FindStringSubmatch(rest)
		if m == nil {
			return nil, errors.InvalidArgumentf("invalid formula %q near %q", formula, strings.TrimSpace(rest))
		}
		rest = rest[len(m[0]):]
		flavor := m[6]

		switch {
		case m[5] != "":
			op, err := NewOperatorTerm(m[5])
			if err != nil {
				return nil, err
			}
			op.Options.Flavor = flavor
			terms = append(terms, op)
			expectOperand = true
			continue
		case !expectOperand:
			return nil, errors.InvalidArgumentf("invalid formula %q: missing operator before %q", formula, strings.TrimSpace(m[0]))
		case m[2] != "":
			count := 1
			if m[1] != "" {
				n, err := strconv.Atoi(m[1])
				if err != nil {
					return nil, errors.InvalidArgumentf("invalid dice count in formula: %s", formula)
				}
				count = n
			}
			faces, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, errors.InvalidArgumentf("invalid die size in formula: %s", formula)
			}
			die, err := NewDieTerm(count, faces)
			if err != nil {
				return nil, err
			}
			die.Options.Flavor = flavor
			terms = append(terms, die)
		case m[3] != "":
			n, err := strconv.Atoi(m[3])
			if err != nil {
				return nil, errors.InvalidArgumentf("invalid number in formula: %s", formula)
			}
			terms = append(terms, NewNumericTerm(n, flavor))
		case m[4] != "":
			value, ok := data[m[4]]
			if !ok {
				slog.Warn("Formula reference not found in roll data",
					"formula", formula,
					"reference", m[4],
				)
			}
			terms = append(terms, NewNumericTerm(value, flavor))
		}
		expectOperand = false
	}

	if expectOperand {
		return nil, errors.InvalidArgumentf("invalid formula %q: trailing operator", formula)
	}

	return terms, nil
}

// FormatTerms renders terms as a canonical formula string
func FormatTerms(terms []Term) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		part := t.Expression()
		if f := t.Flavor(); f != "" {
			part += "[" + f + "]"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}

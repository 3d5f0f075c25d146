package rolls

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/i18n"
)

// TargetResolver looks up the actor a roll was made against
type TargetResolver interface {
	ResolveTarget(ctx context.Context, id string) (*entities.Actor, error)
}

// TierContext is the tier portion of a render context
type TierContext struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// ModifierContext describes the net favor for display
type ModifierContext struct {
	Number int    `json:"number"`
	Mod    string `json:"mod"`
}

// RenderContext is everything a chat card needs to show a power roll
type RenderContext struct {
	Formula  string          `json:"formula"`
	Flavor   string          `json:"flavor,omitempty"`
	Total    int             `json:"total"`
	Dice     []int           `json:"dice,omitempty"`
	Tier     TierContext     `json:"tier"`
	Modifier ModifierContext `json:"modifier"`
	Target   *entities.Actor `json:"target,omitempty"`
	BaseRoll bool            `json:"base_roll"`
	Critical string          `json:"critical,omitempty"`
}

var favorLabels = map[int]string{
	-2: LabelHinders,
	-1: LabelHinder,
	1:  LabelFavor,
	2:  LabelFavors,
}

// RenderContext builds the display context. The roll must be evaluated.
// A nil resolver leaves only the target id on the context.
func (p *PowerRoll) RenderContext(ctx context.Context, loc i18n.Localizer, resolver TargetResolver) (*RenderContext, error) {
	product, ok := p.Product()
	if !ok {
		return nil, errors.FailedPrecondition("power roll has not been evaluated")
	}
	if loc == nil {
		loc = i18n.DefaultLocalizer()
	}

	tier := resultTiers[product-1]
	total, _ := p.Total()

	rc := &RenderContext{
		Formula: p.Formula(),
		Flavor:  p.options.Flavor,
		Total:   total,
		Tier: TierContext{
			Label: loc.Localize(tier.Label),
			Class: tier.Name,
		},
		Modifier: ModifierContext{
			Number: abs(p.NetFavor()),
		},
		BaseRoll: p.options.BaseRoll,
	}
	if groups := p.Dice(); len(groups) > 0 {
		rc.Dice = append([]int(nil), groups[0].Results...)
	}
	if key, ok := favorLabels[p.NetFavor()]; ok {
		rc.Modifier.Mod = loc.Localize(key)
	}

	if p.options.Target != "" {
		rc.Target = &entities.Actor{ID: p.options.Target}
		if resolver != nil {
			target, err := resolver.ResolveTarget(ctx, p.options.Target)
			if err != nil && !errors.IsNotFound(err) {
				return nil, errors.Wrapf(err, "failed to resolve target %s", p.options.Target)
			}
			if target != nil {
				rc.Target = target
			}
		}
	}

	critical, _ := p.IsCritical()
	nat20, _ := p.IsNat20()
	if critical || nat20 {
		rc.Critical = "critical"
	}

	return rc, nil
}

// String renders a one-line summary such as "Tier 2 (14) [7, 5] Favor"
func (rc *RenderContext) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)", rc.Tier.Label, rc.Total)
	if len(rc.Dice) > 0 {
		faces := make([]string, len(rc.Dice))
		for i, d := range rc.Dice {
			faces[i] = fmt.Sprint(d)
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(faces, ", "))
	}
	if rc.Modifier.Mod != "" {
		b.WriteString(" " + rc.Modifier.Mod)
	}
	if rc.Target != nil {
		name := rc.Target.Name
		if name == "" {
			name = rc.Target.ID
		}
		b.WriteString(" vs " + name)
	}
	if rc.Critical != "" {
		b.WriteString(" " + rc.Critical)
	}
	return b.String()
}

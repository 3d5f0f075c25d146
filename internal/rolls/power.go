// Package rolls implements power rolls: 2d10 plus edges, banes and bonuses,
// classified into one of three tiers with critical and natural 20 handling.
package rolls

import (
	"context"
	"math"

	"github.com/KirkDiggler/vagabond-api/internal/dice"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/i18n"
)

// Type is the kind of power roll
type Type string

// Power roll types
const (
	TypeAbility Type = "ability"
	TypeTest    Type = "test"
)

const (
	// DefaultFormula is two ten-sided dice
	DefaultFormula = "2d10"

	// DefaultCriticalThreshold is the natural result that forces tier 3
	DefaultCriticalThreshold = 19

	MaxEdge = 2
	MaxBane = 2

	// favorValue is the flat adjustment for a single net edge or bane
	favorValue = 2
)

// Localization keys
const (
	LabelFavor   = "VAGABOND.Roll.Power.Modifier.Favor"
	LabelFavors  = "VAGABOND.Roll.Power.Modifier.Favors"
	LabelHinder  = "VAGABOND.Roll.Power.Modifier.Hinder"
	LabelHinders = "VAGABOND.Roll.Power.Modifier.Hinders"
	LabelBonuses = "VAGABOND.Roll.Power.Modifier.Bonuses"
)

// TypeInfo describes a power roll type for display
type TypeInfo struct {
	Label string
	Icon  string
}

var types = map[Type]TypeInfo{
	TypeAbility: {Label: "VAGABOND.Roll.Power.Types.Ability", Icon: "fa-solid fa-bolt"},
	TypeTest:    {Label: "VAGABOND.Roll.Power.Types.Test", Icon: "fa-solid fa-dice"},
}

// Valid reports whether t is a known power roll type
func (t Type) Valid() bool {
	_, ok := types[t]
	return ok
}

// Info returns the display info for t
func (t Type) Info() TypeInfo {
	return types[t]
}

// ValidTypes lists the power roll types
func ValidTypes() []string {
	return []string{string(TypeAbility), string(TypeTest)}
}

// Tier is one row of the result tier table
type Tier struct {
	Name      string
	Label     string
	Threshold int
}

var resultTiers = []Tier{
	{Name: "tier1", Label: "VAGABOND.Roll.Power.Tiers.One", Threshold: math.MinInt},
	{Name: "tier2", Label: "VAGABOND.Roll.Power.Tiers.Two", Threshold: 12},
	{Name: "tier3", Label: "VAGABOND.Roll.Power.Tiers.Three", Threshold: 17},
}

// ResultTiers returns the tier table in ascending order
func ResultTiers() []Tier {
	return append([]Tier(nil), resultTiers...)
}

// Modifiers are the edges, banes and flat bonuses applied to a roll
type Modifiers struct {
	Edges   int `json:"edges"`
	Banes   int `json:"banes"`
	Bonuses int `json:"bonuses"`
}

// Add returns the field-wise sum of m and o
func (m Modifiers) Add(o Modifiers) Modifiers {
	return Modifiers{
		Edges:   m.Edges + o.Edges,
		Banes:   m.Banes + o.Banes,
		Bonuses: m.Bonuses + o.Bonuses,
	}
}

// Options configure a power roll
type Options struct {
	Type              Type
	CriticalThreshold int
	Modifiers

	// AppliedModifier is set once favor and bonus terms are in the formula
	AppliedModifier bool

	BaseRoll        bool
	Target          string
	Ability         string
	Skill           string
	DamageSelection string
	Flavor          string
}

// Config holds the inputs for a power roll
type Config struct {
	// Formula defaults to 2d10
	Formula string
	Data    map[string]int
	Options Options

	// Localizer labels favor and bonus terms; defaults to the embedded catalog
	Localizer i18n.Localizer
}

// Validate checks the config after defaults are applied
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("Options.Type", string(c.Options.Type), ValidTypes(), vb)

	return vb.Build()
}

func (c *Config) applyDefaults() {
	if c.Formula == "" {
		c.Formula = DefaultFormula
	}
	if c.Options.Type == "" {
		c.Options.Type = TypeTest
	}
	if c.Options.CriticalThreshold == 0 {
		c.Options.CriticalThreshold = DefaultCriticalThreshold
	}
	if c.Localizer == nil {
		c.Localizer = i18n.DefaultLocalizer()
	}
}

// PowerRoll is a roll classified into tiers
type PowerRoll struct {
	roll    *dice.Roll
	options Options
}

// New builds a power roll. Edges and banes are clamped to [0,2]; a net favor
// of exactly one adds a flat +2 or -2 term and nonzero bonuses add their own
// term, unless the options say this was already done.
func New(cfg *Config) (*PowerRoll, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	c := *cfg
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "power rolls must be an ability or test")
	}

	roll, err := dice.NewRoll(c.Formula, c.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse power roll formula")
	}

	p := &PowerRoll{
		roll:    roll,
		options: c.Options,
	}
	p.options.Edges = clamp(p.options.Edges, 0, MaxEdge)
	p.options.Banes = clamp(p.options.Banes, 0, MaxBane)

	if !p.options.AppliedModifier {
		if err := p.applyModifiers(c.Localizer); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *PowerRoll) applyModifiers(loc i18n.Localizer) error {
	netFavor := p.NetFavor()
	if abs(netFavor) == 1 {
		label := LabelFavor
		if netFavor < 0 {
			label = LabelHinder
		}
		if err := p.appendFlat(sign(netFavor), favorValue, loc.Localize(label)); err != nil {
			return err
		}
	}

	if p.options.Bonuses != 0 {
		if err := p.appendFlat(sign(p.options.Bonuses), abs(p.options.Bonuses), loc.Localize(LabelBonuses)); err != nil {
			return err
		}
	}

	p.roll.ResetFormula()
	p.options.AppliedModifier = true
	return nil
}

func (p *PowerRoll) appendFlat(direction, value int, flavor string) error {
	operator := "+"
	if direction < 0 {
		operator = "-"
	}
	op, err := dice.NewOperatorTerm(operator)
	if err != nil {
		return err
	}
	return p.roll.AppendTerms(op, dice.NewNumericTerm(value, flavor))
}

// Options returns a copy of the roll options
func (p *PowerRoll) Options() Options { return p.options }

// Formula is the canonical formula including favor and bonus terms
func (p *PowerRoll) Formula() string { return p.roll.Formula() }

// Terms returns the formula terms
func (p *PowerRoll) Terms() []dice.Term { return p.roll.Terms() }

// FirstTerm returns the leading die group term
func (p *PowerRoll) FirstTerm() dice.Term {
	terms := p.roll.Terms()
	if len(terms) == 0 {
		return nil
	}
	return terms[0]
}

// FirstDice returns the first die group, which supplies the natural result.
// It is nil for a formula without dice.
func (p *PowerRoll) FirstDice() *dice.DieTerm {
	if i := p.firstDiceIndex(); i >= 0 {
		return p.roll.Terms()[i].(*dice.DieTerm)
	}
	return nil
}

// ReplaceFirstDice swaps the first die group wherever it sits in the formula,
// used to share one die result across a batch. It fails once the roll is
// evaluated or when the formula has no dice.
func (p *PowerRoll) ReplaceFirstDice(term *dice.DieTerm) error {
	i := p.firstDiceIndex()
	if i < 0 {
		return errors.InvalidArgumentf("formula %q has no dice to share", p.Formula())
	}
	return p.roll.SetTerm(i, term)
}

func (p *PowerRoll) firstDiceIndex() int {
	for i, term := range p.roll.Terms() {
		if _, ok := term.(*dice.DieTerm); ok {
			return i
		}
	}
	return -1
}

// Evaluate rolls the dice. A power roll is evaluated at most once.
func (p *PowerRoll) Evaluate(ctx context.Context, roller dice.Roller) error {
	return p.roll.Evaluate(ctx, roller)
}

// Evaluated reports whether the roll has been evaluated
func (p *PowerRoll) Evaluated() bool { return p.roll.Evaluated() }

// Total is the evaluated sum including modifiers
func (p *PowerRoll) Total() (int, bool) { return p.roll.Total() }

// Dice returns the die groups
func (p *PowerRoll) Dice() []*dice.DieTerm { return p.roll.Dice() }

// IsValidPowerRoll reports whether the first term is exactly 2d10
func (p *PowerRoll) IsValidPowerRoll() bool {
	die, ok := p.FirstTerm().(*dice.DieTerm)
	return ok && die.Number == 2 && die.Faces == 10
}

// NetFavor is edges minus banes, in [-2,2]
func (p *PowerRoll) NetFavor() int {
	return p.options.Edges - p.options.Banes
}

// NaturalResult is the summed face value of the first die group
func (p *PowerRoll) NaturalResult() (int, bool) {
	if !p.roll.Evaluated() {
		return 0, false
	}
	groups := p.roll.Dice()
	if len(groups) == 0 {
		return 0, false
	}
	return groups[0].Total(), true
}

// IsNat20 is not ok when unevaluated or not a valid power roll
func (p *PowerRoll) IsNat20() (bool, bool) {
	natural, ok := p.NaturalResult()
	if !ok || !p.IsValidPowerRoll() {
		return false, false
	}
	return natural >= 20, true
}

// IsCritical reports whether the natural result meets the critical threshold
func (p *PowerRoll) IsCritical() (bool, bool) {
	natural, ok := p.NaturalResult()
	if !ok {
		return false, false
	}
	return natural >= p.options.CriticalThreshold, true
}

// Product is the numeric tier, 1 to 3
func (p *PowerRoll) Product() (int, bool) {
	total, ok := p.roll.Total()
	if !ok {
		return 0, false
	}
	if critical, _ := p.IsCritical(); critical {
		return 3, true
	}

	tier := 0
	for _, t := range resultTiers {
		if total >= t.Threshold {
			tier++
		}
	}

	// A double edge or bane shifts the tier by one
	netFavor := p.NetFavor()
	adjustment := netFavor - sign(netFavor)
	return clamp(tier+adjustment, 1, len(resultTiers)), true
}

// Tier is the tier name, "tier1" to "tier3"
func (p *PowerRoll) Tier() (string, bool) {
	product, ok := p.Product()
	if !ok {
		return "", false
	}
	return resultTiers[product-1].Name, true
}

// Record summarizes the roll for storage
func (p *PowerRoll) Record() entities.RollRecord {
	record := entities.RollRecord{
		Formula:  p.Formula(),
		Type:     string(p.options.Type),
		NetFavor: p.NetFavor(),
		Target:   p.options.Target,
		BaseRoll: p.options.BaseRoll,
		Flavor:   p.options.Flavor,
	}
	if d := p.roll.Dice(); len(d) > 0 {
		record.Dice = append([]int(nil), d[0].Results...)
	}
	record.NaturalResult, _ = p.NaturalResult()
	record.Total, _ = p.Total()
	record.Tier, _ = p.Product()
	record.Critical, _ = p.IsCritical()
	record.Nat20, _ = p.IsNat20()
	return record
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Package rules holds the static game tables for the Vagabond system.
//
// A Rules value is built once at startup and handed to the services that need
// it. Labels are localization keys; callers resolve them through i18n.
package rules

import (
	"math"
	"sort"
	"strings"
)

// Characteristic keys
const (
	CharacteristicMight     = "might"
	CharacteristicAgility   = "agility"
	CharacteristicReason    = "reason"
	CharacteristicIntuition = "intuition"
	CharacteristicPresence  = "presence"
)

// Condition ids
const (
	ConditionBleeding   = "bleeding"
	ConditionDazed      = "dazed"
	ConditionFrightened = "frightened"
	ConditionGrabbed    = "grabbed"
	ConditionProne      = "prone"
	ConditionRestrained = "restrained"
	ConditionSlowed     = "slowed"
	ConditionTaunted    = "taunted"
	ConditionWeakened   = "weakened"
)

// Hero token spend keys
const (
	SpendGainSurges    = "gainSurges"
	SpendSucceedSave   = "succeedSave"
	SpendImproveTest   = "improveTest"
	SpendRegainStamina = "regainStamina"
)

// Characteristic is one of the five core stats
type Characteristic struct {
	Key     string
	Label   string
	Hint    string
	RollKey string
}

// Condition is a status an actor can carry
type Condition struct {
	ID         string
	Label      string
	Targeted   bool
	MaxSources int
}

// SkillGroup groups skills for selection lists
type SkillGroup struct {
	Key   string
	Label string
}

// Skill can be applied to a test
type Skill struct {
	Key   string
	Group string
	Label string
}

// TokenSpend is a named way to spend hero tokens
type TokenSpend struct {
	Key            string
	Label          string
	Tokens         int
	MessageContent string
}

// Echelon is a band of character levels
type Echelon struct {
	Level     int
	Label     string
	Threshold int
}

// Rules is the immutable rules table
type Rules struct {
	characteristics []Characteristic
	conditions      []Condition
	skillGroups     []SkillGroup
	skills          []Skill
	tokenSpends     []TokenSpend
	echelons        []Echelon

	characteristicByKey map[string]Characteristic
	conditionByID       map[string]Condition
	skillByKey          map[string]Skill
	tokenSpendByKey     map[string]TokenSpend
}

// Default returns the standard Vagabond rules
func Default() *Rules {
	r := &Rules{
		characteristics: []Characteristic{
			characteristic(CharacteristicMight, "M"),
			characteristic(CharacteristicAgility, "A"),
			characteristic(CharacteristicReason, "R"),
			characteristic(CharacteristicIntuition, "I"),
			characteristic(CharacteristicPresence, "P"),
		},
		conditions: []Condition{
			condition(ConditionBleeding, false, 0),
			condition(ConditionDazed, false, 0),
			condition(ConditionFrightened, true, 1),
			condition(ConditionGrabbed, true, 0),
			condition(ConditionProne, false, 0),
			condition(ConditionRestrained, false, 0),
			condition(ConditionSlowed, false, 0),
			condition(ConditionTaunted, true, 1),
			condition(ConditionWeakened, false, 0),
		},
		tokenSpends: []TokenSpend{
			tokenSpend(SpendGainSurges, 1),
			tokenSpend(SpendSucceedSave, 1),
			tokenSpend(SpendImproveTest, 1),
			tokenSpend(SpendRegainStamina, 2),
		},
		echelons: []Echelon{
			{Level: 1, Label: "VAGABOND.Echelon.1", Threshold: math.MinInt},
			{Level: 2, Label: "VAGABOND.Echelon.2", Threshold: 4},
			{Level: 3, Label: "VAGABOND.Echelon.3", Threshold: 7},
			{Level: 4, Label: "VAGABOND.Echelon.4", Threshold: 10},
		},
	}

	for _, group := range []string{"crafting", "exploration", "interpersonal", "intrigue", "lore"} {
		r.skillGroups = append(r.skillGroups, SkillGroup{
			Key:   group,
			Label: "VAGABOND.Skill.Group." + upperFirst(group),
		})
	}
	for group, keys := range skillList {
		for _, key := range keys {
			r.skills = append(r.skills, Skill{
				Key:   key,
				Group: group,
				Label: "VAGABOND.Skill.List." + upperFirst(key),
			})
		}
	}
	sort.Slice(r.skills, func(i, j int) bool { return r.skills[i].Key < r.skills[j].Key })

	r.index()
	return r
}

var skillList = map[string][]string{
	"crafting": {
		"alchemy", "architecture", "blacksmithing", "fletching", "forgery",
		"jewelry", "mechanics", "tailoring",
	},
	"exploration": {
		"climb", "drive", "endurance", "gymnastics", "heal", "jump", "lift",
		"navigate", "ride", "swim",
	},
	"interpersonal": {
		"brag", "empathize", "flirt", "gamble", "handleAnimals", "interrogate",
		"intimidate", "lead", "lie", "music", "perform", "persuade", "readPerson",
	},
	"intrigue": {
		"alertness", "concealObject", "disguise", "eavesdrop", "escapeArtist",
		"hide", "pickLock", "pickPocket", "sabotage", "search", "sneak", "track",
	},
	"lore": {
		"culture", "criminalUnderworld", "history", "magic", "monsters",
		"nature", "psionics", "religion", "rumors", "society", "timescape",
	},
}

func characteristic(key, rollKey string) Characteristic {
	return Characteristic{
		Key:     key,
		Label:   "VAGABOND.Actor.characteristics." + key + ".full",
		Hint:    "VAGABOND.Actor.characteristics." + key + ".abbreviation",
		RollKey: rollKey,
	}
}

func condition(id string, targeted bool, maxSources int) Condition {
	return Condition{
		ID:         id,
		Label:      "VAGABOND.Effect.Conditions." + upperFirst(id) + ".name",
		Targeted:   targeted,
		MaxSources: maxSources,
	}
}

func tokenSpend(key string, tokens int) TokenSpend {
	prefix := "VAGABOND.Setting.HeroTokens." + upperFirst(key)
	return TokenSpend{
		Key:            key,
		Label:          prefix + ".label",
		Tokens:         tokens,
		MessageContent: prefix + ".messageContent",
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (r *Rules) index() {
	r.characteristicByKey = make(map[string]Characteristic, len(r.characteristics))
	for _, c := range r.characteristics {
		r.characteristicByKey[c.Key] = c
	}
	r.conditionByID = make(map[string]Condition, len(r.conditions))
	for _, c := range r.conditions {
		r.conditionByID[c.ID] = c
	}
	r.skillByKey = make(map[string]Skill, len(r.skills))
	for _, s := range r.skills {
		r.skillByKey[s.Key] = s
	}
	r.tokenSpendByKey = make(map[string]TokenSpend, len(r.tokenSpends))
	for _, t := range r.tokenSpends {
		r.tokenSpendByKey[t.Key] = t
	}
}

// Characteristics returns the characteristics in display order
func (r *Rules) Characteristics() []Characteristic {
	return append([]Characteristic(nil), r.characteristics...)
}

// Characteristic looks up a characteristic by key
func (r *Rules) Characteristic(key string) (Characteristic, bool) {
	c, ok := r.characteristicByKey[key]
	return c, ok
}

// Conditions returns the conditions in display order
func (r *Rules) Conditions() []Condition {
	return append([]Condition(nil), r.conditions...)
}

// Condition looks up a condition by id
func (r *Rules) Condition(id string) (Condition, bool) {
	c, ok := r.conditionByID[id]
	return c, ok
}

// SkillGroups returns the skill groups in display order
func (r *Rules) SkillGroups() []SkillGroup {
	return append([]SkillGroup(nil), r.skillGroups...)
}

// Skills returns every skill sorted by key
func (r *Rules) Skills() []Skill {
	return append([]Skill(nil), r.skills...)
}

// Skill looks up a skill by key
func (r *Rules) Skill(key string) (Skill, bool) {
	s, ok := r.skillByKey[key]
	return s, ok
}

// TokenSpends returns the hero token spends in table order
func (r *Rules) TokenSpends() []TokenSpend {
	return append([]TokenSpend(nil), r.tokenSpends...)
}

// TokenSpend looks up a hero token spend by key
func (r *Rules) TokenSpend(key string) (TokenSpend, bool) {
	t, ok := r.tokenSpendByKey[key]
	return t, ok
}

// EchelonForLevel returns the highest echelon whose threshold the level meets
func (r *Rules) EchelonForLevel(level int) Echelon {
	result := r.echelons[0]
	for _, e := range r.echelons {
		if level >= e.Threshold {
			result = e
		}
	}
	return result
}

// Package entities provides core data structures for vagabond-api.
package entities

import (
	"sort"

	"github.com/KirkDiggler/vagabond-api/internal/rules"
)

// ActorType distinguishes heroes from director-controlled creatures
type ActorType string

// Actor types
const (
	ActorTypeCharacter ActorType = "character"
	ActorTypeNPC       ActorType = "npc"
)

// ActorTypes lists the actor types
func ActorTypes() []string {
	return []string{string(ActorTypeCharacter), string(ActorTypeNPC)}
}

// Characteristics holds the five core stats
type Characteristics struct {
	Might     int `json:"might"`
	Agility   int `json:"agility"`
	Reason    int `json:"reason"`
	Intuition int `json:"intuition"`
	Presence  int `json:"presence"`
}

// Actor is a character or creature that can make power rolls
type Actor struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            ActorType       `json:"type"`
	OwnerID         string          `json:"owner_id,omitempty"`
	Level           int             `json:"level"`
	Statuses        []string        `json:"statuses,omitempty"`
	Characteristics Characteristics `json:"characteristics"`

	// Derived by PrepareDerivedData
	Echelon int `json:"echelon"`
}

// HasStatus reports whether the actor carries the status
func (a *Actor) HasStatus(id string) bool {
	if a == nil {
		return false
	}
	for _, s := range a.Statuses {
		if s == id {
			return true
		}
	}
	return false
}

// AddStatus adds a status once
func (a *Actor) AddStatus(id string) {
	if a.HasStatus(id) {
		return
	}
	a.Statuses = append(a.Statuses, id)
	sort.Strings(a.Statuses)
}

// RemoveStatus drops a status if present
func (a *Actor) RemoveStatus(id string) {
	out := a.Statuses[:0]
	for _, s := range a.Statuses {
		if s != id {
			out = append(out, s)
		}
	}
	a.Statuses = out
}

// Characteristic returns the value for a characteristic key
func (a *Actor) Characteristic(key string) (int, bool) {
	switch key {
	case rules.CharacteristicMight:
		return a.Characteristics.Might, true
	case rules.CharacteristicAgility:
		return a.Characteristics.Agility, true
	case rules.CharacteristicReason:
		return a.Characteristics.Reason, true
	case rules.CharacteristicIntuition:
		return a.Characteristics.Intuition, true
	case rules.CharacteristicPresence:
		return a.Characteristics.Presence, true
	default:
		return 0, false
	}
}

// PrepareDerivedData recomputes values that depend on the rules tables.
// Callers invoke it after loading an actor and before rolling for it.
func (a *Actor) PrepareDerivedData(r *rules.Rules) {
	a.Echelon = r.EchelonForLevel(a.Level).Level
}

// RollData flattens the actor into the formula data bag, so a formula may
// reference @might or @statuses.weakened.
func (a *Actor) RollData() map[string]int {
	data := map[string]int{
		"level":   a.Level,
		"echelon": a.Echelon,
	}
	for _, key := range []string{
		rules.CharacteristicMight,
		rules.CharacteristicAgility,
		rules.CharacteristicReason,
		rules.CharacteristicIntuition,
		rules.CharacteristicPresence,
	} {
		v, _ := a.Characteristic(key)
		data[key] = v
	}
	for _, s := range a.Statuses {
		data["statuses."+s] = 1
	}
	return data
}

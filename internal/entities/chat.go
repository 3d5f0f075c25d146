package entities

import (
	"time"
)

// RollMode controls who can see a posted roll
type RollMode string

// Roll modes
const (
	RollModePublic  RollMode = "publicroll"
	RollModePrivate RollMode = "gmroll"
	RollModeBlind   RollMode = "blindroll"
	RollModeSelf    RollMode = "selfroll"
)

// Valid reports whether m is a known roll mode
func (m RollMode) Valid() bool {
	switch m {
	case RollModePublic, RollModePrivate, RollModeBlind, RollModeSelf:
		return true
	}
	return false
}

// RollModes lists the roll modes in display order
func RollModes() []RollMode {
	return []RollMode{RollModePublic, RollModePrivate, RollModeBlind, RollModeSelf}
}

// Speaker identifies who a chat message is spoken as
type Speaker struct {
	ActorID string `json:"actor_id,omitempty"`
	Alias   string `json:"alias,omitempty"`
}

// RollRecord is the stored summary of an evaluated roll
type RollRecord struct {
	Formula       string `json:"formula"`
	Type          string `json:"type"`
	Dice          []int  `json:"dice,omitempty"`
	NaturalResult int    `json:"natural_result"`
	Total         int    `json:"total"`
	Tier          int    `json:"tier"`
	NetFavor      int    `json:"net_favor"`
	Critical      bool   `json:"critical"`
	Nat20         bool   `json:"nat20"`
	Target        string `json:"target,omitempty"`
	BaseRoll      bool   `json:"base_roll,omitempty"`
	Flavor        string `json:"flavor,omitempty"`
}

// ChatMessage is one entry in the world chat log
type ChatMessage struct {
	ID        string       `json:"id"`
	Author    string       `json:"author"`
	Speaker   Speaker      `json:"speaker"`
	Content   string       `json:"content,omitempty"`
	Flavor    string       `json:"flavor,omitempty"`
	RollMode  RollMode     `json:"roll_mode,omitempty"`
	Whisper   []string     `json:"whisper,omitempty"`
	Blind     bool         `json:"blind,omitempty"`
	Rolls     []RollRecord `json:"rolls,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// VisibleTo reports whether the user can read the message
func (m *ChatMessage) VisibleTo(user *User) bool {
	if len(m.Whisper) == 0 {
		return true
	}
	if user == nil {
		return false
	}
	if m.Author == user.ID && !m.Blind {
		return true
	}
	for _, id := range m.Whisper {
		if id == user.ID {
			return true
		}
	}
	return false
}

package entities

// User is a participant connected to the world
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	IsGM          bool   `json:"is_gm"`
	CharacterName string `json:"character_name,omitempty"`

	// IsActiveGM marks the single GM session that owns writes to world
	// resources. It is a property of the running session, not stored.
	IsActiveGM bool `json:"-"`
}

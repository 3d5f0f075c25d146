package resources

import (
	"github.com/KirkDiggler/vagabond-api/internal/entities"
)

// Resources are the world's pooled counters
type Resources struct {
	HeroTokens int
	Malice     int
}

// GetResourcesOutput contains both counters
type GetResourcesOutput struct {
	Resources Resources
}

// RequestHeroTokenSpendInput asks for a hero token spend on behalf of User
type RequestHeroTokenSpendInput struct {
	User      *entities.User
	SpendType string
	Flavor    string
}

// RequestHeroTokenSpendOutput reports how the request was routed. The
// authoritative participant handles its own requests directly; everyone else
// broadcasts and hears nothing back.
type RequestHeroTokenSpendOutput struct {
	Broadcast bool
	Result    *HandleSpendHeroTokenOutput
}

// HandleSpendHeroTokenInput is the payload of a spend request
type HandleSpendHeroTokenInput struct {
	UserID    string
	SpendType string
	Flavor    string
}

// HandleSpendHeroTokenOutput is the outcome on the authoritative side
type HandleSpendHeroTokenOutput struct {
	Spent   bool
	Balance int

	// Message is the chat announcement of a successful spend
	Message *entities.ChatMessage

	// Warning is the notice shown to the director when the party is short
	Warning string
}

// UpdateMaliceInput adds Delta to the malice counter
type UpdateMaliceInput struct {
	User  *entities.User
	Delta int
}

// UpdateMaliceOutput contains the new malice value
type UpdateMaliceOutput struct {
	Previous int
	Malice   int
}

// SetHeroTokensInput replaces the hero token balance
type SetHeroTokensInput struct {
	User  *entities.User
	Value int
}

// SetHeroTokensOutput contains the new balance
type SetHeroTokensOutput struct {
	Previous   int
	HeroTokens int
}

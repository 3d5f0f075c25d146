package testutils

import (
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/rules"
	"github.com/KirkDiggler/vagabond-api/internal/testutils/builders"
)

const (
	// TestDirectorID is the user ID of the active director fixture
	TestDirectorID = "gm-1"

	// TestPlayerID is the user ID of the player fixture
	TestPlayerID = "user-1"

	// TestCharacterName is the character the player fixture speaks as
	TestCharacterName = "Talia"
)

// CreateTestDirector creates the active director for a session
func CreateTestDirector() *entities.User {
	return builders.NewUserBuilder().
		WithID(TestDirectorID).
		WithName("Director").
		AsDirector(true).
		Build()
}

// CreateTestPlayer creates a player assigned to TestCharacterName
func CreateTestPlayer() *entities.User {
	return builders.NewUserBuilder().
		WithID(TestPlayerID).
		WithName("Avery").
		WithCharacter(TestCharacterName).
		Build()
}

// CreateTestHero creates the player's character at level 4 (echelon 2)
func CreateTestHero() *entities.Actor {
	return builders.NewActorBuilder().
		WithID("hero-1").
		WithName(TestCharacterName).
		WithOwner(TestPlayerID).
		WithLevel(4).
		WithCharacteristics(2, 1, 0, 1, -1).
		BuildPrepared(rules.Default())
}

// CreateTestGoblin creates a director controlled target
func CreateTestGoblin(id string) *entities.Actor {
	return builders.NewActorBuilder().
		WithID(id).
		WithName("Goblin").
		AsNPC().
		Build()
}

package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/vagabond-api/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("msg")
	a := gen.Generate()
	b := gen.Generate()

	assert.True(t, strings.HasPrefix(a, "msg_"))
	assert.NotEqual(t, a, b)
	assert.Len(t, strings.TrimPrefix(a, "msg_"), 36)
}

func TestUUIDGeneratorIsTimeOrdered(t *testing.T) {
	gen := idgen.NewUUID("")
	prev := gen.Generate()
	for i := 0; i < 50; i++ {
		next := gen.Generate()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("roll")
	assert.Equal(t, "roll_1", gen.Generate())
	assert.Equal(t, "roll_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

package dicemock

import (
	"fmt"
	"sync"
)

// ManualRoller returns predetermined faces in order
type ManualRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualRoller creates a roller that will return rolls in order
func NewManualRoller(rolls ...int) *ManualRoller {
	return &ManualRoller{rolls: rolls}
}

// SetRolls replaces the predetermined faces
func (m *ManualRoller) SetRolls(rolls ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Used is the number of faces handed out so far
func (m *ManualRoller) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollIndex
}

func (m *ManualRoller) next(size int) (int, error) {
	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}
	roll := m.rolls[m.rollIndex]
	if roll < 1 || roll > size {
		return 0, fmt.Errorf("invalid roll %d for d%d", roll, size)
	}
	m.rollIndex++
	return roll, nil
}

// Roll returns the next predetermined face
func (m *ManualRoller) Roll(size int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next(size)
}

// RollN returns the next count predetermined faces
func (m *ManualRoller) RollN(count, size int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]int, count)
	for i := range results {
		r, err := m.next(size)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

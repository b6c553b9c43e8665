package booking

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	confirmationPrefix = "APT-"
	confirmationLen    = 9
	base36Upper        = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// IDGenerator produces confirmation ids.
type IDGenerator interface {
	NewConfirmationID() string
}

// RandomIDGenerator draws "APT-" plus nine uppercase base-36 characters.
type RandomIDGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomIDGenerator seeds from src, or from the clock when src is nil.
func NewRandomIDGenerator(src rand.Source) *RandomIDGenerator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RandomIDGenerator{rng: rand.New(src)}
}

func (g *RandomIDGenerator) NewConfirmationID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.Grow(len(confirmationPrefix) + confirmationLen)
	b.WriteString(confirmationPrefix)
	for i := 0; i < confirmationLen; i++ {
		b.WriteByte(base36Upper[g.rng.Intn(len(base36Upper))])
	}
	return b.String()
}

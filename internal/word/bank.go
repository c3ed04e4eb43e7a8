package word

import (
	"errors"
	"math/rand"
	"os"
	"strings"
)

// Tier groups words by how hard they are to draw.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Bank hands out random secret words and derives display hints.
// A Bank is immutable after construction and safe for concurrent use.
type Bank struct {
	tiers map[Tier][]string
	all   []string
}

// NewBank builds a bank from the given tiered pools. A nil map means the
// built-in pools; an entirely empty bank is a configuration error.
func NewBank(tiers map[Tier][]string) (*Bank, error) {
	if tiers == nil {
		tiers = defaultWords
	}
	b := &Bank{tiers: make(map[Tier][]string)}

	for _, t := range []Tier{TierEasy, TierMedium, TierHard} {
		pool := tiers[t]
		cleaned := make([]string, 0, len(pool))
		for _, w := range pool {
			w = strings.TrimSpace(w)
			if w != "" {
				cleaned = append(cleaned, w)
			}
		}
		b.tiers[t] = cleaned
		b.all = append(b.all, cleaned...)
	}

	if len(b.all) == 0 {
		return nil, errors.New("word bank is empty")
	}
	return b, nil
}

// Default returns a bank backed by the built-in pools.
func Default() *Bank {
	b, err := NewBank(nil)
	if err != nil {
		panic(err) // built-in pools are never empty
	}
	return b
}

// FromFile reads a newline-separated word list into the medium tier.
// PickTier falls back to the whole pool for the tiers left empty.
func FromFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words := strings.Split(string(data), "\n")
	return NewBank(map[Tier][]string{TierMedium: words})
}

// Pick returns a uniformly random word from the union of all tiers.
func (b *Bank) Pick() string {
	return b.all[rand.Intn(len(b.all))]
}

// PickTier returns a uniformly random word from one tier, falling back to
// the whole pool when that tier is empty.
func (b *Bank) PickTier(t Tier) string {
	pool := b.tiers[t]
	if len(pool) == 0 {
		return b.Pick()
	}
	return pool[rand.Intn(len(pool))]
}

// Hint masks every non-space rune of word with an underscore. Spaces stay
// as-is, so the hint always has the same length as the word.
func Hint(word string) string {
	var sb strings.Builder
	for _, r := range word {
		if r == ' ' {
			sb.WriteRune(' ')
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

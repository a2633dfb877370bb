package crypto

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/parley/parley-go/internal/wordlist"
)

const (
	// Separator joins consecutive passphrase words.
	Separator = "-"

	MaxWords = 64
)

var ErrTooManyWords = errors.New("passphrase word count must be at most 64")

// Generator draws memorable passphrases from a word list.
type Generator struct {
	words *wordlist.Wordlist
	src   Source
}

// NewGenerator creates a Generator over words using src for every draw.
func NewGenerator(words *wordlist.Wordlist, src Source) *Generator {
	return &Generator{words: words, src: src}
}

// Generate joins count independently drawn words with Separator. Words are
// drawn with replacement, so repeats are possible. A count of zero or less
// produces an empty string, which callers must treat as no passphrase.
func (g *Generator) Generate(count int) (string, error) {
	if count <= 0 {
		return "", nil
	}
	if count > MaxWords {
		return "", ErrTooManyWords
	}

	parts := make([]string, count)
	for i := range parts {
		idx, err := g.src.IntN(g.words.Len())
		if err != nil {
			return "", fmt.Errorf("generating passphrase: %w", err)
		}
		parts[i] = g.words.At(idx)
	}

	return strings.Join(parts, Separator), nil
}

// Entropy returns the entropy in bits of a count-word passphrase.
func (g *Generator) Entropy(count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(count) * math.Log2(float64(g.words.Len()))
}

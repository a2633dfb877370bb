package wordlist

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Size is the number of entries a valid word list holds (6^5, one word per
// roll of five dice).
const Size = 7776

var (
	ErrInvalidSize   = errors.New("word list must contain exactly 7776 words")
	ErrDuplicateWord = errors.New("word list contains a duplicate word")
	ErrInvalidWord   = errors.New("word list contains an invalid word")
)

//go:embed words.txt
var embedded string

// Wordlist is an ordered, read-only list of candidate words. It has no
// mutators, so a single instance can be shared by any number of goroutines.
type Wordlist struct {
	words []string
	index map[string]int
}

// Default parses the word list compiled into the binary.
func Default() (*Wordlist, error) {
	return Parse(strings.NewReader(embedded))
}

// MustDefault is like Default but panics if the embedded list is invalid.
func MustDefault() *Wordlist {
	wl, err := Default()
	if err != nil {
		panic(fmt.Sprintf("wordlist: embedded list: %v", err))
	}
	return wl
}

// Parse reads one word per line. Blank lines are skipped and surrounding
// whitespace is trimmed.
func Parse(r io.Reader) (*Wordlist, error) {
	words := make([]string, 0, Size)
	index := make(map[string]int, Size)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		if strings.ContainsAny(w, " \t-") {
			return nil, fmt.Errorf("line %d %q: %w", line, w, ErrInvalidWord)
		}
		if _, dup := index[w]; dup {
			return nil, fmt.Errorf("line %d %q: %w", line, w, ErrDuplicateWord)
		}
		index[w] = len(words)
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}

	if len(words) != Size {
		return nil, fmt.Errorf("got %d words: %w", len(words), ErrInvalidSize)
	}

	return &Wordlist{words: words, index: index}, nil
}

// Len returns the number of words.
func (w *Wordlist) Len() int {
	return len(w.words)
}

// At returns the word at position i. It panics if i is out of range.
func (w *Wordlist) At(i int) string {
	return w.words[i]
}

// Contains reports whether word is in the list.
func (w *Wordlist) Contains(word string) bool {
	_, ok := w.index[word]
	return ok
}

// Words returns a copy of the list in order.
func (w *Wordlist) Words() []string {
	out := make([]string, len(w.words))
	copy(out, w.words)
	return out
}

package room

import (
	"errors"
	"fmt"
	"strings"
)

const (
	FeatureChat  = "chat"
	FeatureAudio = "audio"
	FeatureVideo = "video"
)

var (
	ErrSelectionLength = errors.New("feature selection must contain exactly 3 flags (chat, audio, video)")
	ErrUnknownFeature  = errors.New("unknown room feature")
	ErrNonCanonical    = errors.New("feature query is not in canonical order")
)

// Selection picks the optional capabilities of a room.
type Selection struct {
	Chat  bool `json:"chat"`
	Audio bool `json:"audio"`
	Video bool `json:"video"`
}

// FeatureNames returns the feature names in query order.
func FeatureNames() []string {
	return []string{FeatureChat, FeatureAudio, FeatureVideo}
}

// FromFlags converts the positional (chat, audio, video) form.
func FromFlags(flags []bool) (Selection, error) {
	if len(flags) != 3 {
		return Selection{}, fmt.Errorf("got %d flags: %w", len(flags), ErrSelectionLength)
	}
	return Selection{Chat: flags[0], Audio: flags[1], Video: flags[2]}, nil
}

// Flags returns the positional (chat, audio, video) form.
func (s Selection) Flags() []bool {
	return []bool{s.Chat, s.Audio, s.Video}
}

// Empty reports whether no feature is enabled.
func (s Selection) Empty() bool {
	return !s.Chat && !s.Audio && !s.Video
}

// Encode renders the enabled features as a query string fragment such as
// "?chat&video". The order is always chat, audio, video. An empty
// selection encodes to "".
func Encode(s Selection) string {
	names := FeatureNames()
	var b strings.Builder
	for i, on := range s.Flags() {
		if !on {
			continue
		}
		if b.Len() == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(names[i])
	}
	return b.String()
}

// Decode parses a query produced by Encode. The leading "?" is optional.
func Decode(query string) (Selection, error) {
	query = strings.TrimPrefix(query, "?")
	if query == "" {
		return Selection{}, nil
	}

	names := FeatureNames()
	flags := make([]bool, len(names))
	next := 0
	for _, part := range strings.Split(query, "&") {
		pos := indexOf(names, part)
		if pos < 0 {
			return Selection{}, fmt.Errorf("%q: %w", part, ErrUnknownFeature)
		}
		if pos < next {
			return Selection{}, fmt.Errorf("%q: %w", query, ErrNonCanonical)
		}
		flags[pos] = true
		next = pos + 1
	}

	return FromFlags(flags)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

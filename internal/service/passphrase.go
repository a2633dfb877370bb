package service

import (
	"errors"
	"log/slog"

	"github.com/parley/parley-go/internal/crypto"
	"github.com/parley/parley-go/internal/metrics"
	"github.com/parley/parley-go/internal/model"
)

// ErrNoPassphrase means generation produced nothing. It is an absence of a
// result, not a failure, and must not be answered with an empty body.
var ErrNoPassphrase = errors.New("no passphrase available")

// PassphraseService handles passphrase generation business logic.
type PassphraseService struct {
	gen          *crypto.Generator
	defaultWords int
	maxWords     int
	metrics      *metrics.Metrics
}

// NewPassphraseService creates a new PassphraseService. Requests for fewer
// than one word get defaultWords; requests above maxWords are clamped.
func NewPassphraseService(gen *crypto.Generator, defaultWords, maxWords int, m *metrics.Metrics) *PassphraseService {
	return &PassphraseService{
		gen:          gen,
		defaultWords: defaultWords,
		maxWords:     maxWords,
		metrics:      m,
	}
}

// WordCount returns the number of words req resolves to.
func (s *PassphraseService) WordCount(req model.PassphraseRequest) int {
	n := req.Words
	if n < 1 {
		n = s.defaultWords
	}
	if n > s.maxWords {
		n = s.maxWords
	}
	return n
}

// Generate produces a passphrase for the given request.
func (s *PassphraseService) Generate(req model.PassphraseRequest) (model.PassphraseResponse, error) {
	n := s.WordCount(req)
	if n != req.Words {
		slog.Debug("normalized passphrase word count", "requested", req.Raw, "words", n)
	}

	phrase, err := s.gen.Generate(n)
	if err != nil {
		return model.PassphraseResponse{}, err
	}
	if phrase == "" {
		s.metrics.ObserveNoPassphrase()
		return model.PassphraseResponse{}, ErrNoPassphrase
	}

	s.metrics.ObservePassphrase(n)
	return model.PassphraseResponse{Wordlist: phrase}, nil
}

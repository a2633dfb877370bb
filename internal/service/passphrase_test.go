package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/parley/parley-go/internal/crypto"
	"github.com/parley/parley-go/internal/metrics"
	"github.com/parley/parley-go/internal/model"
	"github.com/parley/parley-go/internal/wordlist"
)

func newTestPassphraseService(defaultWords, maxWords int) *PassphraseService {
	gen := crypto.NewGenerator(wordlist.MustDefault(), crypto.SystemSource{})
	return NewPassphraseService(gen, defaultWords, maxWords, nil)
}

func wordCount(phrase string) int {
	return len(strings.Split(phrase, crypto.Separator))
}

func TestGeneratePassphrase_Defaults(t *testing.T) {
	svc := newTestPassphraseService(3, 64)

	tests := []struct {
		name string
		req  model.PassphraseRequest
	}{
		{name: "absent", req: model.PassphraseRequest{}},
		{name: "zero", req: model.PassphraseRequest{Words: 0, Raw: "0"}},
		{name: "negative", req: model.PassphraseRequest{Words: -4, Raw: "-4"}},
		{name: "non-numeric", req: model.PassphraseRequest{Raw: "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Generate(tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := wordCount(resp.Wordlist); got != 3 {
				t.Errorf("expected 3 words, got %d in %q", got, resp.Wordlist)
			}
		})
	}
}

func TestGeneratePassphrase_ExplicitCount(t *testing.T) {
	svc := newTestPassphraseService(3, 64)

	resp, err := svc.Generate(model.PassphraseRequest{Words: 7, Raw: "7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := wordCount(resp.Wordlist); got != 7 {
		t.Errorf("expected 7 words, got %d", got)
	}
}

func TestGeneratePassphrase_ClampsToMax(t *testing.T) {
	svc := newTestPassphraseService(3, 10)

	resp, err := svc.Generate(model.PassphraseRequest{Words: 500, Raw: "500"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := wordCount(resp.Wordlist); got != 10 {
		t.Errorf("expected 10 words, got %d", got)
	}
}

func TestGeneratePassphrase_EmptyResult(t *testing.T) {
	svc := newTestPassphraseService(0, 64)

	resp, err := svc.Generate(model.PassphraseRequest{})
	if !errors.Is(err, ErrNoPassphrase) {
		t.Fatalf("expected ErrNoPassphrase, got %v", err)
	}
	if resp.Wordlist != "" {
		t.Errorf("expected empty response, got %q", resp.Wordlist)
	}
}

func TestGeneratePassphrase_RecordsMetrics(t *testing.T) {
	gen := crypto.NewGenerator(wordlist.MustDefault(), crypto.SystemSource{})
	m := metrics.New()
	svc := NewPassphraseService(gen, 3, 64, m)

	if _, err := svc.Generate(model.PassphraseRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "parley_passphrases_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected parley_passphrases_total to be recorded")
	}
}

func TestWordCount(t *testing.T) {
	svc := newTestPassphraseService(3, 64)

	tests := []struct {
		words int
		want  int
	}{
		{words: -1, want: 3},
		{words: 0, want: 3},
		{words: 1, want: 1},
		{words: 64, want: 64},
		{words: 65, want: 64},
	}
	for _, tt := range tests {
		if got := svc.WordCount(model.PassphraseRequest{Words: tt.words}); got != tt.want {
			t.Errorf("WordCount(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

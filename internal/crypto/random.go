package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20"
)

const (
	SourceSystem = "system"
	SourceKeyed  = "keyed"
)

var (
	ErrInvalidBound  = errors.New("random bound must be positive")
	ErrEmptySeed     = errors.New("keyed source requires a non-empty seed")
	ErrUnknownSource = errors.New("unknown random source")
)

// Source supplies uniformly distributed integers. Implementations must be
// safe for concurrent use.
type Source interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) (int, error)
}

// NewSource builds the source named by kind. seed is only used by the keyed
// source.
func NewSource(kind, seed string) (Source, error) {
	switch kind {
	case "", SourceSystem:
		return SystemSource{}, nil
	case SourceKeyed:
		src, err := NewKeyedSource(seed)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownSource)
	}
}

// SystemSource draws from crypto/rand.
type SystemSource struct{}

// IntN returns a uniform integer in [0, n) read from crypto/rand.
func (SystemSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading crypto/rand: %w", err)
	}
	return int(v.Int64()), nil
}

// KeyParams configures the Argon2id derivation of a keyed source's key.
type KeyParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

// DefaultKeyParams returns the parameters used by NewKeyedSource.
func DefaultKeyParams() KeyParams {
	return KeyParams{
		Memory:      19 * 1024,
		Iterations:  2,
		Parallelism: 1,
	}
}

// keySalt is fixed so that the same seed always yields the same stream.
const keySalt = "parley/keyed-source/v1"

// KeyedSource is a deterministic source: the same seed always produces the
// same sequence. The key is stretched from the seed with Argon2id and the
// sequence is read from a ChaCha20 keystream.
type KeyedSource struct {
	mu     sync.Mutex
	stream *chacha20.Cipher
}

// NewKeyedSource derives a stream from seed.
func NewKeyedSource(seed string) (*KeyedSource, error) {
	if seed == "" {
		return nil, ErrEmptySeed
	}

	p := DefaultKeyParams()
	key := argon2.IDKey([]byte(seed), []byte(keySalt), p.Iterations, p.Memory, p.Parallelism, chacha20.KeySize)
	nonce := make([]byte, chacha20.NonceSize)

	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("creating keystream: %w", err)
	}

	return &KeyedSource{stream: stream}, nil
}

// IntN returns a uniform integer in [0, n) from the keystream.
func (s *KeyedSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}

	bound := uint64(n)
	// Values below threshold would bias the modulo and are redrawn.
	threshold := -bound % bound

	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		v := s.next()
		if v >= threshold {
			return int(v % bound), nil
		}
	}
}

func (s *KeyedSource) next() uint64 {
	var buf [8]byte
	s.stream.XORKeyStream(buf[:], buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

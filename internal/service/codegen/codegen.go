// Package codegen provides short code generators.
package codegen

import (
	"fmt"
	"sync"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
	"github.com/speps/go-hashids/v2"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
)

// Alphabet is the set of characters a short code consists of.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// MaxCodeLength bounds codes accepted by IsValid.
const MaxCodeLength = config.MaxCodeLength

//go:generate mockgen -source=codegen.go -destination=../../mocks/mock_codegen.go -package=mocks

// Generator defines a source of new short codes.
type Generator interface {
	Generate() (string, error)
}

// Check interface implementation explicitly
var (
	_ Generator = (*Random)(nil)
	_ Generator = (*HashID)(nil)
)

// Random generates fixed-length alphanumeric codes.
type Random struct {
	mu   sync.Mutex
	next func() string
}

// NewRandom initializes a Random generator producing codes of the given length.
func NewRandom(length int) (*Random, error) {
	next, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, err
	}
	return &Random{next: next}, nil
}

// Generate returns a new random code.
func (r *Random) Generate() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next(), nil
}

// HashID generates codes from the current time using hashids.
type HashID struct {
	SaltKey   string
	MinLength int
	hashID    *hashids.HashID
}

// NewHashID initializes a HashID generator.
func NewHashID(salt string, minLength int) (*HashID, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = minLength
	hd.Alphabet = Alphabet
	hashID, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &HashID{
		SaltKey:   salt,
		MinLength: minLength,
		hashID:    hashID,
	}, nil
}

// Generate returns a slug of the current nanosecond timestamp.
func (h *HashID) Generate() (string, error) {
	now := time.Now().UnixNano()
	return h.hashID.EncodeInt64([]int64{now})
}

// New returns the generator configured by strategy.
func New(strategy string, length int, salt string) (Generator, error) {
	switch strategy {
	case config.StrategyRandom, "":
		return NewRandom(length)
	case config.StrategyHashIDs:
		return NewHashID(salt, length)
	default:
		return nil, fmt.Errorf("unknown code strategy %q", strategy)
	}
}

// IsValid reports whether code could have been produced by any generator.
func IsValid(code string) bool {
	if code == "" || len(code) > MaxCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return false
		}
	}
	return true
}

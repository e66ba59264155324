package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/kv"
	"github.com/aussiebroadwan/vault/pkg/idx"
)

// DefaultChallengeTTL bounds how long a shown challenge stays answerable.
const DefaultChallengeTTL = 10 * time.Minute

type challengeItem struct {
	prompt string
	answer string
}

var challengeTable = []challengeItem{
	{"What is 7 × 13?", "91"},
	{"What is 156 ÷ 12?", "13"},
	{"What is 23 + 47?", "70"},
	{"What is 89 - 34?", "55"},
	{"What is 15 × 8?", "120"},
	{"What is 144 ÷ 9?", "16"},
	{"What is 67 + 28?", "95"},
	{"What is 92 - 37?", "55"},
}

// ChallengeGenerator draws uniformly from the arithmetic table.
type ChallengeGenerator struct {
	Random RandomSource
}

// Generate returns a prompt and its expected answer.
func (g ChallengeGenerator) Generate() (prompt, answer string) {
	r := g.Random
	if r == nil {
		r = CryptoRandom{}
	}
	c := challengeTable[r.Intn(len(challengeTable))]
	return c.prompt, c.answer
}

// Challenge is what the client sees. The answer never leaves the server.
type Challenge struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// ChallengeService keeps expected answers in the KV store keyed by a
// random id. Any verification consumes the challenge.
type ChallengeService struct {
	Generator ChallengeGenerator
	KV        KeyValueStore
	TTL       time.Duration
}

func (s *ChallengeService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultChallengeTTL
	}
	return s.TTL
}

// Issue creates a fresh challenge.
func (s *ChallengeService) Issue(ctx context.Context) (Challenge, error) {
	prompt, answer := s.Generator.Generate()
	id := idx.New().String()
	if err := s.KV.Set(ctx, kv.PrefixChallenge+id, answer, s.ttl()); err != nil {
		return Challenge{}, fmt.Errorf("store challenge: %w", err)
	}
	return Challenge{ID: id, Prompt: prompt}, nil
}

// Verify reports whether answer matches the challenge. Unknown, expired and
// already-used ids all report false.
func (s *ChallengeService) Verify(ctx context.Context, id, answer string) (bool, error) {
	if id == "" {
		return false, nil
	}
	want, err := s.KV.Take(ctx, kv.PrefixChallenge+id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("take challenge: %w", err)
	}
	return strings.TrimSpace(answer) == want, nil
}

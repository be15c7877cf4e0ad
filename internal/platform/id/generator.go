package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator creates opaque IDs, used to correlate the log lines of one scrape run.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	size int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: 8}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = 8
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Prefixed wraps a generator so IDs read like "leagues-3f9a...".
type Prefixed struct {
	prefix string
	next   Generator
}

func NewPrefixed(prefix string, next Generator) *Prefixed {
	if next == nil {
		next = NewRandomGenerator()
	}
	return &Prefixed{prefix: strings.Trim(strings.TrimSpace(prefix), "-"), next: next}
}

func (g *Prefixed) NewID() (string, error) {
	raw, err := g.next.NewID()
	if err != nil {
		return "", err
	}
	if g.prefix == "" {
		return raw, nil
	}
	return g.prefix + "-" + raw, nil
}

// MustNewID falls back to "unknown" so logging never blocks on entropy errors.
func MustNewID(g Generator) string {
	if g == nil {
		return "unknown"
	}
	out, err := g.NewID()
	if err != nil {
		return "unknown"
	}
	return out
}

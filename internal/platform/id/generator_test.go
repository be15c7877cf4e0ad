package id

import (
	"errors"
	"strings"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	g := NewRandomGenerator()
	a, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	b, _ := g.NewID()
	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatalf("expected distinct ids")
	}
}

func TestPrefixed_NewID(t *testing.T) {
	got, err := NewPrefixed(" transfers- ", fixedGenerator("abc")).NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if got != "transfers-abc" {
		t.Fatalf("unexpected id %q", got)
	}

	rand, _ := NewPrefixed("leagues", nil).NewID()
	if !strings.HasPrefix(rand, "leagues-") {
		t.Fatalf("unexpected id %q", rand)
	}
}

func TestMustNewID_FallsBack(t *testing.T) {
	if got := MustNewID(failingGenerator{}); got != "unknown" {
		t.Fatalf("expected fallback id, got %q", got)
	}
	if got := MustNewID(nil); got != "unknown" {
		t.Fatalf("expected fallback id for nil generator, got %q", got)
	}
}

type fixedGenerator string

func (g fixedGenerator) NewID() (string, error) { return string(g), nil }

type failingGenerator struct{}

func (failingGenerator) NewID() (string, error) { return "", errors.New("no entropy") }

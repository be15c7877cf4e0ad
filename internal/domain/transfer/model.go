package transfer

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

const (
	TypeLoan      = "loan"
	TypePermanent = "permanent"
)

const DefaultPlayerImage = "https://img.a.transfermarkt.technology/portrait/medium/default.jpg"

// Transfer is one observed player move. Identity is the natural key
// (Player, FromClub, ToClub, Fee, Type); the first DiscoveredAt wins.
type Transfer struct {
	ID           string
	Player       string
	Age          string
	Nationality  string
	Position     string
	FromClub     string
	ToClub       string
	Fee          string
	Type         string
	PlayerImage  string
	DiscoveredAt time.Time
}

func (t Transfer) Validate() error {
	if len([]rune(strings.TrimSpace(t.Player))) < 2 {
		return fmt.Errorf("transfer player name must have at least 2 characters")
	}
	if t.Type != TypeLoan && t.Type != TypePermanent {
		return fmt.Errorf("transfer type must be %s or %s, got %q", TypeLoan, TypePermanent, t.Type)
	}
	return nil
}

// Key renders the natural key used for deduplication.
func (t Transfer) Key() string {
	return strings.Join([]string{t.Player, t.FromClub, t.ToClub, t.Fee, t.Type}, "|")
}

// WithID returns t with ID derived from its natural key.
func (t Transfer) WithID() Transfer {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.Key()))
	t.ID = fmt.Sprintf("trf-%016x", h.Sum64())
	return t
}

// TypeFromFee classifies a fee string; any mention of "loan" is a loan.
func TypeFromFee(fee string) string {
	if strings.Contains(strings.ToLower(fee), "loan") {
		return TypeLoan
	}
	return TypePermanent
}

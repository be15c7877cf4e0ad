package leaguestanding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "manchester-city", Slug("Manchester City"))
	assert.Equal(t, "psg", Slug(" PSG "))
	assert.Equal(t, "borussia-monchengladbach", Slug("Borussia Monchengladbach"))
}

func TestStanding_Validate(t *testing.T) {
	ok := Standing{TeamName: "Arsenal", LeagueID: "premier-league", Position: 1}
	assert.NoError(t, ok.Validate())

	assert.Error(t, Standing{LeagueID: "premier-league", Position: 1}.Validate())
	assert.Error(t, Standing{TeamName: "Arsenal", Position: 1}.Validate())
	assert.Error(t, Standing{TeamName: "Arsenal", LeagueID: "premier-league"}.Validate())
}

func TestStanding_Consistent(t *testing.T) {
	assert.True(t, Standing{Played: 10, Won: 6, Drawn: 2, Lost: 2, Points: 20}.Consistent())
	assert.False(t, Standing{Played: 10, Won: 6, Drawn: 2, Lost: 1, Points: 20}.Consistent())
	assert.False(t, Standing{Played: 10, Won: 6, Drawn: 2, Lost: 2, Points: 21}.Consistent())
}

func TestFormRoundTrip(t *testing.T) {
	s := Standing{Form: []string{"W", "D", "L"}}
	assert.Equal(t, "W,D,L", s.FormString())
	assert.Equal(t, []string{"W", "D", "L"}, ParseForm(" W, D ,L,"))
	assert.Empty(t, ParseForm(""))
}

func TestLeagueName(t *testing.T) {
	assert.Equal(t, "La Liga", LeagueName("la-liga"))
	assert.Equal(t, "eredivisie", LeagueName("eredivisie"))
	assert.True(t, IsKnownLeague("ligue-1"))
	assert.False(t, IsKnownLeague("eredivisie"))
}

func TestLogoPlaceholder(t *testing.T) {
	assert.Equal(t, "https://via.placeholder.com/50?text=Ars", LogoPlaceholder("Arsenal"))
	assert.Equal(t, "https://via.placeholder.com/50?text=PS", LogoPlaceholder("PS"))
}

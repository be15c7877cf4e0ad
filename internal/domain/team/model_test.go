package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Manchester City", DisplayName("manchester-city"))
	assert.Equal(t, "Arsenal", DisplayName("arsenal"))
	assert.Equal(t, "", DisplayName(""))
}

func TestProfile_Validate(t *testing.T) {
	assert.NoError(t, Profile{ID: "arsenal", Name: "Arsenal"}.Validate())
	assert.Error(t, Profile{Name: "Arsenal"}.Validate())
	assert.Error(t, Profile{ID: "arsenal"}.Validate())
}

func TestFixture_Played(t *testing.T) {
	two, one := 2, 1
	assert.True(t, Fixture{HomeScore: &two, AwayScore: &one}.Played())
	assert.False(t, Fixture{HomeScore: &two}.Played())
}

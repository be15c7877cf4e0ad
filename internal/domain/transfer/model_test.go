package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeFromFee(t *testing.T) {
	assert.Equal(t, TypeLoan, TypeFromFee("Loan fee: €2.00m"))
	assert.Equal(t, TypeLoan, TypeFromFee("end of loan"))
	assert.Equal(t, TypePermanent, TypeFromFee("€45.00m"))
	assert.Equal(t, TypePermanent, TypeFromFee("free transfer"))
}

func TestWithID_StableForSameKey(t *testing.T) {
	a := Transfer{Player: "Joao Felix", FromClub: "Atletico", ToClub: "Chelsea", Fee: "Loan", Type: TypeLoan}.WithID()
	b := Transfer{Player: "Joao Felix", FromClub: "Atletico", ToClub: "Chelsea", Fee: "Loan", Type: TypeLoan, Age: "24"}.WithID()
	c := Transfer{Player: "Joao Felix", FromClub: "Atletico", ToClub: "Barcelona", Fee: "Loan", Type: TypeLoan}.WithID()

	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
	assert.Len(t, a.ID, len("trf-")+16)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Transfer{Player: "Rodri", Type: TypePermanent}.Validate())
	assert.Error(t, Transfer{Player: "R", Type: TypePermanent}.Validate())
	assert.Error(t, Transfer{Player: "Rodri", Type: "swap"}.Validate())
}

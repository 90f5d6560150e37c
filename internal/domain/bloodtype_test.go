package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanReceive(t *testing.T) {
	// rows are recipients, columns are donors in AllBloodTypes order
	grid := map[BloodType]string{
		BloodTypeAPos:  "11000011",
		BloodTypeANeg:  "01000001",
		BloodTypeBPos:  "00110011",
		BloodTypeBNeg:  "00010001",
		BloodTypeABPos: "11111111",
		BloodTypeABNeg: "01010101",
		BloodTypeOPos:  "00000011",
		BloodTypeONeg:  "00000001",
	}

	for recipient, row := range grid {
		for i, donor := range AllBloodTypes {
			expected := row[i] == '1'
			assert.Equal(t, expected, CanReceive(donor, recipient), "%s -> %s", donor, recipient)
		}
	}
}

func TestCompatibleDonors_ReturnsCopy(t *testing.T) {
	donors := CompatibleDonors(BloodTypeABPos)
	require.Len(t, donors, 8)

	donors[0] = BloodTypeONeg

	assert.Equal(t, BloodTypeAPos, CompatibleDonors(BloodTypeABPos)[0])
}

func TestParseBloodType(t *testing.T) {
	bt, err := ParseBloodType("AB-")
	require.NoError(t, err)
	assert.Equal(t, BloodTypeABNeg, bt)

	_, err = ParseBloodType("ab-")
	assert.Error(t, err)
}

func TestMatchMode(t *testing.T) {
	testCases := []struct {
		name     string
		mode     MatchMode
		supply   BloodType
		demand   BloodType
		accepts  bool
		supplies []BloodType
	}{
		{
			name:     "Exact accepts the same type only",
			mode:     MatchExact,
			supply:   BloodTypeONeg,
			demand:   BloodTypeOPos,
			accepts:  false,
			supplies: []BloodType{BloodTypeOPos},
		},
		{
			name:     "Compatible accepts a universal donor",
			mode:     MatchCompatible,
			supply:   BloodTypeONeg,
			demand:   BloodTypeOPos,
			accepts:  true,
			supplies: []BloodType{BloodTypeOPos, BloodTypeONeg},
		},
		{
			name:     "Compatible rejects Rh positive for Rh negative",
			mode:     MatchCompatible,
			supply:   BloodTypeAPos,
			demand:   BloodTypeANeg,
			accepts:  false,
			supplies: []BloodType{BloodTypeANeg, BloodTypeONeg},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.mode.Valid())
			assert.Equal(t, tc.accepts, tc.mode.Accepts(tc.supply, tc.demand))
			assert.Equal(t, tc.supplies, tc.mode.SupplyTypes(tc.demand))
		})
	}

	assert.False(t, MatchMode("fuzzy").Valid())
}

package domain

import "fmt"

type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

// AllBloodTypes lists the eight ABO x Rh groups in a stable order.
var AllBloodTypes = []BloodType{
	BloodTypeAPos, BloodTypeANeg,
	BloodTypeBPos, BloodTypeBNeg,
	BloodTypeABPos, BloodTypeABNeg,
	BloodTypeOPos, BloodTypeONeg,
}

// donorsFor maps a recipient type to the donor types it may receive from.
var donorsFor = map[BloodType][]BloodType{
	BloodTypeAPos:  {BloodTypeAPos, BloodTypeANeg, BloodTypeOPos, BloodTypeONeg},
	BloodTypeANeg:  {BloodTypeANeg, BloodTypeONeg},
	BloodTypeBPos:  {BloodTypeBPos, BloodTypeBNeg, BloodTypeOPos, BloodTypeONeg},
	BloodTypeBNeg:  {BloodTypeBNeg, BloodTypeONeg},
	BloodTypeABPos: AllBloodTypes,
	BloodTypeABNeg: {BloodTypeANeg, BloodTypeBNeg, BloodTypeABNeg, BloodTypeONeg},
	BloodTypeOPos:  {BloodTypeOPos, BloodTypeONeg},
	BloodTypeONeg:  {BloodTypeONeg},
}

func (b BloodType) Valid() bool {
	_, ok := donorsFor[b]
	return ok
}

func ParseBloodType(s string) (BloodType, error) {
	b := BloodType(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown blood type '%s'", s)
	}

	return b, nil
}

// CompatibleDonors returns the donor types a recipient of the given type can receive from.
// The returned slice is a copy.
func CompatibleDonors(recipient BloodType) []BloodType {
	donors := donorsFor[recipient]
	out := make([]BloodType, len(donors))
	copy(out, donors)

	return out
}

// CanReceive reports whether blood of donor type may be given to a recipient type.
func CanReceive(donor, recipient BloodType) bool {
	for _, d := range donorsFor[recipient] {
		if d == donor {
			return true
		}
	}

	return false
}

// MatchMode selects how a supply blood type is checked against a demand blood type.
type MatchMode string

const (
	MatchExact      MatchMode = "exact"
	MatchCompatible MatchMode = "compatible"
)

func (m MatchMode) Valid() bool {
	return m == MatchExact || m == MatchCompatible
}

// Accepts reports whether supply may serve demand under this mode.
func (m MatchMode) Accepts(supply, demand BloodType) bool {
	if m == MatchCompatible {
		return CanReceive(supply, demand)
	}

	return supply == demand
}

// SupplyTypes lists the blood types that may serve demand under this mode.
func (m MatchMode) SupplyTypes(demand BloodType) []BloodType {
	if m == MatchCompatible {
		return CompatibleDonors(demand)
	}

	return []BloodType{demand}
}

package domain

import (
	"math"
	"time"
)

type DonationType string

const (
	DonationWholeBlood     DonationType = "whole_blood"
	DonationPlatelet       DonationType = "platelet"
	DonationPlasma         DonationType = "plasma"
	DonationDoubleRedCells DonationType = "double_red_cells"
)

var donationIntervalDays = map[DonationType]int{
	DonationWholeBlood:     56,
	DonationPlatelet:       7,
	DonationPlasma:         28,
	DonationDoubleRedCells: 112,
}

var donationPoints = map[DonationType]int{
	DonationWholeBlood:     10,
	DonationPlatelet:       8,
	DonationPlasma:         8,
	DonationDoubleRedCells: 15,
}

// milestoneBadges is keyed by the total donation count that earns the badge.
var milestoneBadges = map[int]string{
	1:  "First Drop",
	5:  "Life Saver",
	10: "Blood Hero",
	25: "Champion",
	50: "Legend",
}

func (d DonationType) Valid() bool {
	_, ok := donationIntervalDays[d]
	return ok
}

// IntervalDays is the cooldown after a donation of this type.
func (d DonationType) IntervalDays() int {
	return donationIntervalDays[d]
}

// Points awarded for a donation of this type.
func (d DonationType) Points() int {
	return donationPoints[d]
}

// NextEligibleDate returns donationDate shifted by the cooldown of the donation type.
func NextEligibleDate(donationType DonationType, donationDate time.Time) time.Time {
	return donationDate.AddDate(0, 0, donationType.IntervalDays())
}

// MilestoneBadge returns the badge earned when the donor reaches total donations.
func MilestoneBadge(total int) (string, bool) {
	badge, ok := milestoneBadges[total]
	return badge, ok
}

// Eligibility is the freshly computed eligibility of a donor at a given instant.
type Eligibility struct {
	IsEligible        bool       `json:"is_eligible"`
	DaysUntilEligible int        `json:"days_until_eligible"`
	LastDonationDate  *time.Time `json:"last_donation_date,omitempty"`
	NextEligibleDate  *time.Time `json:"next_eligible_date,omitempty"`
}

// EligibilityAt computes eligibility from the next eligible date alone. A donor that
// never donated (nil date) is eligible.
func EligibilityAt(nextEligible *time.Time, now time.Time) Eligibility {
	if nextEligible == nil || !now.Before(*nextEligible) {
		return Eligibility{IsEligible: true, NextEligibleDate: nextEligible}
	}

	days := int(math.Ceil(nextEligible.Sub(now).Hours() / 24))

	return Eligibility{
		IsEligible:        false,
		DaysUntilEligible: days,
		NextEligibleDate:  nextEligible,
	}
}

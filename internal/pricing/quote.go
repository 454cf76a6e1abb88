package pricing

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Ceilings under which every quote amount fits in Money. Request validation
// keeps its own, tighter limits below these.
const (
	MaxAmount Money = 100_000_000_000 // $1bn
	MaxNights       = 3650
	MaxGuests       = 100
)

type QuoteInput struct {
	RoomNightlyRate Money
	CheckIn         time.Time
	CheckOut        time.Time
	Adults          int
	ChildrenAges    []int
}

type Quote struct {
	Nights              int   `json:"nights"`
	RoomNightlyRate     Money `json:"roomNightlyRate"`
	BaseAmount          Money `json:"baseAmount"`
	ExtraAdults         int   `json:"extraAdults"`
	ExtraAdultsAmount   Money `json:"extraAdultsAmount"`
	ChargeableChildren  int   `json:"chargeableChildren"`
	ExtraChildrenAmount Money `json:"extraChildrenAmount"`
	ServiceFee          Money `json:"serviceFee"`
	Total               Money `json:"total"`
}

// Nights returns the number of started days between checkIn and checkOut.
// Same-day and inverted ranges count as one night.
func Nights(checkIn, checkOut time.Time) int {
	secs := checkOut.Unix() - checkIn.Unix()
	if checkOut.Nanosecond() > checkIn.Nanosecond() {
		secs++
	}

	if secs <= 0 {
		return 1
	}

	return int((secs + secondsPerDay - 1) / secondsPerDay)
}

// CheckInput reports whether ComputeQuote can price in against cfg without
// overflowing.
func CheckInput(in QuoteInput, cfg Config) error {
	switch nights := Nights(in.CheckIn, in.CheckOut); {
	case in.RoomNightlyRate < 0 || in.RoomNightlyRate > MaxAmount:
		return fmt.Errorf("nightly rate %v: %w", in.RoomNightlyRate, ErrOutOfRange)
	case nights > MaxNights:
		return fmt.Errorf("%d nights: %w", nights, ErrOutOfRange)
	case in.Adults < 0 || in.Adults > MaxGuests || len(in.ChildrenAges) > MaxGuests:
		return fmt.Errorf("%d adults and %d children: %w", in.Adults, len(in.ChildrenAges), ErrOutOfRange)
	}

	return cfg.Validate()
}

// ComputeQuote prices a stay against a pricing snapshot. It never fails.
// Inputs rejected by CheckInput may overflow, so callers check them first.
func ComputeQuote(in QuoteInput, cfg Config) Quote {
	nights := Nights(in.CheckIn, in.CheckOut)

	extraAdults := in.Adults - BaseOccupancy
	if extraAdults < 0 {
		extraAdults = 0
	}

	var chargeableChildren int

	for _, age := range in.ChildrenAges {
		if age >= cfg.ChildFreeAge {
			chargeableChildren++
		}
	}

	q := Quote{
		Nights:              nights,
		RoomNightlyRate:     in.RoomNightlyRate,
		BaseAmount:          in.RoomNightlyRate.Times(nights),
		ExtraAdults:         extraAdults,
		ExtraAdultsAmount:   cfg.ExtraAdultNightly.Times(extraAdults * nights),
		ChargeableChildren:  chargeableChildren,
		ExtraChildrenAmount: cfg.ExtraChildNightly.Times(chargeableChildren * nights),
		ServiceFee:          cfg.ServiceFee,
	}

	q.Total = q.BaseAmount + q.ExtraAdultsAmount + q.ExtraChildrenAmount + q.ServiceFee

	return q
}

package booking

import (
	"bytes"
	"fmt"
	"time"

	"github.com/avstrong/stayquote/internal/pricing"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time of day, always in UTC.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}

	return Date{Time: t}, nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()

	return NewDate(y, m, d)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*d = Date{}

		return nil
	}

	parsed, err := ParseDate(string(bytes.Trim(data, `"`)))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank-transfer"
	PaymentAtHotel      PaymentMethod = "pay-at-hotel"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCard, PaymentBankTransfer, PaymentAtHotel:
		return true
	}

	return false
}

type Guest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type StayRequest struct {
	RoomNumber      string        `json:"roomNumber,omitempty"`
	RoomNightlyRate pricing.Money `json:"roomNightlyRate"`
	CheckIn         Date          `json:"checkIn"`
	CheckOut        Date          `json:"checkOut"`
	Adults          int           `json:"adults"`
	ChildrenAges    []int         `json:"childrenAges"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	Guest           Guest         `json:"guest"`
}

// NewStayRequest returns a request pre-filled with the base occupancy,
// so decoding a payload without "adults" keeps the default.
func NewStayRequest() StayRequest {
	//nolint:exhaustruct
	return StayRequest{Adults: pricing.BaseOccupancy}
}

func (r *StayRequest) QuoteInput() pricing.QuoteInput {
	return pricing.QuoteInput{
		RoomNightlyRate: r.RoomNightlyRate,
		CheckIn:         r.CheckIn.Time,
		CheckOut:        r.CheckOut.Time,
		Adults:          r.Adults,
		ChildrenAges:    r.ChildrenAges,
	}
}

// CardDetails are checked for shape only and never stored.
type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
	Holder string `json:"holder"`
}

type BookInput struct {
	Stay          StayRequest   `json:"stay"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Card          *CardDetails  `json:"card,omitempty"`
}

type Record struct {
	ID            string        `json:"id"`
	CreatedAt     time.Time     `json:"createdAt"`
	Request       StayRequest   `json:"request"`
	Quote         pricing.Quote `json:"quote"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        Status        `json:"status"`
}

type Room struct {
	Number      string        `json:"number"`
	Name        string        `json:"name"`
	NightlyRate pricing.Money `json:"nightlyRate"`
	Capacity    int           `json:"capacity"`
}

type Filter struct {
	Status Status
	Search string
}

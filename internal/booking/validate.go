package booking

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/avstrong/stayquote/internal/pricing"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3}$`)
)

// Limits bound the guest composition, length and price of a single booking.
type Limits struct {
	MinAdults      int
	MaxAdults      int
	MaxChildren    int
	MaxChildAge    int
	MaxNights      int
	MaxNightlyRate pricing.Money
}

func DefaultLimits() Limits {
	return Limits{
		MinAdults:      1,
		MaxAdults:      4,                        //nolint:gomnd
		MaxChildren:    3,                        //nolint:gomnd
		MaxChildAge:    17,                       //nolint:gomnd
		MaxNights:      365,                      //nolint:gomnd
		MaxNightlyRate: pricing.Dollars(100_000), //nolint:gomnd
	}
}

// ValidateStay checks a stay request on its own, as needed for a quote.
func ValidateStay(req *StayRequest, limits Limits) error {
	inputErr := newInputError()
	req.validate(limits, inputErr)

	return inputErr.orNil()
}

// Validate checks a full booking submission: the stay and the chosen payment.
func Validate(input *BookInput, limits Limits) error {
	inputErr := newInputError()
	input.validate(limits, inputErr)

	return inputErr.orNil()
}

func (b *BookInput) validate(limits Limits, inputErr *InputError) {
	b.Stay.validate(limits, inputErr)

	if !b.PaymentMethod.Valid() {
		inputErr.addError("paymentMethod", CodeInvalidPaymentMethod,
			"payment method must be one of card, bank-transfer, pay-at-hotel")

		return
	}

	if b.PaymentMethod == PaymentCard {
		var card CardDetails
		if b.Card != nil {
			card = *b.Card
		}

		card.validate(inputErr)
	}
}

func (r *StayRequest) validate(limits Limits, inputErr *InputError) {
	switch {
	case r.CheckIn.IsZero() || r.CheckOut.IsZero():
		inputErr.addError("checkIn", CodeInvalidDateRange, "provide checkIn and checkOut dates")
	case !r.CheckOut.After(r.CheckIn.Time):
		inputErr.addError("checkOut", CodeInvalidDateRange, "checkOut must be after checkIn")
	case pricing.Nights(r.CheckIn.Time, r.CheckOut.Time) > limits.MaxNights:
		inputErr.addError("checkOut", CodeInvalidDateRange,
			fmt.Sprintf("stay must not exceed %d nights", limits.MaxNights))
	}

	switch {
	case r.RoomNightlyRate <= 0:
		inputErr.addError("roomNightlyRate", CodeInvalidRoomRate, "room nightly rate must be positive")
	case r.RoomNightlyRate > limits.MaxNightlyRate:
		inputErr.addError("roomNightlyRate", CodeInvalidRoomRate,
			fmt.Sprintf("room nightly rate must not exceed %v", limits.MaxNightlyRate))
	}

	if r.Adults < limits.MinAdults || r.Adults > limits.MaxAdults {
		inputErr.addError("adults", CodeInvalidAdultCount,
			fmt.Sprintf("adults must be between %d and %d", limits.MinAdults, limits.MaxAdults))
	}

	if len(r.ChildrenAges) > limits.MaxChildren {
		inputErr.addError("childrenAges", CodeInvalidChildCount,
			fmt.Sprintf("at most %d children per booking", limits.MaxChildren))
	}

	for i, age := range r.ChildrenAges {
		if age < 0 || age > limits.MaxChildAge {
			inputErr.addError(fmt.Sprintf("childrenAges[%d]", i), CodeInvalidChildAge,
				fmt.Sprintf("child %d age must be between 0 and %d", i+1, limits.MaxChildAge))
		}
	}

	if r.Guest.Email != "" {
		if _, err := mail.ParseAddress(r.Guest.Email); err != nil {
			inputErr.addError("guest.email", CodeInvalidEmail, "provide valid email")
		}
	}
}

func stripCardSeparators(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

func (c *CardDetails) validate(inputErr *InputError) {
	if !cardNumberRe.MatchString(stripCardSeparators(c.Number)) {
		inputErr.addError("card.number", CodeInvalidCardNumber, "Invalid card number")
	}

	if !expiryRe.MatchString(c.Expiry) {
		inputErr.addError("card.expiry", CodeInvalidExpiry, "Invalid expiry date")
	}

	if !cvvRe.MatchString(c.CVV) {
		inputErr.addError("card.cvv", CodeInvalidCVV, "Invalid CVV")
	}

	if strings.TrimSpace(c.Holder) == "" {
		inputErr.addError("card.holder", CodeMissingCardholderName, "Name is required")
	}
}

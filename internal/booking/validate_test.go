package booking

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/avstrong/stayquote/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStay() StayRequest {
	req := NewStayRequest()
	req.RoomNumber = "101"
	req.RoomNightlyRate = pricing.Dollars(350)
	req.CheckIn = NewDate(2024, time.March, 15)
	req.CheckOut = NewDate(2024, time.March, 18)

	return req
}

func validCard() *CardDetails {
	return &CardDetails{
		Number: "1234 5678 9012 3456",
		Expiry: "08/27",
		CVV:    "123",
		Holder: "Jane Guest",
	}
}

func requireInputError(t *testing.T, err error) *InputError {
	t.Helper()

	inputErr := IsInputError(err)
	require.NotNil(t, inputErr, "expected *InputError, got %v", err)

	return inputErr
}

func TestValidateStay(t *testing.T) {
	limits := DefaultLimits()

	t.Run("Valid request", func(t *testing.T) {
		req := validStay()
		req.Adults = 4
		req.ChildrenAges = []int{0, 17, 6}
		assert.NoError(t, ValidateStay(&req, limits))
	})

	t.Run("Missing dates", func(t *testing.T) {
		req := validStay()
		req.CheckOut = Date{}

		inputErr := requireInputError(t, ValidateStay(&req, limits))
		assert.True(t, inputErr.Has(CodeInvalidDateRange))
	})

	t.Run("Check-out equal to check-in", func(t *testing.T) {
		req := validStay()
		req.CheckOut = req.CheckIn

		inputErr := requireInputError(t, ValidateStay(&req, limits))
		assert.True(t, inputErr.Has(CodeInvalidDateRange))
	})

	t.Run("Inverted range", func(t *testing.T) {
		req := validStay()
		req.CheckIn, req.CheckOut = req.CheckOut, req.CheckIn

		inputErr := requireInputError(t, ValidateStay(&req, limits))
		assert.True(t, inputErr.Has(CodeInvalidDateRange))
	})

	t.Run("Adult count bounds", func(t *testing.T) {
		for _, adults := range []int{0, 5, -1} {
			req := validStay()
			req.Adults = adults

			inputErr := requireInputError(t, ValidateStay(&req, limits))
			assert.True(t, inputErr.Has(CodeInvalidAdultCount))
		}
	})

	t.Run("Child ages are reported per child", func(t *testing.T) {
		req := validStay()
		req.ChildrenAges = []int{18, 3, -1}

		inputErr := requireInputError(t, ValidateStay(&req, limits))
		fields := inputErr.Fields()
		assert.Contains(t, fields, "childrenAges[0]")
		assert.Contains(t, fields, "childrenAges[2]")
		assert.NotContains(t, fields, "childrenAges[1]")
	})

	t.Run("Too many children", func(t *testing.T) {
		req := validStay()
		req.ChildrenAges = []int{1, 2, 3, 4}

		inputErr := requireInputError(t, ValidateStay(&req, limits))
		assert.True(t, inputErr.Has(CodeInvalidChildCount))
	})

	t.Run("Non-positive room rate", func(t *testing.T) {
		req := validStay()
		req.RoomNightlyRate = 0

		inputErr := requireInputError(t, ValidateStay(&req, limits))
		assert.True(t, inputErr.Has(CodeInvalidRoomRate))
	})

	t.Run("Room rate above the limit", func(t *testing.T) {
		for _, rate := range []pricing.Money{limits.MaxNightlyRate + 1, pricing.Money(4e18), math.MaxInt64 - 100} {
			req := validStay()
			req.RoomNightlyRate = rate

			inputErr := requireInputError(t, ValidateStay(&req, limits))
			assert.True(t, inputErr.Has(CodeInvalidRoomRate), "rate %d", rate)
		}

		req := validStay()
		req.RoomNightlyRate = limits.MaxNightlyRate
		assert.NoError(t, ValidateStay(&req, limits))
	})

	t.Run("Stay longer than the limit", func(t *testing.T) {
		req := validStay()
		req.CheckOut = Date{Time: req.CheckIn.AddDate(0, 0, limits.MaxNights)}
		assert.NoError(t, ValidateStay(&req, limits))

		req.CheckOut = Date{Time: req.CheckIn.AddDate(0, 0, limits.MaxNights+1)}
		inputErr := requireInputError(t, ValidateStay(&req, limits))
		assert.True(t, inputErr.Has(CodeInvalidDateRange))

		req.CheckOut = NewDate(2600, time.January, 1)
		inputErr = requireInputError(t, ValidateStay(&req, limits))
		assert.True(t, inputErr.Has(CodeInvalidDateRange))
	})

	t.Run("Invalid guest email", func(t *testing.T) {
		req := validStay()
		req.Guest.Email = "not-an-email"

		inputErr := requireInputError(t, ValidateStay(&req, limits))
		assert.True(t, inputErr.Has(CodeInvalidEmail))
	})

	t.Run("All problems reported together", func(t *testing.T) {
		req := validStay()
		req.CheckOut = req.CheckIn
		req.Adults = 9
		req.ChildrenAges = []int{20}

		inputErr := requireInputError(t, ValidateStay(&req, limits))
		assert.True(t, inputErr.Has(CodeInvalidDateRange))
		assert.True(t, inputErr.Has(CodeInvalidAdultCount))
		assert.True(t, inputErr.Has(CodeInvalidChildAge))
		assert.Len(t, inputErr.Errors(), 3)
	})
}

func TestValidate_Payment(t *testing.T) {
	limits := DefaultLimits()

	t.Run("Non-card methods need no card", func(t *testing.T) {
		for _, method := range []PaymentMethod{PaymentBankTransfer, PaymentAtHotel} {
			assert.NoError(t, Validate(&BookInput{Stay: validStay(), PaymentMethod: method}, limits))
		}
	})

	t.Run("Unknown method", func(t *testing.T) {
		inputErr := requireInputError(t, Validate(&BookInput{Stay: validStay(), PaymentMethod: "cash"}, limits))
		assert.True(t, inputErr.Has(CodeInvalidPaymentMethod))
	})

	t.Run("Valid card with dashes", func(t *testing.T) {
		card := validCard()
		card.Number = "1234-5678-9012-3456"
		assert.NoError(t, Validate(&BookInput{Stay: validStay(), PaymentMethod: PaymentCard, Card: card}, limits))
	})

	t.Run("Fifteen digit card number", func(t *testing.T) {
		card := validCard()
		card.Number = "1234 5678 9012 345"

		inputErr := requireInputError(t, Validate(&BookInput{Stay: validStay(), PaymentMethod: PaymentCard, Card: card}, limits))
		assert.True(t, inputErr.Has(CodeInvalidCardNumber))
		assert.Len(t, inputErr.Errors(), 1)
	})

	t.Run("Expiry checks shape only", func(t *testing.T) {
		card := validCard()
		card.Expiry = "13/25"
		assert.NoError(t, Validate(&BookInput{Stay: validStay(), PaymentMethod: PaymentCard, Card: card}, limits))

		card.Expiry = "1/25"
		inputErr := requireInputError(t, Validate(&BookInput{Stay: validStay(), PaymentMethod: PaymentCard, Card: card}, limits))
		assert.True(t, inputErr.Has(CodeInvalidExpiry))
	})

	t.Run("Missing card reports every card field", func(t *testing.T) {
		inputErr := requireInputError(t, Validate(&BookInput{Stay: validStay(), PaymentMethod: PaymentCard}, limits))
		assert.True(t, inputErr.Has(CodeInvalidCardNumber))
		assert.True(t, inputErr.Has(CodeInvalidExpiry))
		assert.True(t, inputErr.Has(CodeInvalidCVV))
		assert.True(t, inputErr.Has(CodeMissingCardholderName))
	})

	t.Run("Blank holder and short cvv", func(t *testing.T) {
		card := validCard()
		card.Holder = "   "
		card.CVV = "12"

		inputErr := requireInputError(t, Validate(&BookInput{Stay: validStay(), PaymentMethod: PaymentCard, Card: card}, limits))
		assert.Equal(t, map[string][]string{
			"card.cvv":    {"Invalid CVV"},
			"card.holder": {"Name is required"},
		}, inputErr.Fields())
	})

	t.Run("Stay and payment errors together", func(t *testing.T) {
		stay := validStay()
		stay.Adults = 0
		card := validCard()
		card.CVV = "abcd"

		inputErr := requireInputError(t, Validate(&BookInput{Stay: stay, PaymentMethod: PaymentCard, Card: card}, limits))
		assert.True(t, inputErr.Has(CodeInvalidAdultCount))
		assert.True(t, inputErr.Has(CodeInvalidCVV))
	})
}

func TestDateJSON(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		data, err := json.Marshal(NewDate(2024, time.March, 15))
		require.NoError(t, err)
		assert.Equal(t, `"2024-03-15"`, string(data))
	})

	t.Run("Empty and null decode to zero", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("Malformed date", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"15/03/2024"`), &d))
	})

	t.Run("Stay request keeps default adults", func(t *testing.T) {
		req := NewStayRequest()
		require.NoError(t, json.Unmarshal([]byte(`{"checkIn":"2024-03-15","checkOut":"2024-03-18"}`), &req))
		assert.Equal(t, pricing.BaseOccupancy, req.Adults)
		assert.Equal(t, NewDate(2024, time.March, 18), req.CheckOut)
	})
}

package booking

import (
	"slices"
	"time"

	"github.com/avstrong/stayquote/internal/pricing"
)

// Assemble builds the record handed to persistence. It performs no I/O and
// copies the request so later edits by the caller do not leak into the record.
func Assemble(id string, now time.Time, req StayRequest, quote pricing.Quote, method PaymentMethod) *Record {
	req.ChildrenAges = slices.Clone(req.ChildrenAges)

	return &Record{
		ID:            id,
		CreatedAt:     now.UTC(),
		Request:       req,
		Quote:         quote,
		PaymentMethod: method,
		Status:        StatusPending,
	}
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

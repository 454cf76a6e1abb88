package booking

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/avstrong/stayquote/internal/logger"
	"github.com/avstrong/stayquote/internal/pricing"
)

type idGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type storageReader interface {
	GetBooking(ctx context.Context, id string) (*Record, error)
	GetBookingByIdempotencyKey(ctx context.Context) (*Record, error)
	ListBookings(ctx context.Context) ([]*Record, error)
	GetRoom(ctx context.Context, number string) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)
	GetPricing(ctx context.Context) (pricing.Config, error)
}

type storageWriter interface {
	SaveBooking(ctx context.Context, record *Record) error
	UpdateBookingStatus(ctx context.Context, id string, from, to Status) (*Record, error)
	SavePricing(ctx context.Context, cfg pricing.Config) error
}

type storage interface {
	storageReader
	storageWriter
}

type Manager struct {
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	limits      Limits
	now         func() time.Time
}

func New(l *logger.Logger, storage storage, idGenerator idGenerator, limits Limits) *Manager {
	return &Manager{
		l:           l,
		storage:     storage,
		idGenerator: idGenerator,
		limits:      limits,
		now:         time.Now,
	}
}

func (m *Manager) Limits() Limits {
	return m.limits
}

// resolveRoom takes the nightly rate from the catalog when the request names
// a room, so clients cannot set their own price. Bookings must name a room;
// quotes may price a bare rate.
func (m *Manager) resolveRoom(ctx context.Context, req *StayRequest, required bool, inputErr *InputError) error {
	if req.RoomNumber == "" {
		if required {
			inputErr.addError("roomNumber", CodeInvalidRoom, "provide roomNumber")
		}

		return nil
	}

	room, err := m.storage.GetRoom(ctx, req.RoomNumber)
	if errors.Is(err, ErrRecordNotFound) {
		inputErr.addError("roomNumber", CodeInvalidRoom, fmt.Sprintf("room %q does not exist", req.RoomNumber))

		return nil
	}

	if err != nil {
		return fmt.Errorf("get room %v from storage: %w", req.RoomNumber, err)
	}

	req.RoomNightlyRate = room.NightlyRate

	if req.Adults > room.Capacity {
		inputErr.addError("adults", CodeInvalidAdultCount,
			fmt.Sprintf("room %v sleeps at most %d adults", room.Number, room.Capacity))
	}

	return nil
}

func (m *Manager) price(ctx context.Context, req *StayRequest) (pricing.Quote, error) {
	cfg, err := m.storage.GetPricing(ctx)
	if err != nil {
		return pricing.Quote{}, fmt.Errorf("get pricing snapshot: %w", err)
	}

	in := req.QuoteInput()
	if err := pricing.CheckInput(in, cfg); err != nil {
		return pricing.Quote{}, fmt.Errorf("check quote input: %w", err)
	}

	return pricing.ComputeQuote(in, cfg), nil
}

func (m *Manager) Quote(ctx context.Context, req *StayRequest) (pricing.Quote, error) {
	inputErr := newInputError()

	if err := m.resolveRoom(ctx, req, false, inputErr); err != nil {
		return pricing.Quote{}, err
	}

	req.validate(m.limits, inputErr)

	if err := inputErr.orNil(); err != nil {
		return pricing.Quote{}, err
	}

	return m.price(ctx, req)
}

// CreateBooking validates, prices and stores a booking request. replayed is
// true when the idempotency key in ctx already produced a booking, which is
// returned unchanged.
func (m *Manager) CreateBooking(ctx context.Context, input *BookInput) (_ *Record, replayed bool, err error) {
	existing, err := m.storage.GetBookingByIdempotencyKey(ctx)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return nil, false, fmt.Errorf("get booking by idempotency key: %w", err)
	}

	if err == nil {
		return existing, true, nil
	}

	inputErr := newInputError()

	if err = m.resolveRoom(ctx, &input.Stay, true, inputErr); err != nil {
		return nil, false, err
	}

	input.validate(m.limits, inputErr)

	if err = inputErr.orNil(); err != nil {
		return nil, false, err
	}

	quote, err := m.price(ctx, &input.Stay)
	if err != nil {
		return nil, false, err
	}

	id, err := m.idGenerator.NewID(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrNextID, err)
	}

	record := Assemble(id, m.now(), input.Stay, quote, input.PaymentMethod)

	if err = m.storage.SaveBooking(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			existing, getErr := m.storage.GetBookingByIdempotencyKey(ctx)
			if getErr != nil {
				return nil, false, fmt.Errorf("get booking after duplicate key: %w", getErr)
			}

			return existing, true, nil
		}

		return nil, false, fmt.Errorf("save booking to storage: %w", err)
	}

	m.l.LogInfo("Booking %v created for room %v, total %v", record.ID, record.Request.RoomNumber, record.Quote.Total)

	return record, false, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Record, error) {
	record, err := m.storage.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %v: %w", id, err)
	}

	return record, nil
}

func (f Filter) matches(r *Record) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}

	if f.Search == "" {
		return true
	}

	needle := strings.ToLower(f.Search)

	for _, hay := range []string{r.Request.Guest.Name, r.Request.RoomNumber, r.ID} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}

	return false
}

// List returns matching bookings, newest first.
func (m *Manager) List(ctx context.Context, filter Filter) ([]*Record, error) {
	records, err := m.storage.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings from storage: %w", err)
	}

	result := make([]*Record, 0, len(records))

	for _, r := range records {
		if filter.matches(r) {
			result = append(result, r)
		}
	}

	slices.SortStableFunc(result, func(a, b *Record) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	return result, nil
}

func (m *Manager) UpdateStatus(ctx context.Context, id string, to Status) (*Record, error) {
	if !to.Valid() {
		inputErr := newInputError()
		inputErr.addError("status", CodeInvalidStatus, fmt.Sprintf("unknown status %q", to))

		return nil, inputErr
	}

	current, err := m.storage.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %v: %w", id, err)
	}

	if !CanTransition(current.Status, to) {
		return nil, fmt.Errorf("booking %v from %v to %v: %w", id, current.Status, to, ErrInvalidTransition)
	}

	updated, err := m.storage.UpdateBookingStatus(ctx, id, current.Status, to)
	if err != nil {
		return nil, fmt.Errorf("update booking %v status: %w", id, err)
	}

	m.l.LogInfo("Booking %v moved from %v to %v", id, current.Status, to)

	return updated, nil
}

// CompleteStays marks confirmed bookings whose check-out day has passed as
// completed and reports how many were moved.
func (m *Manager) CompleteStays(ctx context.Context) (int, error) {
	records, err := m.storage.ListBookings(ctx)
	if err != nil {
		return 0, fmt.Errorf("list bookings from storage: %w", err)
	}

	today := DateOf(m.now())

	var completed int

	for _, r := range records {
		if r.Status != StatusConfirmed || !r.Request.CheckOut.Before(today.Time) {
			continue
		}

		_, err := m.storage.UpdateBookingStatus(ctx, r.ID, StatusConfirmed, StatusCompleted)
		if errors.Is(err, ErrStatusChanged) {
			continue
		}

		if err != nil {
			return completed, fmt.Errorf("complete booking %v: %w", r.ID, err)
		}

		completed++
	}

	return completed, nil
}

func (m *Manager) Pricing(ctx context.Context) (pricing.Config, error) {
	cfg, err := m.storage.GetPricing(ctx)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("get pricing from storage: %w", err)
	}

	return cfg, nil
}

// UpdatePricing replaces the pricing snapshot. Existing records keep the
// quote they were created with.
func (m *Manager) UpdatePricing(ctx context.Context, cfg pricing.Config) error {
	if err := cfg.Validate(); err != nil {
		inputErr := newInputError()
		inputErr.addError("pricing", CodeInvalidPricing, err.Error())

		return inputErr
	}

	if err := m.storage.SavePricing(ctx, cfg); err != nil {
		return fmt.Errorf("save pricing to storage: %w", err)
	}

	m.l.LogInfo("Pricing updated: extra adult %v, extra child %v, free age %d, service fee %v",
		cfg.ExtraAdultNightly, cfg.ExtraChildNightly, cfg.ChildFreeAge, cfg.ServiceFee)

	return nil
}

func (m *Manager) Rooms(ctx context.Context) ([]*Room, error) {
	rooms, err := m.storage.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms from storage: %w", err)
	}

	return rooms, nil
}

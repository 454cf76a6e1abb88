package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/avstrong/stayquote/internal/booking"
	"github.com/avstrong/stayquote/internal/logger"
	"github.com/avstrong/stayquote/internal/pricing"
)

type Config struct {
	L       *logger.Logger
	Pricing pricing.Config
}

// DB keeps bookings, the room catalog and the pricing snapshot in process
// memory. Values are copied on the way in and out so callers never share a
// record with the store.
type DB struct {
	mu              sync.RWMutex
	l               *logger.Logger
	bookings        map[string]*booking.Record
	idempotencyKeys map[string]string
	rooms           map[string]*booking.Room
	pricing         pricing.Config
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:               conf.L,
		bookings:        make(map[string]*booking.Record),
		idempotencyKeys: make(map[string]string),
		rooms:           make(map[string]*booking.Room),
		pricing:         conf.Pricing,
	}
}

func cloneRecord(r *booking.Record) *booking.Record {
	c := *r
	c.Request.ChildrenAges = slices.Clone(r.Request.ChildrenAges)

	return &c
}

func (db *DB) SaveBooking(ctx context.Context, record *booking.Record) error {
	if record == nil {
		return ErrNilRecord
	}

	if record.ID == "" {
		return ErrEmptyID
	}

	key, ok := booking.IdempotencyKeyFrom(ctx)
	if !ok {
		return booking.ErrIdempotencyKey
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if id, exists := db.idempotencyKeys[key]; exists {
		return fmt.Errorf("key %q already maps to booking %v: %w", key, id, booking.ErrDuplicateKey)
	}

	db.bookings[record.ID] = cloneRecord(record)
	db.idempotencyKeys[key] = record.ID

	db.l.LogDebug("Booking %v stored under idempotency key %v", record.ID, key)

	return nil
}

func (db *DB) GetBooking(_ context.Context, id string) (*booking.Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	record, ok := db.bookings[id]
	if !ok {
		return nil, booking.ErrRecordNotFound
	}

	return cloneRecord(record), nil
}

func (db *DB) GetBookingByIdempotencyKey(ctx context.Context) (*booking.Record, error) {
	key, ok := booking.IdempotencyKeyFrom(ctx)
	if !ok {
		return nil, booking.ErrIdempotencyKey
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	id, exists := db.idempotencyKeys[key]
	if !exists {
		return nil, booking.ErrRecordNotFound
	}

	return cloneRecord(db.bookings[id]), nil
}

func (db *DB) ListBookings(_ context.Context) ([]*booking.Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	result := make([]*booking.Record, 0, len(db.bookings))
	for _, record := range db.bookings {
		result = append(result, cloneRecord(record))
	}

	return result, nil
}

// UpdateBookingStatus swaps the status only if it still equals from.
func (db *DB) UpdateBookingStatus(_ context.Context, id string, from, to booking.Status) (*booking.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	record, ok := db.bookings[id]
	if !ok {
		return nil, booking.ErrRecordNotFound
	}

	if record.Status != from {
		return nil, fmt.Errorf("booking %v is %v, expected %v: %w", id, record.Status, from, booking.ErrStatusChanged)
	}

	updated := cloneRecord(record)
	updated.Status = to
	db.bookings[id] = updated

	return cloneRecord(updated), nil
}

func (db *DB) SaveRooms(_ context.Context, rooms []*booking.Room) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, room := range rooms {
		if room.Number == "" {
			return fmt.Errorf("room %q: %w", room.Name, ErrEmptyID)
		}

		r := *room
		db.rooms[room.Number] = &r
	}

	return nil
}

func (db *DB) GetRoom(_ context.Context, number string) (*booking.Room, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	room, ok := db.rooms[number]
	if !ok {
		return nil, booking.ErrRecordNotFound
	}

	r := *room

	return &r, nil
}

func (db *DB) ListRooms(_ context.Context) ([]*booking.Room, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	result := make([]*booking.Room, 0, len(db.rooms))
	for _, room := range db.rooms {
		r := *room
		result = append(result, &r)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})

	return result, nil
}

func (db *DB) GetPricing(_ context.Context) (pricing.Config, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.pricing, nil
}

func (db *DB) SavePricing(_ context.Context, cfg pricing.Config) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.pricing = cfg

	return nil
}

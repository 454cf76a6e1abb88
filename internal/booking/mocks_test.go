package booking

import (
	"context"

	"github.com/avstrong/stayquote/internal/pricing"
	"github.com/stretchr/testify/mock"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) GetBooking(ctx context.Context, id string) (*Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*Record), args.Error(1)
}

func (m *mockStorage) GetBookingByIdempotencyKey(ctx context.Context) (*Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*Record), args.Error(1)
}

func (m *mockStorage) ListBookings(ctx context.Context) ([]*Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*Record), args.Error(1)
}

func (m *mockStorage) GetRoom(ctx context.Context, number string) (*Room, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*Room), args.Error(1)
}

func (m *mockStorage) ListRooms(ctx context.Context) ([]*Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*Room), args.Error(1)
}

func (m *mockStorage) GetPricing(ctx context.Context) (pricing.Config, error) {
	args := m.Called(ctx)

	return args.Get(0).(pricing.Config), args.Error(1)
}

func (m *mockStorage) SaveBooking(ctx context.Context, record *Record) error {
	args := m.Called(ctx, record)

	return args.Error(0)
}

func (m *mockStorage) UpdateBookingStatus(ctx context.Context, id string, from, to Status) (*Record, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*Record), args.Error(1)
}

func (m *mockStorage) SavePricing(ctx context.Context, cfg pricing.Config) error {
	args := m.Called(ctx, cfg)

	return args.Error(0)
}

type mockIDGenerator struct {
	mock.Mock
}

func (m *mockIDGenerator) NewID(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

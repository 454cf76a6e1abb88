package migration

import (
	"context"
	"fmt"

	"github.com/avstrong/stayquote/internal/booking"
	"github.com/avstrong/stayquote/internal/logger"
	"github.com/avstrong/stayquote/internal/pricing"
)

const roomsPerType = 6

type storage interface {
	SaveRooms(ctx context.Context, rooms []*booking.Room) error
}

type roomType struct {
	name     string
	rate     pricing.Money
	capacity int
}

var roomTypes = []roomType{
	{name: "Floating Studio", rate: pricing.Dollars(350), capacity: 2},       //nolint:gomnd
	{name: "French Studio", rate: pricing.Dollars(280), capacity: 2},         //nolint:gomnd
	{name: "French Heritage Villa", rate: pricing.Dollars(520), capacity: 4}, //nolint:gomnd
	{name: "Ban Din Deluxe", rate: pricing.Dollars(300), capacity: 2},        //nolint:gomnd
	{name: "Ban Din Studio", rate: pricing.Dollars(240), capacity: 2},        //nolint:gomnd
	{name: "Ban Lao Classic", rate: pricing.Dollars(220), capacity: 2},       //nolint:gomnd
}

// Rooms returns the seeded catalog: one floor per room type, numbered
// <floor><01..06>.
func Rooms() []*booking.Room {
	rooms := make([]*booking.Room, 0, len(roomTypes)*roomsPerType)

	for typeIdx, rt := range roomTypes {
		for i := 1; i <= roomsPerType; i++ {
			rooms = append(rooms, &booking.Room{
				Number:      fmt.Sprintf("%d%02d", typeIdx+1, i),
				Name:        rt.name,
				NightlyRate: rt.rate,
				Capacity:    rt.capacity,
			})
		}
	}

	return rooms
}

func Up(ctx context.Context, l *logger.Logger, storage storage) error {
	rooms := Rooms()

	if err := storage.SaveRooms(ctx, rooms); err != nil {
		return fmt.Errorf("save rooms to storage: %w", err)
	}

	l.LogInfo("Room catalog seeded with %d rooms", len(rooms))

	return nil
}

package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeConfig = errors.New("pricing config values must not be negative")
	ErrOutOfRange     = errors.New("pricing value out of range")
)

// BaseOccupancy is the number of adults included in the room's nightly rate.
const BaseOccupancy = 2

type Config struct {
	ExtraAdultNightly Money `json:"extraAdultNightly" validate:"gte=0,lte=100000000000"`
	ExtraChildNightly Money `json:"extraChildNightly" validate:"gte=0,lte=100000000000"`
	ChildFreeAge      int   `json:"childFreeAge"      validate:"gte=0"`
	ServiceFee        Money `json:"serviceFee"        validate:"gte=0,lte=100000000000"`
}

func DefaultConfig() Config {
	return Config{
		ExtraAdultNightly: Dollars(10), //nolint:gomnd
		ExtraChildNightly: Dollars(10), //nolint:gomnd
		ChildFreeAge:      6,           //nolint:gomnd
		ServiceFee:        Dollars(25), //nolint:gomnd
	}
}

func (c Config) Validate() error {
	switch {
	case c.ExtraAdultNightly < 0:
		return fmt.Errorf("extra adult nightly rate %v: %w", c.ExtraAdultNightly, ErrNegativeConfig)
	case c.ExtraChildNightly < 0:
		return fmt.Errorf("extra child nightly rate %v: %w", c.ExtraChildNightly, ErrNegativeConfig)
	case c.ChildFreeAge < 0:
		return fmt.Errorf("child free age %d: %w", c.ChildFreeAge, ErrNegativeConfig)
	case c.ServiceFee < 0:
		return fmt.Errorf("service fee %v: %w", c.ServiceFee, ErrNegativeConfig)
	case c.ExtraAdultNightly > MaxAmount, c.ExtraChildNightly > MaxAmount, c.ServiceFee > MaxAmount:
		return fmt.Errorf("amounts must not exceed %v: %w", MaxAmount, ErrOutOfRange)
	}

	return nil
}

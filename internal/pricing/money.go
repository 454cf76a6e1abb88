package pricing

import "fmt"

// Money is an amount in minor units (cents).
type Money int64

func Cents(v int64) Money {
	return Money(v)
}

func Dollars(v int64) Money {
	return Money(v * 100) //nolint:gomnd
}

func (m Money) Times(n int) Money {
	return m * Money(n)
}

func (m Money) String() string {
	sign := ""
	v := int64(m)

	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100) //nolint:gomnd
}

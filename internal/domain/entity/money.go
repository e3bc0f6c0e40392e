package entity

import "fmt"

// Cents is a money amount in integer minor units. All price arithmetic runs
// on int64 so line totals never drift from their sum the way binary floats do.
type Cents int64

func (c Cents) Add(other Cents) Cents {
	return c + other
}

func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}

// String renders the amount with two fractional digits, e.g. "151.00".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in minor units (cents). HTTP boundaries convert to and
// from decimal units.
type Money struct {
	Currency string
	Amount   int64
}

func (m Money) Add(other Money) Money {
	return Money{Currency: m.Currency, Amount: m.Amount + other.Amount}
}

func (m Money) MulQty(qty int) Money {
	return Money{Currency: m.Currency, Amount: m.Amount * int64(qty)}
}

// Decimal returns the amount in major units for JSON responses.
func (m Money) Decimal() float64 {
	return float64(m.Amount) / 100
}

// Format renders the amount as "$1,250.00".
func (m Money) Format() string {
	amount := m.Amount
	neg := amount < 0
	if neg {
		amount = -amount
	}

	whole := strconv.FormatInt(amount/100, 10)
	frac := fmt.Sprintf("%02d", amount%100)

	var b strings.Builder
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)

	return b.String()
}

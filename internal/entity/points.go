package entity

import (
	"math"
	"strconv"
)

// Points is an amount of reward points stored as an integer number of tenths.
// All additive ledger updates work on this type so sums never drift.
type Points int64

// NewPoints rounds a score to one decimal place, half away from zero.
func NewPoints(f float64) Points {
	return Points(math.Round(f * 10))
}

func (p Points) Float() float64 {
	return float64(p) / 10
}

// Mul returns p*rate rounded to one decimal place.
func (p Points) Mul(rate float64) Points {
	return NewPoints(p.Float() * rate)
}

func (p Points) String() string {
	return strconv.FormatFloat(p.Float(), 'f', 1, 64)
}

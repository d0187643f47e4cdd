package usecase

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const orderNumberSpace = 1_000_000

// OrderNumberGenerator produces human readable order numbers.
type OrderNumberGenerator interface {
	Generate(now time.Time) string
}

// RandomOrderNumbers draws the numeric suffix uniformly from [0, 999999] on every call.
type RandomOrderNumbers struct {
	intN func(n int) int
}

// NewRandomOrderNumbers constructs a generator backed by the runtime's concurrency safe source.
func NewRandomOrderNumbers() *RandomOrderNumbers {
	return &RandomOrderNumbers{intN: rand.IntN}
}

// Generate returns a number in the ORD-YYMM-NNNNNN format.
func (g *RandomOrderNumbers) Generate(now time.Time) string {
	return FormatOrderNumber(now, g.intN(orderNumberSpace))
}

// FormatOrderNumber renders suffix with the year and month of now.
func FormatOrderNumber(now time.Time, suffix int) string {
	return fmt.Sprintf("ORD-%02d%02d-%06d", now.Year()%100, int(now.Month()), suffix%orderNumberSpace)
}

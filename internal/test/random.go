package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += int(randomIntn(maxLen - minLen + 1))
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

// SequenceNumbers replays preset order numbers and counts how many were drawn.
// Once exhausted it keeps returning the last value.
type SequenceNumbers struct {
	mu      sync.Mutex
	Numbers []string
	Calls   int
}

// Generate returns the next preset number.
func (s *SequenceNumbers) Generate(time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if len(s.Numbers) == 0 {
		return "ORD-0000-" + strings.Repeat("0", 6)
	}
	idx := s.Calls - 1
	if idx >= len(s.Numbers) {
		idx = len(s.Numbers) - 1
	}
	return s.Numbers[idx]
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock frozen at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current frozen instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

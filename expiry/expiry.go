// Package expiry turns a relative or absolute expiry specification into an
// absolute epoch-millisecond timestamp.
package expiry

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDuration = errors.New(`expire must be a string like "1h" or "1d"`)
	ErrNotInFuture     = errors.New("expire must be later than now")
)

const (
	hourMillis = int64(time.Hour / time.Millisecond)
	dayMillis  = 24 * hourMillis
)

// Spec is an expiry specification. It is never stored as-is.
type Spec interface {
	deadline(now time.Time) (int64, error)
}

// In is a duration relative to the time of the write: "<integer>h" or
// "<integer>d", unit case-insensitive.
type In string

// At is an absolute instant in epoch milliseconds.
type At int64

// AtTime returns the absolute spec for t.
func AtTime(t time.Time) At {
	return At(t.UnixMilli())
}

func (in In) deadline(now time.Time) (int64, error) {
	s := strings.ToLower(string(in))
	if s == "" {
		return 0, ErrInvalidDuration
	}

	var unit int64
	switch s[len(s)-1] {
	case 'h':
		unit = hourMillis
	case 'd':
		unit = dayMillis
	default:
		return 0, ErrInvalidDuration
	}

	count, err := strconv.ParseInt(strings.TrimSpace(s[:len(s)-1]), 10, 64)
	if err != nil {
		return 0, ErrInvalidDuration
	}
	return addClamped(now.UnixMilli(), count, unit), nil
}

// addClamped returns base + count*unit, saturating at the int64 bounds.
func addClamped(base, count, unit int64) int64 {
	switch {
	case count > 0 && count > (math.MaxInt64-max(base, 0))/unit:
		return math.MaxInt64
	case count < 0 && count < (math.MinInt64-min(base, 0))/unit:
		return math.MinInt64
	}
	return base + count*unit
}

func (at At) deadline(now time.Time) (int64, error) {
	if now.UnixMilli() < int64(at) {
		return int64(at), nil
	}
	return 0, ErrNotInFuture
}

// Normalize resolves spec against now. A nil spec reports ok=false with no
// error, meaning the value is stored without an envelope.
func Normalize(spec Spec, now time.Time) (deadline int64, ok bool, err error) {
	if spec == nil {
		return 0, false, nil
	}
	deadline, err = spec.deadline(now)
	if err != nil {
		return 0, false, err
	}
	return deadline, true, nil
}

// Parse reads a spec from text: a bare integer is an absolute epoch-millisecond
// instant, anything else is a relative duration.
func Parse(s string) Spec {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return At(ms)
	}
	return In(s)
}

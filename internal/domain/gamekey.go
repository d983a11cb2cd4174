package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const gameKeyParts = 3

// GameKey identifies a game by the day it was played and its sequence number
// within that day. "23_10_07" is sequence 0, "23_10_07(2)" is sequence 2.
type GameKey struct {
	Year  int
	Month int
	Day   int
	Seq   int
}

// ParseGameKey parses YY_MM_DD or YY_MM_DD(N).
func ParseGameKey(raw string) (GameKey, error) {
	s := strings.TrimSpace(raw)

	base := s
	seq := 0
	if i := strings.IndexByte(s, '('); i >= 0 {
		base = s[:i]
		suffix := s[i+1:]
		if !strings.HasSuffix(suffix, ")") {
			return GameKey{}, invalidKey(raw, errors.New("unterminated sequence suffix"))
		}
		n, err := strconv.Atoi(strings.TrimSuffix(suffix, ")"))
		if err != nil || n < 0 {
			return GameKey{}, invalidKey(raw, fmt.Errorf("bad sequence number %q", suffix))
		}
		seq = n
	}

	parts := strings.Split(base, "_")
	if len(parts) != gameKeyParts {
		return GameKey{}, invalidKey(raw, errors.New("expected format YY_MM_DD"))
	}

	nums := make([]int, gameKeyParts)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return GameKey{}, invalidKey(raw, fmt.Errorf("non-numeric part %q", p))
		}
		nums[i] = n
	}

	// Keys are stored with a two digit year, so only 2000-2099 round-trips.
	year := nums[0]
	if year < 100 {
		year += 2000
	}
	if year < 2000 || year > 2099 {
		return GameKey{}, invalidKey(raw, fmt.Errorf("year %d out of range", nums[0]))
	}
	k := GameKey{Year: year, Month: nums[1], Day: nums[2], Seq: seq}

	d := k.Date()
	if d.Year() != k.Year || int(d.Month()) != k.Month || d.Day() != k.Day {
		return GameKey{}, invalidKey(raw, errors.New("not a calendar date"))
	}
	return k, nil
}

func invalidKey(raw string, err error) error {
	return &ValidationError{Field: "date_key", Value: raw, Err: err}
}

// Date is midnight UTC of the game's day.
func (k GameKey) Date() time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
}

// Before orders by day, then by sequence within the day.
func (k GameKey) Before(o GameKey) bool {
	if a, b := k.Date(), o.Date(); !a.Equal(b) {
		return a.Before(b)
	}
	return k.Seq < o.Seq
}

func (k GameKey) IsZero() bool {
	return k == GameKey{}
}

// String renders the canonical stored form.
func (k GameKey) String() string {
	s := fmt.Sprintf("%02d_%02d_%02d", k.Year%100, k.Month, k.Day)
	if k.Seq > 0 {
		s += fmt.Sprintf("(%d)", k.Seq)
	}
	return s
}

package domain

import (
	"strconv"
	"strings"
)

// UnratedCode is the sentinel written for players without a rating.
const UnratedCode = "UR"

// Rating is the manually curated PUTR value. It is either a number or an
// unrated sentinel code; the code is kept so it round-trips unchanged.
type Rating struct {
	value float64
	code  string
}

func Rated(v float64) Rating {
	return Rating{value: v}
}

func Unrated() Rating {
	return Rating{code: UnratedCode}
}

// ParseRating reads the stored/wire form. Empty input is a zero rating, numeric
// input is rated, anything else is an unrated code.
func ParseRating(s string) Rating {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rated(0)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Rating{code: s}
	}
	return Rated(v)
}

func (r Rating) IsRated() bool {
	return r.code == ""
}

// Value returns the numeric rating and whether the player is rated.
func (r Rating) Value() (float64, bool) {
	return r.value, r.IsRated()
}

func (r Rating) String() string {
	if !r.IsRated() {
		return r.code
	}
	s := strconv.FormatFloat(r.value, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rating) UnmarshalText(text []byte) error {
	*r = ParseRating(string(text))
	return nil
}

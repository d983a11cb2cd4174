package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		in        string
		wantRated bool
		wantValue float64
		wantWire  string
	}{
		{in: "", wantRated: true, wantValue: 0, wantWire: "0.0"},
		{in: "0.0", wantRated: true, wantValue: 0, wantWire: "0.0"},
		{in: "12.5", wantRated: true, wantValue: 12.5, wantWire: "12.5"},
		{in: " 30 ", wantRated: true, wantValue: 30, wantWire: "30.0"},
		{in: "-4.25", wantRated: true, wantValue: -4.25, wantWire: "-4.25"},
		{in: "UR", wantRated: false, wantWire: "UR"},
		{in: "NEW", wantRated: false, wantWire: "NEW"},
	}

	for _, tt := range tests {
		r := ParseRating(tt.in)
		v, rated := r.Value()
		assert.Equal(t, tt.wantRated, rated, "rated for %q", tt.in)
		assert.Equal(t, tt.wantValue, v, "value for %q", tt.in)
		assert.Equal(t, tt.wantWire, r.String(), "wire form for %q", tt.in)
	}
}

func TestUnrated(t *testing.T) {
	r := Unrated()
	assert.False(t, r.IsRated())
	assert.Equal(t, UnratedCode, r.String())
	assert.Equal(t, r, ParseRating(r.String()))
}

func TestRatingJSON(t *testing.T) {
	type payload struct {
		Rating Rating `json:"rating"`
	}

	out, err := json.Marshal(payload{Rating: Rated(7)})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"rating":"7.0"}`, string(out))

	var in payload
	assert.NoError(t, json.Unmarshal([]byte(`{"rating":"UR"}`), &in))
	assert.False(t, in.Rating.IsRated())
}

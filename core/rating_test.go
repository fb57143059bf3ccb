package core

import (
	"math"
	"testing"
)

func TestClampRating(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "in range untouched", in: 3.7, want: 3.7},
		{name: "lower bound kept", in: 1.0, want: 1.0},
		{name: "upper bound kept", in: 5.0, want: 5.0},
		{name: "below range clamps to min", in: 0.2, want: 1.0},
		{name: "negative clamps to min", in: -10, want: 1.0},
		{name: "above range clamps to max", in: 7.3, want: 5.0},
		{name: "nan treated as min", in: math.NaN(), want: 1.0},
		{name: "positive inf treated as min", in: math.Inf(1), want: 1.0},
		{name: "negative inf treated as min", in: math.Inf(-1), want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampRating(tt.in)
			if got != tt.want {
				t.Errorf("ClampRating(%v) = %v, want %v", tt.in, got, tt.want)
			}
			// 幂等
			if again := ClampRating(got); again != got {
				t.Errorf("ClampRating not idempotent: %v -> %v", got, again)
			}
		})
	}
}

func TestRatingHistorySet(t *testing.T) {
	h := RatingHistory{}
	h.Set(1, 4.5)
	h.Set(2, 9.9)
	h.Set(3, math.NaN())

	if got := h[1]; got != 4.5 {
		t.Errorf("h[1] = %v, want 4.5", got)
	}
	if got := h[2]; got != 5.0 {
		t.Errorf("h[2] = %v, want clamped 5.0", got)
	}
	if got := h[3]; got != 1.0 {
		t.Errorf("h[3] = %v, want clamped 1.0", got)
	}
	if !h.Rated(1) || h.Rated(99) {
		t.Error("Rated() misreports membership")
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
}

func TestRatingHistoryClone(t *testing.T) {
	h := RatingHistory{1: 4, 2: 3}
	clone := h.Clone()

	h.Set(1, 2)
	h.Set(3, 5)

	if clone[1] != 4 {
		t.Errorf("clone[1] = %v, want 4 (unaffected by later writes)", clone[1])
	}
	if clone.Rated(3) {
		t.Error("clone picked up write made after Clone()")
	}
}

package core

import (
	"math"
	"testing"
)

func TestPopularityScore(t *testing.T) {
	stat := CommunityStat{AvgRating: 4.2, Count: 320}
	want := 4.2 + 0.08*math.Log1p(320)
	if got := PopularityScore(stat, true); math.Abs(got-want) > 1e-12 {
		t.Errorf("PopularityScore = %v, want %v", got, want)
	}

	if got := PopularityScore(CommunityStat{}, false); !math.IsInf(got, -1) {
		t.Errorf("missing stat should score -Inf, got %v", got)
	}

	// 人数为 0 时只剩平均分
	if got := PopularityScore(CommunityStat{AvgRating: 3.5, Count: 0}, true); got != 3.5 {
		t.Errorf("zero-count score = %v, want 3.5", got)
	}
}

func TestFormatCommunityLine(t *testing.T) {
	if got := FormatCommunityLine(CommunityStat{AvgRating: 4.234, Count: 320}, true); got != "Community avg 4.23 (n=320)" {
		t.Errorf("FormatCommunityLine = %q", got)
	}
	if got := FormatCommunityLine(CommunityStat{}, false); got != "" {
		t.Errorf("missing stat should format empty, got %q", got)
	}
}

func TestGlobalMeanRating(t *testing.T) {
	tests := []struct {
		name  string
		stats map[int64]CommunityStat
		want  float64
	}{
		{
			name:  "empty falls back to default",
			stats: nil,
			want:  DefaultGlobalMean,
		},
		{
			name: "count weighted",
			stats: map[int64]CommunityStat{
				1: {AvgRating: 4.0, Count: 300},
				2: {AvgRating: 2.0, Count: 100},
			},
			want: (4.0*300 + 2.0*100) / 400,
		},
		{
			name: "zero count entries weigh one",
			stats: map[int64]CommunityStat{
				1: {AvgRating: 4.0, Count: 0},
				2: {AvgRating: 2.0, Count: 0},
			},
			want: 3.0,
		},
		{
			name: "non finite averages skipped",
			stats: map[int64]CommunityStat{
				1: {AvgRating: math.NaN(), Count: 500},
				2: {AvgRating: 4.0, Count: 10},
			},
			want: 4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GlobalMeanRating(tt.stats)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("GlobalMeanRating = %v, want %v", got, tt.want)
			}
		})
	}
}

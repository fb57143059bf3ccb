package filter

import (
	"context"
	"testing"

	"github.com/rushteam/cinekit/core"
)

type testIndex struct {
	known map[int64]int64
}

func (x *testIndex) UserIdx(string) (int64, bool) { return 0, true }
func (x *testIndex) ItemIdx(id int64) (int64, bool) {
	idx, ok := x.known[id]
	return idx, ok
}

func TestRatedFilter(t *testing.T) {
	rctx := &core.RecommendContext{Ratings: core.RatingHistory{1: 5}}
	f := &RatedFilter{}

	if got, _ := f.ShouldFilter(context.Background(), rctx, core.NewItem(1)); !got {
		t.Error("rated movie must be filtered")
	}
	if got, _ := f.ShouldFilter(context.Background(), rctx, core.NewItem(2)); got {
		t.Error("unrated movie must pass")
	}
}

func TestScoreableFilter(t *testing.T) {
	f := &ScoreableFilter{Index: &testIndex{known: map[int64]int64{1: 0}}}

	if got, _ := f.ShouldFilter(context.Background(), nil, core.NewItem(1)); got {
		t.Error("indexed movie must pass")
	}
	if got, _ := f.ShouldFilter(context.Background(), nil, core.NewItem(2)); !got {
		t.Error("movie outside the model index must be filtered")
	}
}

func TestExprFilter(t *testing.T) {
	rctx := &core.RecommendContext{ProfileKey: "base", Ratings: core.RatingHistory{}}

	it := core.NewItem(1)
	it.Title = "Cube"
	it.Genres = []string{"Horror"}
	it.Predicted = 2.8
	it.CommunityCount = 3

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{name: "matches low-signal movie", expr: "item.community_count < 5 && item.predicted < 3.0", want: true},
		{name: "genre membership", expr: `"Horror" in item.genres`, want: true},
		{name: "no match passes", expr: "item.predicted >= 4.6", want: false},
		{name: "empty expression filters nothing", expr: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &ExprFilter{Expr: tt.expr}
			got, err := f.ShouldFilter(context.Background(), rctx, it)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestFilterNodeLabelsAndRemoves(t *testing.T) {
	rctx := &core.RecommendContext{Ratings: core.RatingHistory{1: 4}}
	node := &FilterNode{Filters: []Filter{
		&RatedFilter{},
		&ScoreableFilter{Index: &testIndex{known: map[int64]int64{2: 0, 3: 1}}},
	}}

	items := []*core.Item{core.NewItem(1), core.NewItem(2), core.NewItem(3), core.NewItem(4)}
	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("got %d items, want 2", len(out))
	}
	for _, it := range out {
		if it.ID != 2 && it.ID != 3 {
			t.Errorf("unexpected survivor %d", it.ID)
		}
	}

	// 被过滤的影片带上过滤原因 label
	filtered := items[0]
	if lbl, ok := filtered.Labels["filtered"]; !ok || lbl.Source != "filter.rated" {
		t.Errorf("filtered label = %+v, want source filter.rated", lbl)
	}
}

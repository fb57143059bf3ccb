package rank

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/cinekit/core"
)

func TestBayesNodeProcess(t *testing.T) {
	a := core.NewItem(1)
	a.Title = "Heat"
	a.Predicted = 4.2
	b := core.NewItem(2)
	b.Title = "Dogma"
	b.Predicted = 4.2 // 模型分相同，但没有社区统计

	stats := map[int64]core.CommunityStat{
		1: {AvgRating: 4.5, Count: 150},
	}
	cat := core.NewCatalog([]*core.Item{a, b}, stats)

	node := &BayesNode{Catalog: cat}
	out, err := node.Process(context.Background(), nil, []*core.Item{a, b})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d items, want 2", len(out))
	}

	// 有统计的影片领先：冷启动惩罚 + 满额热度惩罚把 b 压下去
	if out[0].ID != 1 {
		t.Errorf("expected item with community stats first, got id=%d", out[0].ID)
	}
	if out[0].CommunityCount != 150 {
		t.Errorf("CommunityCount = %d, want 150", out[0].CommunityCount)
	}
	if out[1].CommunityCount != 0 {
		t.Errorf("stat-less CommunityCount = %d, want 0", out[1].CommunityCount)
	}

	if lbl, ok := out[0].Labels["rank_mode"]; !ok || lbl.Value != "bayes" {
		t.Errorf("rank_mode label = %+v, want bayes", lbl)
	}
}

func TestBayesNodeZeroCountStat(t *testing.T) {
	a := core.NewItem(1)
	a.Title = "Solaris"
	a.Predicted = 3.0

	// 统计表里有条目但评分人数为 0：按冷启动处理
	stats := map[int64]core.CommunityStat{
		1: {AvgRating: 4.8, Count: 0},
	}
	cat := core.NewCatalog([]*core.Item{a}, stats)

	node := &BayesNode{Catalog: cat}
	out, err := node.Process(context.Background(), nil, []*core.Item{a})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// 3.0 - 0.25 - 0.35·e^0 = 2.40，不受 avg=4.8 的影响
	if got := out[0].Score; math.Abs(got-2.40) > 1e-12 {
		t.Errorf("zero-count score = %v, want 2.40", got)
	}
}

func TestBonusNodeProcess(t *testing.T) {
	a := core.NewItem(1)
	a.Title = "Fargo"
	a.Genres = []string{"Crime"}
	a.Predicted = 3.8
	b := core.NewItem(2)
	b.Title = "Cube"
	b.Genres = []string{"Horror"}
	b.Predicted = 3.8

	rctx := &core.RecommendContext{
		Prefs: []core.GenrePreference{
			{Genre: "Crime", Score: 3.0, Count: 2},
			{Genre: "Horror", Score: -1.0, Count: 1},
		},
	}

	node := &BonusNode{}
	out, err := node.Process(context.Background(), rctx, []*core.Item{a, b})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// Crime 是最高正偏好（加成 1.0），最终分 3.8 + 1.0×0.45
	if out[0].ID != 1 {
		t.Errorf("expected preferred-genre item first, got id=%d", out[0].ID)
	}
	if want := 3.8 + 0.45; out[0].Score != want {
		t.Errorf("bonus score = %v, want %v", out[0].Score, want)
	}
	// 负偏好不产生加成
	if out[1].Score != 3.8 {
		t.Errorf("negative-pref score = %v, want 3.8", out[1].Score)
	}
}

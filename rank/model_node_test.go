package rank

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/predict"
)

type stubIndex struct {
	users map[string]int64
	items map[int64]int64
}

func (s *stubIndex) UserIdx(profileKey string) (int64, bool) {
	idx, ok := s.users[profileKey]
	return idx, ok
}

func (s *stubIndex) ItemIdx(itemID int64) (int64, bool) {
	idx, ok := s.items[itemID]
	return idx, ok
}

// stubModel 按 itemIdx 查表返回分数。
type stubModel struct {
	scores map[int64]float64
}

func (m *stubModel) ScoreBatch(_ context.Context, _ int64, itemIdxs []int64) ([]float64, error) {
	out := make([]float64, len(itemIdxs))
	for i, idx := range itemIdxs {
		out[i] = m.scores[idx]
	}
	return out, nil
}

func TestModelNodeProcess(t *testing.T) {
	index := &stubIndex{
		users: map[string]int64{"base": 0},
		items: map[int64]int64{1: 10, 2: 11, 3: 12, 4: 13},
	}
	model := &stubModel{scores: map[int64]float64{
		10: 4.3,
		11: math.NaN(), // 模型输出异常，该片被丢弃
		12: 7.2,        // 越界，裁剪到 5
		13: 2.0,
	}}

	node := &ModelNode{Predictor: &predict.BatchedPredictor{Model: model, Index: index}}

	items := []*core.Item{core.NewItem(1), core.NewItem(2), core.NewItem(3), core.NewItem(4), core.NewItem(5)}
	rctx := &core.RecommendContext{ProfileKey: "base"}

	out, err := node.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// 影片 2（NaN）与影片 5（不在模型索引）被丢弃
	if len(out) != 3 {
		t.Fatalf("got %d items, want 3", len(out))
	}

	byID := map[int64]*core.Item{}
	for _, it := range out {
		byID[it.ID] = it
	}
	if _, ok := byID[2]; ok {
		t.Error("item with NaN score must be dropped")
	}
	if _, ok := byID[5]; ok {
		t.Error("item without model index must be dropped")
	}

	if got := byID[1].Predicted; got != 4.3 {
		t.Errorf("item 1 predicted = %v, want 4.3", got)
	}
	if got := byID[3].Predicted; got != 5.0 {
		t.Errorf("item 3 predicted = %v, want clamped 5.0", got)
	}

	if lbl, ok := byID[1].Labels["match"]; !ok || lbl.Value != MatchWorthTry {
		t.Errorf("item 1 match label = %+v, want %q", lbl, MatchWorthTry)
	}
	if lbl, ok := byID[4].Labels["match"]; !ok || lbl.Value != MatchLongShot {
		t.Errorf("item 4 match label = %+v, want %q", lbl, MatchLongShot)
	}
}

func TestModelNodeUnknownProfile(t *testing.T) {
	index := &stubIndex{users: map[string]int64{}, items: map[int64]int64{1: 10}}
	node := &ModelNode{Predictor: &predict.BatchedPredictor{Model: &stubModel{}, Index: index}}

	rctx := &core.RecommendContext{ProfileKey: "stranger"}
	_, err := node.Process(context.Background(), rctx, []*core.Item{core.NewItem(1)})
	if !core.IsNotFound(err) {
		t.Errorf("unknown profile should yield NOT_FOUND, got %v", err)
	}
}

package rank

import (
	"context"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/pipeline"
	"github.com/rushteam/cinekit/pkg/utils"
	"github.com/rushteam/cinekit/profile"
)

// BonusNode 是偏好加成排序 Node（两种组合模式之一）：
// final = predicted + 0.45 × avg(题材加成)。
// 不消费社区统计；适合统计数据不可用的部署形态。
//
// 前置条件：ModelNode 已经写入裁剪后的 Predicted。
type BonusNode struct{}

func (n *BonusNode) Name() string        { return "rank.bonus" }
func (n *BonusNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *BonusNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	bonusMap := profile.BonusMap(rctx.Prefs)
	for _, it := range items {
		if it == nil {
			continue
		}
		it.Score = it.Predicted + profile.GenreBonus(it.Genres, bonusMap)
		it.PutLabel("rank_mode", utils.Label{Value: "bonus", Source: "rank"})
	}

	sortByScore(items)
	return items, nil
}

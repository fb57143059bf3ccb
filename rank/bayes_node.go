package rank

import (
	"context"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/pipeline"
	"github.com/rushteam/cinekit/pkg/utils"
)

// BayesNode 是贝叶斯收缩排序 Node（默认组合模式）：
// 把模型分与向全局均值收缩后的社区均值加权组合，再减去热度置信惩罚。
// 无社区统计的影片改用冷启动惩罚，仍可进入结果。
//
// 同时把社区评分人数写入 item.CommunityCount，供 fresh 分组使用。
// 前置条件：ModelNode 已经写入裁剪后的 Predicted。
type BayesNode struct {
	Catalog *core.Catalog

	// M 先验权重，<=0 时取默认值。
	M float64

	Config core.RankConfig
}

func (n *BayesNode) Name() string        { return "rank.bayes" }
func (n *BayesNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *BayesNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Catalog == nil || len(items) == 0 {
		return items, nil
	}

	m := n.M
	if m <= 0 {
		cfg := n.Config
		if cfg == nil {
			cfg = &core.DefaultRankConfig{}
		}
		m = cfg.DefaultBayesM()
	}
	globalMean := core.GlobalMeanRating(n.Catalog.Stats())

	for _, it := range items {
		if it == nil {
			continue
		}
		stat, ok := n.Catalog.Stat(it.ID)
		if ok {
			it.CommunityCount = stat.Count
		}
		it.Score = ShrinkageScore(it.Predicted, stat, ok, m, globalMean)
		it.PutLabel("rank_mode", utils.Label{Value: "bayes", Source: "rank"})
	}

	sortByScore(items)
	return items, nil
}

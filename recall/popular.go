package recall

import (
	"context"
	"strconv"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/pipeline"
)

// CommunityPopular 是社区热门召回源：全目录按热度分
// （avg + 0.08 × ln(1+count)）取 TopN。
//   - 如果配置了 KeyValueStore，优先从有序集合读取预计算的热门序列
//     （离线任务用 ZAdd 维护，member 为影片 ID）
//   - Store 缺失或读取失败时，退回到在目录统计上现算
//
// CommunityPopular 同时实现了 Source 和 Node 接口。
type CommunityPopular struct {
	Catalog *core.Catalog

	// Index 可选；配置后只对模型可打分的影片排序取 TopN，
	// 不可打分的影片不占召回名额。
	Index core.ModelIndex

	// Store 可选的预计算热门序列来源。
	Store core.KeyValueStore

	// Key 有序集合的 key，例如 "popular:movies"。
	Key string

	// Limit 召回上限，<=0 时取默认值。
	Limit int

	Config core.RankConfig
}

func (r *CommunityPopular) Name() string        { return "recall.popular" }
func (r *CommunityPopular) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *CommunityPopular) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *CommunityPopular) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Catalog == nil {
		return nil, nil
	}

	limit := r.Limit
	if limit <= 0 {
		cfg := r.Config
		if cfg == nil {
			cfg = &core.DefaultRankConfig{}
		}
		limit = cfg.DefaultCommunityLimit()
	}

	// 优先读预计算序列
	if r.Store != nil && r.Key != "" {
		if items := r.fromStore(ctx, limit); len(items) > 0 {
			return items, nil
		}
	}

	// 没有任何社区统计时，该策略不产出候选（降级，不是错误）
	if len(r.Catalog.Stats()) == 0 {
		return nil, nil
	}

	pool := r.Catalog.Items()
	if r.Index != nil {
		scoreable := make([]*core.Item, 0, len(pool))
		for _, it := range pool {
			if it == nil {
				continue
			}
			if _, ok := r.Index.ItemIdx(it.ID); !ok {
				continue
			}
			scoreable = append(scoreable, it)
		}
		pool = scoreable
	}

	sorted := sortByPopularity(pool, r.Catalog)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]*core.Item, 0, len(sorted))
	for _, it := range sorted {
		out = append(out, it.Clone())
	}
	return out, nil
}

func (r *CommunityPopular) fromStore(ctx context.Context, limit int) []*core.Item {
	members, err := r.Store.ZRange(ctx, r.Key, 0, int64(limit)-1)
	if err != nil || len(members) == 0 {
		return nil
	}
	out := make([]*core.Item, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		if it, ok := r.Catalog.ByID(id); ok {
			out = append(out, it.Clone())
		}
	}
	return out
}

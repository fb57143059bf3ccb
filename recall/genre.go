package recall

import (
	"context"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/pipeline"
)

// GenreAffinity 是题材亲和召回源：对用户偏好度最高的 TopGenres 个题材，
// 各取社区热度最高的 PerGenreLimit 部影片。
//
// 偏好列表为空时（新用户）返回空结果，pass 降级为随机采样 + 社区热门，
// 这是预期行为而不是错误。
// GenreAffinity 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type GenreAffinity struct {
	Catalog *core.Catalog

	// TopGenres 参与召回的偏好题材数，<=0 时取 core.DefaultRankConfig 默认值。
	TopGenres int

	// PerGenreLimit 每个题材的召回上限，<=0 时取默认值。
	PerGenreLimit int

	Config core.RankConfig
}

func (r *GenreAffinity) Name() string        { return "recall.genre_affinity" }
func (r *GenreAffinity) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *GenreAffinity) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *GenreAffinity) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Catalog == nil || rctx == nil || len(rctx.Prefs) == 0 {
		return nil, nil
	}

	cfg := r.Config
	if cfg == nil {
		cfg = &core.DefaultRankConfig{}
	}
	topGenres := r.TopGenres
	if topGenres <= 0 {
		topGenres = cfg.DefaultTopGenres()
	}
	perGenre := r.PerGenreLimit
	if perGenre <= 0 {
		perGenre = cfg.DefaultPerGenreLimit()
	}

	var out []*core.Item
	for _, genre := range rctx.TopGenres(topGenres) {
		sorted := sortByPopularity(r.Catalog.ByGenre(genre), r.Catalog)
		if len(sorted) > perGenre {
			sorted = sorted[:perGenre]
		}
		for _, it := range sorted {
			out = append(out, it.Clone())
		}
	}
	return out, nil
}

package recall

import (
	"context"
	"math/rand"
	"sync"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/pipeline"
)

// RandomSample 是均匀随机采样召回源：对所有“可打分且未评分”的影片做
// Fisher–Yates 洗牌后截取前 Limit 部。
//
// 这个源的职责是把用户口味之外的目录多样性带进候选池，线上行为
// 刻意不确定；测试通过注入固定种子的 Rand 获得可复现结果。
type RandomSample struct {
	Catalog *core.Catalog
	Index   core.ModelIndex

	// Limit 采样上限，<=0 时取默认值。
	Limit int

	// Rand 可注入的随机源；为空时使用包级默认源。
	Rand *rand.Rand

	Config core.RankConfig

	mu sync.Mutex // Rand 非并发安全，fan-out 下串行化使用
}

func (r *RandomSample) Name() string        { return "recall.random" }
func (r *RandomSample) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *RandomSample) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *RandomSample) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
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
		limit = cfg.DefaultRandomSample()
	}

	// 只在可打分且未评分的影片上采样
	pool := make([]*core.Item, 0, r.Catalog.Size())
	for _, it := range r.Catalog.Items() {
		if rctx != nil && rctx.Rated(it.ID) {
			continue
		}
		if r.Index != nil {
			if _, ok := r.Index.ItemIdx(it.ID); !ok {
				continue
			}
		}
		pool = append(pool, it)
	}

	if len(pool) > limit {
		r.shuffle(pool)
		pool = pool[:limit]
	}

	out := make([]*core.Item, 0, len(pool))
	for _, it := range pool {
		out = append(out, it.Clone())
	}
	return out, nil
}

// shuffle 做一次 Fisher–Yates 洗牌。
func (r *RandomSample) shuffle(pool []*core.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Rand != nil {
		r.Rand.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		return
	}
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
}

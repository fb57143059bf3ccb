// Package service 提供面向调用方的编排层：一次推荐 pass 的完整执行，
// 以及远程模型服务的 BatchPredictor 客户端。
package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/pipeline"
	"github.com/rushteam/cinekit/profile"
	"github.com/rushteam/cinekit/rerank"
)

// Result 是一次推荐 pass 的产出。
//
// NeedMoreRatings 为 true 时表示评分数未达门槛，Sections 为空，
// 这是正常产出而非错误；RatingsNeeded 给出还差的评分数。
type Result struct {
	Sections []rerank.Section

	// Prefs 本次 pass 推断出的题材偏好，按偏好分降序。
	Prefs []core.GenrePreference

	NeedMoreRatings bool
	RatingsNeeded   int

	// CandidateCount 进入排序的候选数（过滤之后、截断之前）。
	CandidateCount int

	Elapsed time.Duration

	// Generation 本次 pass 的代号，调用方可用于对齐异步展示。
	Generation int64
}

// Recommender 编排一次完整的推荐 pass：
// 偏好推断 → Pipeline（召回/过滤/排序/重排）→ 分组装配。
//
// 同一个 Recommender 可被并发触发；每次触发递增代号，
// 发布前发现已有更新的触发时返回 STALE，旧结果整体丢弃。
type Recommender struct {
	Catalog  *core.Catalog
	Pipeline *pipeline.Pipeline
	Sections *rerank.SectionBuilder

	// MinRatings 产出推荐所需的最少评分数，<=0 时取默认值。
	MinRatings int

	Config core.RankConfig

	generation atomic.Int64
}

// Recommend 执行一次 pass。评分数不足时返回 NeedMoreRatings 结果；
// pass 被更新的触发取代时返回 STALE 错误。
func (r *Recommender) Recommend(ctx context.Context, profileKey string, ratings core.RatingHistory) (*Result, error) {
	gen := r.generation.Add(1)
	start := time.Now()

	cfg := r.Config
	if cfg == nil {
		cfg = &core.DefaultRankConfig{}
	}
	minRatings := r.MinRatings
	if minRatings <= 0 {
		minRatings = cfg.DefaultMinRatings()
	}

	if ratings.Len() < minRatings {
		return &Result{
			NeedMoreRatings: true,
			RatingsNeeded:   minRatings - ratings.Len(),
			Elapsed:         time.Since(start),
			Generation:      gen,
		}, nil
	}

	rctx := &core.RecommendContext{
		ProfileKey: profileKey,
		Ratings:    ratings,
		Prefs:      profile.ComputePreferences(ratings, r.Catalog),
	}

	items, err := r.Pipeline.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	// 执行期间有更新的触发进来，本次结果已过期，整体丢弃。
	if r.generation.Load() != gen {
		return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeStale, "recommend: pass superseded")
	}

	builder := r.Sections
	if builder == nil {
		builder = &rerank.SectionBuilder{Config: cfg}
	}

	return &Result{
		Sections:       builder.Build(rctx, items),
		Prefs:          rctx.Prefs,
		CandidateCount: len(items),
		Elapsed:        time.Since(start),
		Generation:     gen,
	}, nil
}

// Generation 返回最近一次触发的代号。
func (r *Recommender) Generation() int64 {
	return r.generation.Load()
}

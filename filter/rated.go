package filter

import (
	"context"

	"github.com/rushteam/cinekit/core"
)

// RatedFilter 过滤掉用户已经评过分的影片。
// 评分历史从 RecommendContext 读取；召回源自身也会尽量排除已评分影片，
// 这里是候选池出口的最终兜底。
type RatedFilter struct{}

func (f *RatedFilter) Name() string {
	return "filter.rated"
}

func (f *RatedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil {
		return false, nil
	}
	return rctx.Rated(item.ID), nil
}

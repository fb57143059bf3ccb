package filter

import (
	"context"

	"github.com/rushteam/cinekit/core"
)

// ScoreableFilter 过滤掉模型无法打分的影片（在模型索引映射中不存在）。
// 缺失映射意味着“不可打分”，静默过滤而不是报错；
// predict 包在批量预测时会再次跳过无法解析的影片。
type ScoreableFilter struct {
	Index core.ModelIndex
}

func (f *ScoreableFilter) Name() string {
	return "filter.scoreable"
}

func (f *ScoreableFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Index == nil {
		return false, nil
	}
	_, ok := f.Index.ItemIdx(item.ID)
	return !ok, nil
}

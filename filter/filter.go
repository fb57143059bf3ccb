package filter

import (
	"context"

	"github.com/rushteam/cinekit/core"
)

// Filter 判定一部候选影片是否应从 pass 中移除。
// 返回 true 表示移除（已评分/无模型索引/命中表达式等），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称，FilterNode 用它生成 filtered 标签。
	Name() string

	// ShouldFilter 对单部影片做判定；错误会中止整个 pass。
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

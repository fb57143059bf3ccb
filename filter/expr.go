package filter

import (
	"context"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/pkg/dsl"
)

// ExprFilter 是表达式过滤器：用 CEL 表达式声明过滤规则，命中即过滤。
// 规则可以放在 pipeline 配置里，运营调整无须改代码。
//
// 示例：
//   - `item.community_count < 5 && item.predicted < 3.0`
//   - `"Horror" in item.genres`
type ExprFilter struct {
	// Expr CEL 表达式；为空时不过滤任何影片。
	Expr string
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}

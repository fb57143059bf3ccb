package pipeline

import (
	"context"

	"github.com/rushteam/cinekit/core"
)

// Pipeline 是 Cinekit 的核心抽象：把一次排序 pass 拆成可组合的 Node 链
// （Recall → Filter → Rank → ReRank）。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行各 Node。每个 Node 执行前检查 ctx，
// pass 被取消时立即中止，不产出半成品结果。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

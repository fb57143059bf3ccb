package pipeline

import (
	"context"

	"github.com/rushteam/cinekit/core"
)

// Kind 标记 Node 所处的阶段，配置校验与按阶段打点都依赖它。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：生成候选集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除已评分/不可打分的候选
	KindRank        Kind = "rank"        // 排序阶段：批量预测并计算最终分
	KindReRank      Kind = "rerank"      // 重排阶段：截断/分组装配
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充元信息或最终修饰
)

// Node 是 Pipeline 的最小可组合单元，统一为“输入 items -> 输出 items”：
// Recall 节点从空输入生成候选，Filter/Rank/ReRank 节点对候选做变换。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

package rank

import (
	"context"
	"math"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/pipeline"
	"github.com/rushteam/cinekit/predict"
	"github.com/rushteam/cinekit/pkg/utils"
)

// ModelNode 是批量预测 Node：通过 BatchedPredictor 为候选取得模型分，
// 裁剪到 [1,5] 后写入 item.Predicted，并打上匹配档位 label。
//
// 边界约定：
//   - 裁剪只发生在这里，发生一次；后续组合节点直接消费 Predicted
//   - 模型输出 NaN/±Inf 的影片在此被丢弃，不进入任何打分列表
//   - 没拿到预测分的影片（缺模型索引等）同样被丢弃
//   - 模型调用失败使整个 pass 失败，错误原因向上透出
type ModelNode struct {
	Predictor *predict.BatchedPredictor
}

func (n *ModelNode) Name() string        { return "rank.model" }
func (n *ModelNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ModelNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Predictor == nil || len(items) == 0 {
		return items, nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it != nil {
			ids = append(ids, it.ID)
		}
	}

	scores, err := n.Predictor.Predict(ctx, rctx.ProfileKey, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		raw, ok := scores[it.ID]
		if !ok {
			continue
		}
		if math.IsNaN(raw) || math.IsInf(raw, 0) {
			continue
		}
		it.Predicted = core.ClampRating(raw)
		it.PutLabel("rank_model", utils.Label{Value: "batch_predictor", Source: "rank"})
		it.PutLabel("match", utils.Label{Value: MatchLabel(it.Predicted), Source: "rank"})
		out = append(out, it)
	}
	return out, nil
}

package predict

import (
	"context"
	"fmt"

	"github.com/rushteam/cinekit/core"
)

// BatchedPredictor 是模型调用的统一入口：去重 → 缓存命中分拣 →
// 索引解析 → 定长分批 → 逐批调用模型并整批写缓存。
//
// 失败语义：
//   - 请求的 ProfileKey 不在模型索引里是配置错误，整体失败
//   - 个别影片缺模型索引是可解性缺口，静默跳过，不报错
//   - 某一批模型调用失败时该批不写缓存（整批原子），pass 整体失败，
//     但之前成功批次的缓存保留
type BatchedPredictor struct {
	Model core.BatchPredictor
	Index core.ModelIndex
	Cache PredictionCache

	// BatchSize 单批影片数，<=0 时取默认值。
	BatchSize int

	Config core.RankConfig
}

// Predict 对一个消费者批量预测一组影片，返回 影片ID -> 原始模型分。
// 返回 map 只包含“请求过且可解析”的影片；NaN 等异常值原样返回，
// 由排序边界统一过滤。
func (p *BatchedPredictor) Predict(ctx context.Context, profileKey string, itemIDs []int64) (map[int64]float64, error) {
	if p.Model == nil || p.Index == nil {
		return nil, core.NewDomainError(core.ModulePredict, core.ErrorCodeInvalidInput, "predict: model or index not configured")
	}

	userIdx, ok := p.Index.UserIdx(profileKey)
	if !ok {
		return nil, core.NewDomainError(core.ModulePredict, core.ErrorCodeNotFound,
			fmt.Sprintf("predict: profile %q not in model index", profileKey))
	}

	// 去重，保持请求顺序
	unique := make([]int64, 0, len(itemIDs))
	seen := make(map[int64]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return map[int64]float64{}, nil
	}

	cached := map[int64]float64{}
	if p.Cache != nil {
		var err error
		cached, err = p.Cache.GetBatch(ctx, profileKey, unique)
		if err != nil {
			return nil, core.WrapDomainError(core.ModulePredict, core.ErrorCodeUnavailable, "predict: cache read failed", err)
		}
	}

	// 缺失且可解析的影片，保持顺序
	type pending struct {
		id  int64
		idx int64
	}
	missing := make([]pending, 0, len(unique))
	for _, id := range unique {
		if _, ok := cached[id]; ok {
			continue
		}
		idx, ok := p.Index.ItemIdx(id)
		if !ok {
			continue
		}
		missing = append(missing, pending{id: id, idx: idx})
	}

	batchSize := p.BatchSize
	if batchSize <= 0 {
		cfg := p.Config
		if cfg == nil {
			cfg = &core.DefaultRankConfig{}
		}
		batchSize = cfg.DefaultBatchSize()
	}

	fresh := make(map[int64]float64, len(missing))
	for start := 0; start < len(missing); start += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + batchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		idxs := make([]int64, len(batch))
		for i, b := range batch {
			idxs[i] = b.idx
		}

		scores, err := p.Model.ScoreBatch(ctx, userIdx, idxs)
		if err != nil {
			return nil, core.WrapDomainError(core.ModulePredict, core.ErrorCodeUnavailable, "predict: model batch failed", err)
		}
		if len(scores) != len(batch) {
			return nil, core.NewDomainError(core.ModulePredict, core.ErrorCodeInternalError,
				fmt.Sprintf("predict: model returned %d scores for %d items", len(scores), len(batch)))
		}

		// 整批写缓存：要么全部落盘要么全部不落
		batchScores := make(map[int64]float64, len(batch))
		for i, b := range batch {
			batchScores[b.id] = scores[i]
		}
		if p.Cache != nil {
			if err := p.Cache.PutBatch(ctx, profileKey, batchScores); err != nil {
				return nil, core.WrapDomainError(core.ModulePredict, core.ErrorCodeUnavailable, "predict: cache write failed", err)
			}
		}
		for id, s := range batchScores {
			fresh[id] = s
		}
	}

	// 命中 + 新鲜，限定在请求过的影片范围内
	out := make(map[int64]float64, len(cached)+len(fresh))
	for _, id := range unique {
		if s, ok := cached[id]; ok {
			out[id] = s
		} else if s, ok := fresh[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

package recall

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/pipeline"
	"github.com/rushteam/cinekit/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并按策略声明顺序合并。
//
// 合并规则（固定为插入序 + 首写胜出）：
//   - 各源的结果先落到按源索引排列的槽位，等全部源结束后再顺序合并，
//     因此并发执行不影响输出顺序
//   - 相同影片 ID 只保留第一个出现的，后到的只合并 labels
//   - 合并后按 MaxCandidates 截断
//
// 单个源超时或出错时只损失该源的候选，不中断整个 pass。
type Fanout struct {
	Sources []Source

	// MaxCandidates 候选池总量上限，<=0 时取默认值。
	MaxCandidates int

	// Timeout 每个召回源的超时时间，0 表示不限制。
	Timeout time.Duration

	// MaxConcurrent 最大并发数（0 表示无限制）。
	MaxConcurrent int

	Config core.RankConfig
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 每个源一个槽位，合并时按声明顺序读取
	slots := make([][]*core.Item, len(n.Sources))
	eg, egCtx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		slot := i
		s := src
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 超时或错误时该源返回空结果，不中断其他召回源
				return nil
			}

			// 记录召回来源 label，方便 explain / 观测
			for _, it := range items {
				it.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
			}
			slots[slot] = items
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	max := n.MaxCandidates
	if max <= 0 {
		cfg := n.Config
		if cfg == nil {
			cfg = &core.DefaultRankConfig{}
		}
		max = cfg.DefaultMaxCandidates()
	}

	seen := make(map[int64]*core.Item, max)
	out := make([]*core.Item, 0, max)
	for _, items := range slots {
		for _, it := range items {
			if it == nil {
				continue
			}
			if old, ok := seen[it.ID]; ok {
				for k, v := range it.Labels {
					old.PutLabel(k, v)
				}
				continue
			}
			if len(out) >= max {
				continue
			}
			seen[it.ID] = it
			out = append(out, it)
		}
	}
	return out, nil
}

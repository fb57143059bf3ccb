package core

import "github.com/rushteam/cinekit/pkg/utils"

// Item 是排序链路中的统一承载结构：影片元信息、分数、标签。
// Title/Genres 来自目录（Catalog），加载后不再变更；
// Predicted/Score/CommunityCount 是单次排序 pass 的过程数据。
type Item struct {
	ID     int64
	Title  string
	Genres []string

	// Predicted 是模型预测分（已裁剪到 [1,5]，由 rank.ModelNode 写入）。
	Predicted float64

	// Score 是最终排序分（由 rank 节点写入，rerank 按此排序）。
	Score float64

	// CommunityCount 是社区评分人数（缺失统计时为 0）。
	CommunityCount int64

	// Labels 用于解释与策略驱动：recall_source / rank_model / match / section 等。
	Labels map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Labels: make(map[string]utils.Label),
	}
}

// Clone 复制一个 pass 专用的 Item，共享不可变的目录字段。
// 召回源从 Catalog 取物料时必须 Clone，避免多个 pass 写同一个对象。
func (it *Item) Clone() *Item {
	c := &Item{
		ID:     it.ID,
		Title:  it.Title,
		Genres: it.Genres,
		Labels: make(map[string]utils.Label, len(it.Labels)),
	}
	for k, v := range it.Labels {
		c.Labels[k] = v
	}
	return c
}

// HasGenre 判断影片是否带有指定题材。
func (it *Item) HasGenre(genre string) bool {
	for _, g := range it.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

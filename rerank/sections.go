package rerank

import (
	"sort"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/pkg/utils"
)

// Section 是装配后的一个展示分组。
type Section struct {
	// Name 分组名："overall"、"fresh"，或题材分组的题材名。
	Name string

	// Genre 题材分组对应的题材，其余分组为空。
	Genre string

	Items []*core.Item
}

// 固定分组名。题材分组直接用题材名。
const (
	SectionOverall = "overall"
	SectionFresh   = "fresh"
)

// SectionBuilder 把打分排序后的候选装配成展示分组。
//
// 分组按固定优先级填充：overall → fresh → 各偏好题材（按偏好序）。
// 全程共享一个 seen 集合，并用用户已评分的影片 ID 预置，
// 因此同一影片在一次装配里至多出现在一个分组，也绝不会是已看过的。
type SectionBuilder struct {
	// PageSize 每个分组的条数，<=0 时取默认值。
	PageSize int

	// TopGenreSections 题材分组数量，<=0 时取默认值（与召回的 TopGenres 一致）。
	TopGenreSections int

	// FreshMinCount fresh 分组要求的最少社区评分人数，<=0 时取默认值。
	FreshMinCount int64

	Config core.RankConfig
}

// Build 执行一次装配。items 须已按最终分降序（rank 节点的输出）。
func (b *SectionBuilder) Build(rctx *core.RecommendContext, items []*core.Item) []Section {
	cfg := b.Config
	if cfg == nil {
		cfg = &core.DefaultRankConfig{}
	}
	pageSize := b.PageSize
	if pageSize <= 0 {
		pageSize = cfg.DefaultPageSize()
	}
	genreSections := b.TopGenreSections
	if genreSections <= 0 {
		genreSections = cfg.DefaultTopGenres()
	}
	freshMin := b.FreshMinCount
	if freshMin <= 0 {
		freshMin = cfg.DefaultFreshMinCount()
	}

	seen := make(map[int64]struct{})
	if rctx != nil {
		for id := range rctx.Ratings {
			seen[id] = struct{}{}
		}
	}

	sections := make([]Section, 0, 2+genreSections)

	sections = append(sections, Section{
		Name:  SectionOverall,
		Items: takeUnseen(items, pageSize, seen, SectionOverall, nil),
	})

	sections = append(sections, Section{
		Name: SectionFresh,
		Items: takeUnseen(freshOrder(items), pageSize, seen, SectionFresh, func(it *core.Item) bool {
			return it.CommunityCount >= freshMin
		}),
	})

	if rctx != nil {
		for _, genre := range rctx.TopGenres(genreSections) {
			g := genre
			sections = append(sections, Section{
				Name:  g,
				Genre: g,
				Items: takeUnseen(items, pageSize, seen, g, func(it *core.Item) bool {
					return it.HasGenre(g)
				}),
			})
		}
	}

	return sections
}

// takeUnseen 按顺序收集至多 limit 个未展示且满足 keep 条件的影片，
// 并把选中的标记进 seen。
func takeUnseen(items []*core.Item, limit int, seen map[int64]struct{}, section string, keep func(*core.Item) bool) []*core.Item {
	out := make([]*core.Item, 0, limit)
	for _, it := range items {
		if len(out) >= limit {
			break
		}
		if it == nil {
			continue
		}
		if _, ok := seen[it.ID]; ok {
			continue
		}
		if keep != nil && !keep(it) {
			continue
		}
		seen[it.ID] = struct{}{}
		it.PutLabel("section", utils.Label{Value: section, Source: "rerank"})
		out = append(out, it)
	}
	return out
}

// freshOrder 为 fresh 分组重排：社区评分人数降序，最终分次之，片名兜底。
func freshOrder(items []*core.Item) []*core.Item {
	sorted := make([]*core.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i] == nil {
			return false
		}
		if sorted[j] == nil {
			return true
		}
		if sorted[i].CommunityCount != sorted[j].CommunityCount {
			return sorted[i].CommunityCount > sorted[j].CommunityCount
		}
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Title < sorted[j].Title
	})
	return sorted
}

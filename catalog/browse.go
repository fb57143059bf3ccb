package catalog

import (
	"sort"
	"strings"

	"github.com/rushteam/cinekit/core"
)

// SearchQuery 是浏览检索条件，零值匹配全部影片。
type SearchQuery struct {
	// Title 片名子串，匹配不区分大小写。
	Title string

	// Genre 题材，要求精确匹配其中一个题材。
	Genre string

	// MinCommunityCount 最少社区评分人数，0 表示不限。
	MinCommunityCount int64

	// Limit 最多返回条数，<=0 表示不限。
	Limit int
}

// Search 在目录里检索影片，按热度分降序返回，同分按片名字典序。
// 检索不消费模型分，是纯目录操作。
func Search(catalog *core.Catalog, q SearchQuery) []*core.Item {
	if catalog == nil {
		return nil
	}

	title := strings.ToLower(strings.TrimSpace(q.Title))
	out := make([]*core.Item, 0, 32)
	for _, it := range catalog.Items() {
		if it == nil {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(it.Title), title) {
			continue
		}
		if q.Genre != "" && !it.HasGenre(q.Genre) {
			continue
		}
		if q.MinCommunityCount > 0 {
			stat, ok := catalog.Stat(it.ID)
			if !ok || stat.Count < q.MinCommunityCount {
				continue
			}
		}
		out = append(out, it)
	}

	sortByPopularity(out, catalog)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// TopRated 返回社区口碑榜：先收集评分人数达到 minCount 的影片按均分降序，
// 不足 limit 时用剩余影片按热度分补齐。无统计数据时退化为热度序。
func TopRated(catalog *core.Catalog, limit int, minCount int64) []*core.Item {
	if catalog == nil || limit <= 0 {
		return nil
	}

	qualified := make([]*core.Item, 0, limit)
	rest := make([]*core.Item, 0, catalog.Size())
	for _, it := range catalog.Items() {
		if it == nil {
			continue
		}
		stat, ok := catalog.Stat(it.ID)
		if ok && stat.Count >= minCount {
			qualified = append(qualified, it)
		} else {
			rest = append(rest, it)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		si, _ := catalog.Stat(qualified[i].ID)
		sj, _ := catalog.Stat(qualified[j].ID)
		if si.AvgRating != sj.AvgRating {
			return si.AvgRating > sj.AvgRating
		}
		if si.Count != sj.Count {
			return si.Count > sj.Count
		}
		return qualified[i].Title < qualified[j].Title
	})

	if len(qualified) >= limit {
		return qualified[:limit]
	}

	sortByPopularity(rest, catalog)
	for _, it := range rest {
		if len(qualified) >= limit {
			break
		}
		qualified = append(qualified, it)
	}
	return qualified
}

// sortByPopularity 按热度分降序排序，无统计的影片沉底，同分按片名。
func sortByPopularity(items []*core.Item, catalog *core.Catalog) {
	sort.SliceStable(items, func(i, j int) bool {
		pi := core.PopularityScore(catalog.Stat(items[i].ID))
		pj := core.PopularityScore(catalog.Stat(items[j].ID))
		if pi != pj {
			return pi > pj
		}
		return items[i].Title < items[j].Title
	})
}

package recall

import (
	"sort"

	"github.com/rushteam/cinekit/core"
)

// sortByPopularity 按社区热度分降序排序，同分按片名字典序，保证输出确定。
// 不修改传入切片。
func sortByPopularity(items []*core.Item, catalog *core.Catalog) []*core.Item {
	sorted := make([]*core.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		si := core.PopularityScore(catalog.Stat(sorted[i].ID))
		sj := core.PopularityScore(catalog.Stat(sorted[j].ID))
		if si != sj {
			return si > sj
		}
		return sorted[i].Title < sorted[j].Title
	})
	return sorted
}

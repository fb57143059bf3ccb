package core

import (
	"context"
	"sort"
)

// Catalog 是一次性加载的影片目录：物料、题材索引与社区统计。
// 加载后只读共享，多个排序 pass 并发读取无须加锁。
type Catalog struct {
	items   []*Item
	byID    map[int64]*Item
	byGenre map[string][]*Item
	genres  []string
	stats   map[int64]CommunityStat
}

// NewCatalog 构建目录并建立 ID / 题材索引。
// stats 可以为 nil（无社区信号，按缺省处理，不是错误）。
func NewCatalog(items []*Item, stats map[int64]CommunityStat) *Catalog {
	c := &Catalog{
		items:   items,
		byID:    make(map[int64]*Item, len(items)),
		byGenre: make(map[string][]*Item),
		stats:   stats,
	}
	if c.stats == nil {
		c.stats = make(map[int64]CommunityStat)
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		c.byID[it.ID] = it
		for _, g := range it.Genres {
			c.byGenre[g] = append(c.byGenre[g], it)
		}
	}
	c.genres = make([]string, 0, len(c.byGenre))
	for g := range c.byGenre {
		c.genres = append(c.genres, g)
	}
	sort.Strings(c.genres)
	return c
}

// Items 返回全部物料（共享切片，调用方不得修改）。
func (c *Catalog) Items() []*Item { return c.items }

// ByID 按影片 ID 查找。
func (c *Catalog) ByID(id int64) (*Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// ByGenre 返回带指定题材的全部物料。
func (c *Catalog) ByGenre(genre string) []*Item { return c.byGenre[genre] }

// Genres 返回目录中出现过的全部题材（字典序）。
func (c *Catalog) Genres() []string { return c.genres }

// Stat 返回影片的社区统计；第二个返回值为 false 表示无社区信号。
func (c *Catalog) Stat(id int64) (CommunityStat, bool) {
	s, ok := c.stats[id]
	return s, ok
}

// Stats 返回完整统计表（共享 map，调用方只读）。
func (c *Catalog) Stats() map[int64]CommunityStat { return c.stats }

// Size 返回物料数量。
func (c *Catalog) Size() int { return len(c.items) }

// CatalogProvider 是目录加载的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（catalog / feast）实现
//   - 目录或索引数据损坏属于配置错误，整体失败并向调用方透出
//   - 个别影片缺社区统计属于可解性缺口，降级为“无信号”，不是错误
type CatalogProvider interface {
	// Load 加载目录。失败表示整个排序子系统不可用。
	Load(ctx context.Context) (*Catalog, error)
}

// StatsSource 是社区统计的领域接口，用于从外部特征存储补充/刷新统计。
//
// 实现：
//   - catalog.FileProvider 随目录文件一并加载
//   - feast.StatsProvider 从 Feast 在线特征存储拉取
type StatsSource interface {
	// FetchStats 批量获取社区统计；缺失的影片不出现在返回 map 中。
	FetchStats(ctx context.Context, itemIDs []int64) (map[int64]CommunityStat, error)
}

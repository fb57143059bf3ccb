// Package catalog 实现基于文件的目录加载：影片物料、社区统计与模型索引映射。
//
// 数据格式沿用训练导出物：
//   - movies.json      影片数组，genres 支持 "A|B" 竖线串或字符串数组
//   - movie_stats.json 可选；影片ID -> {avg_rating, num_ratings}
//   - metadata.json    user2idx / movie2idx 模型索引映射
//
// 错误分级：movies.json / metadata.json 损坏或缺失是配置错误，整体失败；
// movie_stats.json 缺失或个别条目损坏降级为“无社区信号”，不是错误。
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rushteam/cinekit/core"
)

// FileProvider 从本地目录加载全部目录数据。
type FileProvider struct {
	// Dir 数据目录；三个文件名固定。
	Dir string
}

const (
	moviesFile   = "movies.json"
	statsFile    = "movie_stats.json"
	metadataFile = "metadata.json"
)

var _ core.CatalogProvider = (*FileProvider)(nil)

// rawMovie 兼容多种字段名与 genres 编码。
type rawMovie struct {
	MovieID *int64          `json:"movie_id"`
	ID      *int64          `json:"id"`
	Title   string          `json:"title"`
	Genres  json.RawMessage `json:"genres"`
}

type rawStat struct {
	AvgRating  *float64 `json:"avg_rating"`
	NumRatings *int64   `json:"num_ratings"`
}

// Load 实现 core.CatalogProvider。
func (p *FileProvider) Load(ctx context.Context) (*core.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(p.Dir, moviesFile))
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeNotFound, "catalog: read movies", err)
	}

	var raws []rawMovie
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: movies.json must be an array", err)
	}

	items := make([]*core.Item, 0, len(raws))
	for _, raw := range raws {
		var id int64
		switch {
		case raw.MovieID != nil:
			id = *raw.MovieID
		case raw.ID != nil:
			id = *raw.ID
		default:
			continue // 无 ID 的条目跳过
		}
		title := raw.Title
		if title == "" {
			title = fmt.Sprintf("Movie %d", id)
		}
		it := core.NewItem(id)
		it.Title = title
		it.Genres = ParseGenres(raw.Genres)
		items = append(items, it)
	}

	stats := p.loadStats()
	return core.NewCatalog(items, stats), nil
}

// loadStats 读取社区统计；任何失败都降级为空统计。
func (p *FileProvider) loadStats() map[int64]core.CommunityStat {
	data, err := os.ReadFile(filepath.Join(p.Dir, statsFile))
	if err != nil {
		return nil
	}

	var raws map[string]rawStat
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil
	}

	stats := make(map[int64]core.CommunityStat, len(raws))
	for key, raw := range raws {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || raw.AvgRating == nil {
			continue // 损坏条目按“无信号”处理
		}
		var count int64
		if raw.NumRatings != nil && *raw.NumRatings > 0 {
			count = *raw.NumRatings
		}
		stats[id] = core.CommunityStat{AvgRating: *raw.AvgRating, Count: count}
	}
	return stats
}

// ParseGenres 解析 genres 字段：支持 "Action|Drama" 竖线串与字符串数组。
func ParseGenres(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		return cleanGenres(asList)
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return cleanGenres(strings.Split(asString, "|"))
	}

	return nil
}

func cleanGenres(in []string) []string {
	out := make([]string, 0, len(in))
	for _, g := range in {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

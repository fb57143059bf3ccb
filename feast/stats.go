package feast

import (
	"context"

	"github.com/rushteam/cinekit/core"
)

// 默认的统计特征引用与实体键。
const (
	DefaultEntityKey    = "movie_id"
	DefaultAvgFeature   = "movie_stats:avg_rating"
	DefaultCountFeature = "movie_stats:num_ratings"
)

// StatsProvider 从 Feast 在线存储读取社区统计，实现 core.StatsSource。
//
// 特征缺失的影片不出现在结果里（无信号，不是错误）；
// 服务整体失败返回错误，由调用方决定是否降级为文件统计。
type StatsProvider struct {
	Client Client

	// Project 项目名称，空时用客户端默认值。
	Project string

	// EntityKey 实体键名，空时取默认值。
	EntityKey string

	// AvgFeature / CountFeature 特征引用，空时取默认值。
	AvgFeature   string
	CountFeature string
}

var _ core.StatsSource = (*StatsProvider)(nil)

// FetchStats 批量读取社区统计。
func (p *StatsProvider) FetchStats(ctx context.Context, itemIDs []int64) (map[int64]core.CommunityStat, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	entityKey := p.EntityKey
	if entityKey == "" {
		entityKey = DefaultEntityKey
	}
	avgFeature := p.AvgFeature
	if avgFeature == "" {
		avgFeature = DefaultAvgFeature
	}
	countFeature := p.CountFeature
	if countFeature == "" {
		countFeature = DefaultCountFeature
	}

	entityRows := make([]map[string]interface{}, len(itemIDs))
	for i, id := range itemIDs {
		entityRows[i] = map[string]interface{}{entityKey: id}
	}

	resp, err := p.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   []string{avgFeature, countFeature},
		EntityRows: entityRows,
		Project:    p.Project,
	})
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeUnavailable, "feast stats fetch failed", err)
	}

	stats := make(map[int64]core.CommunityStat, len(itemIDs))
	for i, vec := range resp.FeatureVectors {
		if i >= len(itemIDs) {
			break
		}
		avg, ok := vec.Values[avgFeature]
		if !ok {
			continue // 无信号
		}
		var count int64
		if c, ok := vec.Values[countFeature]; ok && c > 0 {
			count = int64(c)
		}
		stats[itemIDs[i]] = core.CommunityStat{AvgRating: avg, Count: count}
	}
	return stats, nil
}

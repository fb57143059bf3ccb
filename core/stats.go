package core

import (
	"fmt"
	"math"
)

// DefaultGlobalMean 是社区数据完全缺失时的全局均值兜底。
const DefaultGlobalMean = 3.6

// CommunityStat 是影片的社区统计：平均分与评分人数。
// 目录中没有对应条目即表示“无社区信号”，这不是错误。
type CommunityStat struct {
	AvgRating float64 // [1,5]
	Count     int64   // >= 0
}

// PopularityScore 是社区热度分：平均分加上按人数对数缩放的置信项。
// 无统计的影片排在最后（-Inf），不会混入热度序列。
func PopularityScore(stat CommunityStat, ok bool) float64 {
	if !ok {
		return math.Inf(-1)
	}
	n := stat.Count
	if n < 0 {
		n = 0
	}
	return stat.AvgRating + 0.08*math.Log1p(float64(n))
}

// GlobalMeanRating 计算按人数加权的全局平均分。
// 人数缺失（<=0）的条目以权重 1 参与；完全没有数据时返回 DefaultGlobalMean。
func GlobalMeanRating(stats map[int64]CommunityStat) float64 {
	if len(stats) == 0 {
		return DefaultGlobalMean
	}

	var weightedSum, totalCount float64
	for _, s := range stats {
		if math.IsNaN(s.AvgRating) || math.IsInf(s.AvgRating, 0) {
			continue
		}
		if s.Count > 0 {
			weightedSum += s.AvgRating * float64(s.Count)
			totalCount += float64(s.Count)
		} else {
			weightedSum += s.AvgRating
			totalCount++
		}
	}

	if totalCount <= 0 {
		return DefaultGlobalMean
	}
	return weightedSum / totalCount
}

// FormatCommunityLine 生成展示层用的社区统计文案；无统计返回空串。
func FormatCommunityLine(stat CommunityStat, ok bool) string {
	if !ok {
		return ""
	}
	return fmt.Sprintf("Community avg %.2f (n=%d)", stat.AvgRating, stat.Count)
}

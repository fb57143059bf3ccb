// Package rank 实现排序阶段的 Node：批量预测、偏好加成与贝叶斯收缩两种
// 组合模式。两套公式来自独立演进的策略，常数互不共享，也不做合并。
package rank

import (
	"math"
	"sort"

	"github.com/rushteam/cinekit/core"
)

// 贝叶斯收缩模式的组合常数。
const (
	shrinkPredictedWeight = 0.75
	shrinkCommunityWeight = 0.25

	// coldStartPenalty 无社区统计时的冷启动惩罚。
	coldStartPenalty = 0.25

	// 热度置信惩罚：0.35 × e^(-n/20)，随评分人数指数衰减。
	// 在边际上偏向观测充分的影片，但不会把新片挤出结果。
	popularityPenaltyWeight = 0.35
	popularityPenaltyScale  = 20.0
)

// 匹配档位阈值是固定常数，不做配置。
const (
	MatchGreat    = "Great match"
	MatchGood     = "Good match"
	MatchWorthTry = "Worth a try"
	MatchLongShot = "Long shot"
)

// MatchLabel 把裁剪后的预测分映射为离散匹配档位。
func MatchLabel(score float64) string {
	v := core.ClampRating(score)
	switch {
	case v >= 4.6:
		return MatchGreat
	case v >= 4.0:
		return MatchGood
	case v >= 3.3:
		return MatchWorthTry
	default:
		return MatchLongShot
	}
}

// BayesAverage 把小样本的社区均值向全局先验收缩：
// (n/(n+M))·avg + (M/(n+M))·globalMean。
func BayesAverage(stat core.CommunityStat, m, globalMean float64) float64 {
	n := float64(stat.Count)
	if n < 0 {
		n = 0
	}
	return (n/(n+m))*stat.AvgRating + (m/(n+m))*globalMean
}

// popularityPenalty 计算热度置信惩罚项，n 为评分人数（缺统计时为 0）。
func popularityPenalty(n int64) float64 {
	if n < 0 {
		n = 0
	}
	return popularityPenaltyWeight * math.Exp(-float64(n)/popularityPenaltyScale)
}

// ShrinkageScore 计算贝叶斯收缩模式的最终分。
// clamped 必须是已裁剪到 [1,5] 的预测分（裁剪只发生一次，在组合之前）。
// 评分人数为 0 的统计条目视同无社区信号，走冷启动分支。
func ShrinkageScore(clamped float64, stat core.CommunityStat, hasStat bool, m, globalMean float64) float64 {
	if hasStat && stat.Count <= 0 {
		hasStat = false
	}
	var final float64
	if hasStat {
		final = shrinkPredictedWeight*clamped + shrinkCommunityWeight*BayesAverage(stat, m, globalMean)
	} else {
		final = clamped - coldStartPenalty
	}
	var n int64
	if hasStat {
		n = stat.Count
	}
	return final - popularityPenalty(n)
}

// sortByScore 按最终分降序排序，同分按片名字典序，保证输出确定。
func sortByScore(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Title < items[j].Title
	})
}

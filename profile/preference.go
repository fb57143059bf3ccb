// Package profile 从用户自己的评分历史推断题材偏好权重。
//
// 这是纯函数式的叶子模块：输入评分历史与目录，输出有序的偏好列表，
// 每次评分变更后整体重算，不持久化任何状态。
package profile

import (
	"math"
	"sort"

	"github.com/rushteam/cinekit/core"
)

// countBoostFactor 是样本量置信加成系数：样本越多偏好分放大越多，但按对数递减。
const countBoostFactor = 0.35

// ComputePreferences 推断题材偏好。
//
// 每条评分贡献 weight = rating - 3：3 星不产生信号，低于 3 星产生负信号；
// weight 累加到影片携带的每个题材上，同时累计样本数。
// 聚合后施加递减的置信加成：final = raw × (1 + 0.35 × ln(1+count))。
// 结果按 final 降序，同分按样本数多者优先。
//
// 空历史返回空列表，不是错误。目录中找不到的影片被跳过。
func ComputePreferences(ratings core.RatingHistory, catalog *core.Catalog) []core.GenrePreference {
	if len(ratings) == 0 || catalog == nil {
		return nil
	}

	type agg struct {
		score float64
		count int
	}
	byGenre := make(map[string]*agg)

	for itemID, rating := range ratings {
		it, ok := catalog.ByID(itemID)
		if !ok {
			continue
		}
		weight := rating - 3
		for _, genre := range it.Genres {
			a := byGenre[genre]
			if a == nil {
				a = &agg{}
				byGenre[genre] = a
			}
			a.score += weight
			a.count++
		}
	}

	prefs := make([]core.GenrePreference, 0, len(byGenre))
	for genre, a := range byGenre {
		boost := countBoostFactor * math.Log1p(float64(a.count))
		prefs = append(prefs, core.GenrePreference{
			Genre: genre,
			Score: a.score * (1 + boost),
			Count: a.count,
		})
	}

	sort.SliceStable(prefs, func(i, j int) bool {
		if prefs[i].Score != prefs[j].Score {
			return prefs[i].Score > prefs[j].Score
		}
		if prefs[i].Count != prefs[j].Count {
			return prefs[i].Count > prefs[j].Count
		}
		// 题材名兜底，保证输出完全确定
		return prefs[i].Genre < prefs[j].Genre
	})
	return prefs
}

// BonusMap 把偏好列表归一化为题材加成表。
// 只有正偏好产生加成：bonus = score / maxPositiveScore ∈ (0,1]；
// 非正偏好恒为 0。没有任何正偏好时全部为 0。
func BonusMap(prefs []core.GenrePreference) map[string]float64 {
	if len(prefs) == 0 {
		return map[string]float64{}
	}

	var maxPositive float64
	for _, p := range prefs {
		if p.Score > maxPositive {
			maxPositive = p.Score
		}
	}

	out := make(map[string]float64, len(prefs))
	for _, p := range prefs {
		if p.Score <= 0 || maxPositive <= 0 {
			out[p.Genre] = 0
			continue
		}
		out[p.Genre] = p.Score / maxPositive
	}
	return out
}

// GenreBonusWeight 是偏好加成在最终分中的权重。
const GenreBonusWeight = 0.45

// GenreBonus 计算影片的题材加成：对影片各题材的加成取均值，再乘权重 0.45。
// 无题材的影片加成为 0。
func GenreBonus(genres []string, bonusMap map[string]float64) float64 {
	if len(genres) == 0 || len(bonusMap) == 0 {
		return 0
	}
	var total float64
	for _, g := range genres {
		total += bonusMap[g]
	}
	return total / float64(len(genres)) * GenreBonusWeight
}

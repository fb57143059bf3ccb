package core

import "math"

// 评分取值范围。评分在写入边界裁剪，链路内部不再校验。
const (
	RatingMin = 1.0
	RatingMax = 5.0
)

// ClampRating 把任意输入裁剪到 [1,5]。
// 非有限值（NaN/±Inf）按最低分处理，保证下游不会出现 NaN。
// 幂等：ClampRating(ClampRating(x)) == ClampRating(x)。
func ClampRating(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return RatingMin
	}
	if v < RatingMin {
		return RatingMin
	}
	if v > RatingMax {
		return RatingMax
	}
	return v
}

// RatingHistory 是单个用户的评分历史：影片 ID -> 评分。
// 由调用方持有并持久化；核心链路只读。写入走 Set，统一在边界裁剪。
type RatingHistory map[int64]float64

// Set 写入一条评分，越界值被裁剪到 [1,5]。
func (h RatingHistory) Set(itemID int64, rating float64) {
	h[itemID] = ClampRating(rating)
}

// Rated 判断影片是否已评分。
func (h RatingHistory) Rated(itemID int64) bool {
	_, ok := h[itemID]
	return ok
}

// Len 返回已评分数量。
func (h RatingHistory) Len() int { return len(h) }

// Clone 复制一份评分历史，供排序 pass 使用，避免 pass 执行中被调用方修改。
func (h RatingHistory) Clone() RatingHistory {
	out := make(RatingHistory, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

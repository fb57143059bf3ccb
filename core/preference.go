package core

// GenrePreference 是从评分历史推断出的题材偏好。
// 每次评分变更后重新计算，不持久化。
type GenrePreference struct {
	Genre string
	// Score 是带符号的偏好分：负值表示低于中位（3 星）的历史评价。
	Score float64
	// Count 是该题材参与计算的样本数。
	Count int
}

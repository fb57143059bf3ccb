package core

import "github.com/rushteam/cinekit/pkg/utils"

// RecommendContext 承载一次排序 pass 的用户侧输入，贯穿整个 Pipeline 透传。
//
// ProfileKey 是消费者的稳定标识（例如 "base" 或 "demo:42"），与模型内部的
// 数值索引无关；预测缓存按 ProfileKey 分片。
type RecommendContext struct {
	ProfileKey string

	// Ratings 是用户的评分历史（影片 ID -> [1,5]）。核心只读。
	Ratings RatingHistory

	// Prefs 是由 profile 包推断出的题材偏好，按偏好分降序。
	// 召回（题材亲和）与排序（偏好加成）都消费它。
	Prefs []GenrePreference

	// Labels 是用户级标签，可驱动节点行为（例如冷启动用户）。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（页大小、调试开关等）。
	Params map[string]any
}

// Rated 判断影片是否已被该用户评分。
func (rctx *RecommendContext) Rated(itemID int64) bool {
	return rctx.Ratings != nil && rctx.Ratings.Rated(itemID)
}

// TopGenres 返回偏好度最高的 n 个题材名。
func (rctx *RecommendContext) TopGenres(n int) []string {
	if n <= 0 || len(rctx.Prefs) == 0 {
		return nil
	}
	if n > len(rctx.Prefs) {
		n = len(rctx.Prefs)
	}
	out := make([]string, 0, n)
	for _, p := range rctx.Prefs[:n] {
		out = append(out, p.Genre)
	}
	return out
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

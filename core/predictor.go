package core

import "context"

// BatchPredictor 是外部预测模型的领域接口。
//
// 设计原则：
//   - 模型是不透明的批量函数：(用户索引, 影片索引列表) -> 同长度分数列表
//   - 模型调用昂贵，只允许批量访问；批量与去重由 predict 包负责
//   - 输出只保证“实数值”，NaN/非有限值在排序边界过滤，不在这里校验
//
// 实现：
//   - service.HTTPPredictor（REST 模型服务）
//   - 测试中使用确定性 stub（按索引生成固定分数并计数调用次数）
type BatchPredictor interface {
	// ScoreBatch 对一个用户与一批影片做批量预测。
	// 返回切片长度与 itemIdxs 一致、顺序一一对应；否则视为模型调用失败。
	ScoreBatch(ctx context.Context, userIdx int64, itemIdxs []int64) ([]float64, error)
}

// ModelIndex 是模型索引映射的领域接口：把稳定的业务标识
// （ProfileKey / 影片 ID）翻译为模型内部的整数索引。
//
// 缺失映射的含义是“模型不可打分”，必须被过滤而不是报错；
// 但请求的 ProfileKey 本身不存在属于配置错误，由调用方透出。
type ModelIndex interface {
	// UserIdx 返回消费者在模型中的索引。
	UserIdx(profileKey string) (int64, bool)

	// ItemIdx 返回影片在模型中的索引。
	ItemIdx(itemID int64) (int64, bool)
}

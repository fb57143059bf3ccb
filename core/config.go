package core

// RankConfig 是排序链路相关的配置接口，用于提供默认值。
// 各节点在字段未显式配置时回退到这里，方便统一调参。
type RankConfig interface {
	// DefaultMaxCandidates 返回候选池的总量上限
	DefaultMaxCandidates() int

	// DefaultTopGenres 返回参与题材亲和召回的偏好题材数
	DefaultTopGenres() int

	// DefaultPerGenreLimit 返回每个题材召回的数量上限
	DefaultPerGenreLimit() int

	// DefaultRandomSample 返回随机采样召回的数量上限
	DefaultRandomSample() int

	// DefaultCommunityLimit 返回社区热门召回的数量上限
	DefaultCommunityLimit() int

	// DefaultBatchSize 返回模型批量预测的批大小
	DefaultBatchSize() int

	// DefaultBayesM 返回贝叶斯收缩的先验权重 M
	DefaultBayesM() float64

	// DefaultMinRatings 返回产出推荐所需的最少评分数
	DefaultMinRatings() int

	// DefaultPageSize 返回每个结果分组的展示条数
	DefaultPageSize() int

	// DefaultFreshMinCount 返回 fresh 分组要求的最少社区评分人数
	DefaultFreshMinCount() int64
}

// DefaultRankConfig 是默认的排序配置实现。
type DefaultRankConfig struct{}

func (c *DefaultRankConfig) DefaultMaxCandidates() int { return 1000 }

func (c *DefaultRankConfig) DefaultTopGenres() int { return 3 }

func (c *DefaultRankConfig) DefaultPerGenreLimit() int { return 220 }

func (c *DefaultRankConfig) DefaultRandomSample() int { return 260 }

func (c *DefaultRankConfig) DefaultCommunityLimit() int { return 220 }

func (c *DefaultRankConfig) DefaultBatchSize() int { return 512 }

func (c *DefaultRankConfig) DefaultBayesM() float64 { return 50 }

func (c *DefaultRankConfig) DefaultMinRatings() int { return 10 }

func (c *DefaultRankConfig) DefaultPageSize() int { return 5 }

func (c *DefaultRankConfig) DefaultFreshMinCount() int64 { return 20 }

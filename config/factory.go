// Package config 把 pipeline 配置（YAML/JSON）落成可执行的 Node 链。
// 工厂接受外部依赖注入（目录、模型索引、预测器、存储），
// 配置里只放可调参数。
package config

import (
	"fmt"
	"time"

	"github.com/rushteam/cinekit/core"
	"github.com/rushteam/cinekit/filter"
	"github.com/rushteam/cinekit/pipeline"
	"github.com/rushteam/cinekit/pkg/conv"
	"github.com/rushteam/cinekit/predict"
	"github.com/rushteam/cinekit/rank"
	"github.com/rushteam/cinekit/recall"
	"github.com/rushteam/cinekit/rerank"
)

// Deps 是工厂构建 Node 所需的外部依赖。
// 配置文件只描述拓扑与参数，重对象由调用方注入。
type Deps struct {
	Catalog   *core.Catalog
	Index     core.ModelIndex
	Predictor *predict.BatchedPredictor

	// Store 可选；recall.popular 读预计算序列时使用。
	Store core.KeyValueStore

	Config core.RankConfig
}

// DefaultFactory 返回一个包含所有内置 Node 的默认工厂。
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	// 注册 Recall Nodes
	factory.Register("recall.fanout", buildFanoutNode(deps))
	factory.Register("recall.genre_affinity", buildGenreAffinityNode(deps))
	factory.Register("recall.random", buildRandomNode(deps))
	factory.Register("recall.popular", buildPopularNode(deps))

	// 注册 Filter Nodes
	factory.Register("filter", buildFilterNode(deps))

	// 注册 Rank Nodes
	factory.Register("rank.model", buildModelNode(deps))
	factory.Register("rank.bonus", buildBonusNode(deps))
	factory.Register("rank.bayes", buildBayesNode(deps))

	// 注册 ReRank Nodes
	factory.Register("rerank.topn", buildTopNNode(deps))

	return factory
}

type builder = func(map[string]interface{}) (pipeline.Node, error)

func buildFanoutNode(deps Deps) builder {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		sourcesConfig, ok := config["sources"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("sources not found or invalid")
		}

		sources := make([]recall.Source, 0, len(sourcesConfig))
		for _, sc := range sourcesConfig {
			sourceMap, ok := sc.(map[string]interface{})
			if !ok {
				continue
			}
			src, err := buildSource(deps, sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		}

		fanout := &recall.Fanout{
			Sources:       sources,
			MaxCandidates: conv.ConfigGetInt(config, "max_candidates", 0),
			Config:        deps.Config,
		}
		if sec := conv.ConfigGetInt(config, "timeout", 0); sec > 0 {
			fanout.Timeout = time.Duration(sec) * time.Second
		}
		if n := conv.ConfigGetInt(config, "max_concurrent", 0); n > 0 {
			fanout.MaxConcurrent = n
		}

		return fanout, nil
	}
}

// buildSource 构建单个召回源。声明顺序即合并顺序。
func buildSource(deps Deps, sourceMap map[string]interface{}) (recall.Source, error) {
	sourceType := conv.ConfigGet[string](sourceMap, "type", "")
	switch sourceType {
	case "genre_affinity":
		return &recall.GenreAffinity{
			Catalog:       deps.Catalog,
			TopGenres:     conv.ConfigGetInt(sourceMap, "top_genres", 0),
			PerGenreLimit: conv.ConfigGetInt(sourceMap, "per_genre_limit", 0),
			Config:        deps.Config,
		}, nil
	case "random":
		return &recall.RandomSample{
			Catalog: deps.Catalog,
			Index:   deps.Index,
			Limit:   conv.ConfigGetInt(sourceMap, "limit", 0),
			Config:  deps.Config,
		}, nil
	case "popular":
		return &recall.CommunityPopular{
			Catalog: deps.Catalog,
			Index:   deps.Index,
			Store:   deps.Store,
			Key:     conv.ConfigGet[string](sourceMap, "key", ""),
			Limit:   conv.ConfigGetInt(sourceMap, "limit", 0),
			Config:  deps.Config,
		}, nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", sourceType)
	}
}

func buildGenreAffinityNode(deps Deps) builder {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		return &recall.GenreAffinity{
			Catalog:       deps.Catalog,
			TopGenres:     conv.ConfigGetInt(config, "top_genres", 0),
			PerGenreLimit: conv.ConfigGetInt(config, "per_genre_limit", 0),
			Config:        deps.Config,
		}, nil
	}
}

func buildRandomNode(deps Deps) builder {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		return &recall.RandomSample{
			Catalog: deps.Catalog,
			Index:   deps.Index,
			Limit:   conv.ConfigGetInt(config, "limit", 0),
			Config:  deps.Config,
		}, nil
	}
}

func buildPopularNode(deps Deps) builder {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		return &recall.CommunityPopular{
			Catalog: deps.Catalog,
			Index:   deps.Index,
			Store:   deps.Store,
			Key:     conv.ConfigGet[string](config, "key", ""),
			Limit:   conv.ConfigGetInt(config, "limit", 0),
			Config:  deps.Config,
		}, nil
	}
}

func buildFilterNode(deps Deps) builder {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		filtersConfig, ok := config["filters"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("filters not found or invalid")
		}

		filters := make([]filter.Filter, 0, len(filtersConfig))
		for _, fc := range filtersConfig {
			filterMap, ok := fc.(map[string]interface{})
			if !ok {
				continue
			}
			filterType := conv.ConfigGet[string](filterMap, "type", "")
			switch filterType {
			case "rated":
				filters = append(filters, &filter.RatedFilter{})

			case "scoreable":
				filters = append(filters, &filter.ScoreableFilter{Index: deps.Index})

			case "expr":
				expr := conv.ConfigGet[string](filterMap, "expr", "")
				if expr == "" {
					return nil, fmt.Errorf("expr filter requires expr")
				}
				filters = append(filters, &filter.ExprFilter{Expr: expr})

			default:
				return nil, fmt.Errorf("unknown filter type: %s", filterType)
			}
		}

		return &filter.FilterNode{Filters: filters}, nil
	}
}

func buildModelNode(deps Deps) builder {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		if deps.Predictor == nil {
			return nil, fmt.Errorf("rank.model requires a predictor")
		}
		return &rank.ModelNode{Predictor: deps.Predictor}, nil
	}
}

func buildBonusNode(deps Deps) builder {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		return &rank.BonusNode{}, nil
	}
}

func buildBayesNode(deps Deps) builder {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		return &rank.BayesNode{
			Catalog: deps.Catalog,
			M:       conv.ConfigGetFloat(config, "m", 0),
			Config:  deps.Config,
		}, nil
	}
}

func buildTopNNode(deps Deps) builder {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		return &rerank.TopNNode{
			N: conv.ConfigGetInt(config, "n", 0),
		}, nil
	}
}

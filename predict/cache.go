// Package predict 实现批量预测与记忆化缓存：对外部预测模型的调用
// 去重、分批、并按 (ProfileKey, 影片ID) 缓存，保证同一对在进程生命周期内
// 至多触发一次模型调用（除非显式清空）。
package predict

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rushteam/cinekit/core"
)

// PredictionCache 是预测缓存的抽象接口。
//
// 语义约束：
//   - 按 ProfileKey 分片；不同消费者互不干扰
//   - 只增不减：没有自动失效，只有显式 Clear / ClearAll
//   - PutBatch 一个批次整体写入或整体失败（批次原子性）
//   - 同一 (ProfileKey, 影片ID) 重复写入相同模型输出是幂等的，
//     并发 pass 允许竞争写入
type PredictionCache interface {
	// GetBatch 批量读取已缓存的预测分；未命中的影片不出现在返回 map 中。
	GetBatch(ctx context.Context, profileKey string, itemIDs []int64) (map[int64]float64, error)

	// PutBatch 整体写入一个批次的预测分。
	PutBatch(ctx context.Context, profileKey string, scores map[int64]float64) error

	// Clear 清空单个消费者的缓存。
	Clear(ctx context.Context, profileKey string) error

	// ClearAll 清空全部缓存。
	ClearAll(ctx context.Context) error
}

// StoreCache 是基于 core.Store 的预测缓存实现。
// 开发/测试用 store.MemoryStore，生产可换 store.RedisStore，语义不变。
//
// key 形如 "{prefix}:{profileKey}:{itemID}"，value 为十进制浮点文本。
// ProfileKey 经 URL 转义后拼入，本身含 ':' 的 key 不会串到别的前缀下。
type StoreCache struct {
	Store core.Store

	// Prefix key 前缀，默认 "pred"。
	Prefix string
}

func NewStoreCache(s core.Store) *StoreCache {
	return &StoreCache{Store: s, Prefix: "pred"}
}

func (c *StoreCache) prefix() string {
	if c.Prefix == "" {
		return "pred"
	}
	return c.Prefix
}

func (c *StoreCache) key(profileKey string, itemID int64) string {
	return c.keyPrefix(profileKey) + strconv.FormatInt(itemID, 10)
}

func (c *StoreCache) keyPrefix(profileKey string) string {
	return c.prefix() + ":" + url.QueryEscape(profileKey) + ":"
}

func (c *StoreCache) GetBatch(ctx context.Context, profileKey string, itemIDs []int64) (map[int64]float64, error) {
	if len(itemIDs) == 0 {
		return map[int64]float64{}, nil
	}

	keys := make([]string, 0, len(itemIDs))
	byKey := make(map[string]int64, len(itemIDs))
	for _, id := range itemIDs {
		k := c.key(profileKey, id)
		keys = append(keys, k)
		byKey[k] = id
	}

	kvs, err := c.Store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]float64, len(kvs))
	for k, v := range kvs {
		score, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			// 损坏的缓存条目按未命中处理，下一批会重新预测并覆盖
			continue
		}
		out[byKey[k]] = score
	}
	return out, nil
}

func (c *StoreCache) PutBatch(ctx context.Context, profileKey string, scores map[int64]float64) error {
	if len(scores) == 0 {
		return nil
	}
	kvs := make(map[string][]byte, len(scores))
	for id, score := range scores {
		kvs[c.key(profileKey, id)] = []byte(strconv.FormatFloat(score, 'g', -1, 64))
	}
	return c.Store.BatchSet(ctx, kvs)
}

func (c *StoreCache) Clear(ctx context.Context, profileKey string) error {
	return c.Store.DeletePrefix(ctx, c.keyPrefix(profileKey))
}

func (c *StoreCache) ClearAll(ctx context.Context) error {
	return c.Store.DeletePrefix(ctx, c.prefix()+":")
}

package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rushteam/cinekit/core"
)

// Metadata 是训练导出的模型索引映射，实现 core.ModelIndex。
// 映射表缺失某个 key 表示该用户/影片不在训练集，模型无法打分。
type Metadata struct {
	user2idx  map[string]int64
	movie2idx map[int64]int64
}

var _ core.ModelIndex = (*Metadata)(nil)

type rawMetadata struct {
	User2Idx  map[string]int64 `json:"user2idx"`
	Movie2Idx map[string]int64 `json:"movie2idx"`
}

// LoadMetadata 读取 metadata.json。文件缺失或映射表缺失是配置错误。
func (p *FileProvider) LoadMetadata() (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(p.Dir, metadataFile))
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeNotFound, "catalog: read metadata", err)
	}

	var raw rawMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: parse metadata", err)
	}
	if len(raw.User2Idx) == 0 || len(raw.Movie2Idx) == 0 {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: metadata missing user2idx/movie2idx")
	}

	movie2idx := make(map[int64]int64, len(raw.Movie2Idx))
	for key, idx := range raw.Movie2Idx {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue // 非数字键跳过
		}
		movie2idx[id] = idx
	}

	return &Metadata{user2idx: raw.User2Idx, movie2idx: movie2idx}, nil
}

// NewMetadata 从内存映射构造索引，主要给测试与嵌入式部署用。
func NewMetadata(user2idx map[string]int64, movie2idx map[int64]int64) *Metadata {
	return &Metadata{user2idx: user2idx, movie2idx: movie2idx}
}

func (m *Metadata) UserIdx(profileKey string) (int64, bool) {
	idx, ok := m.user2idx[profileKey]
	return idx, ok
}

func (m *Metadata) ItemIdx(itemID int64) (int64, bool) {
	idx, ok := m.movie2idx[itemID]
	return idx, ok
}

// Users 返回已知用户数，Items 返回已知影片数。
func (m *Metadata) Users() int { return len(m.user2idx) }
func (m *Metadata) Items() int { return len(m.movie2idx) }

// Package feast 对接 Feast Feature Store，作为社区统计的在线来源。
//
// 领域层只依赖 Client 接口；GrpcClient 基于官方 SDK 实现。
// 统计特征由离线作业物化到在线存储，这里只做读取。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Server 的客户端接口。
type Client interface {
	// GetOnlineFeatures 获取在线特征（实时读取）
	//
	// 参数：
	//   - features: 特征引用列表，例如 ["movie_stats:avg_rating"]
	//   - entityRows: 实体行，例如 [{"movie_id": 1}]
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征引用列表，例如 ["movie_stats:avg_rating", "movie_stats:num_ratings"]
	Features []string

	// EntityRows 实体行，例如 [{"movie_id": 1}, {"movie_id": 2}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，为空时用客户端默认值）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，与请求的实体行一一对应
	FeatureVectors []FeatureVector
}

// FeatureVector 单个实体的特征值集合。
// 缺失的特征不出现在 Values 里，调用方据此判断“无信号”。
type FeatureVector struct {
	// Values 特征值，key 为特征引用
	Values map[string]float64

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// ClientOption Feast 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig Feast 客户端配置
type ClientConfig struct {
	// Endpoint 服务端点
	Endpoint string

	// Project 项目名称
	Project string

	// Timeout 超时时间
	Timeout time.Duration

	// Auth 认证信息
	Auth *AuthConfig
}

// AuthConfig 认证配置
type AuthConfig struct {
	// Type 认证类型：static（gRPC 静态 Token）
	Type string

	// Token Token（static auth）
	Token string
}

// WithTimeout 配置选项：设置超时时间
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 配置选项：设置认证信息
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}

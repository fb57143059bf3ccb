package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rushteam/cinekit/core"
)

// HTTPPredictor 是远程模型服务的 BatchPredictor 客户端（HTTP/JSON）。
//
// 请求体与模型服务端的推理输入对齐：
//
//	{"user_idx": [u, u, ...], "movie_idx": [i1, i2, ...]}
//
// 两个数组等长，user_idx 每个位置重复同一用户索引。
// 响应体：{"scores": [s1, s2, ...]}，与 movie_idx 一一对应。
//
// 使用场景：
//   - 模型与服务分进程部署（模型常驻 GPU 机器）
//   - 多实例共享同一套模型权重
type HTTPPredictor struct {
	// Endpoint 服务端点，如 "http://localhost:8080"
	Endpoint string

	// Path 推理路径（默认 "/v1/score"）
	Path string

	// Timeout 超时时间
	Timeout time.Duration

	// Auth 认证信息
	Auth *AuthConfig

	httpClient *http.Client
}

// NewHTTPPredictor 创建一个新的远程模型客户端。
func NewHTTPPredictor(endpoint string, opts ...HTTPPredictorOption) *HTTPPredictor {
	client := &HTTPPredictor{
		Endpoint: endpoint,
		Path:     "/v1/score",
		Timeout:  30 * time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.httpClient = &http.Client{
		Timeout: client.Timeout,
	}

	return client
}

// HTTPPredictorOption 客户端配置选项
type HTTPPredictorOption func(*HTTPPredictor)

// WithPredictorPath 设置推理路径
func WithPredictorPath(path string) HTTPPredictorOption {
	return func(c *HTTPPredictor) {
		c.Path = path
	}
}

// WithPredictorTimeout 设置超时时间
func WithPredictorTimeout(timeout time.Duration) HTTPPredictorOption {
	return func(c *HTTPPredictor) {
		c.Timeout = timeout
	}
}

// WithPredictorAuth 设置认证信息
func WithPredictorAuth(auth *AuthConfig) HTTPPredictorOption {
	return func(c *HTTPPredictor) {
		c.Auth = auth
	}
}

type scoreRequest struct {
	UserIdx  []int64 `json:"user_idx"`
	MovieIdx []int64 `json:"movie_idx"`
}

type scoreResponse struct {
	Scores []float64 `json:"scores"`
}

// ScoreBatch 实现 core.BatchPredictor 接口。
func (c *HTTPPredictor) ScoreBatch(ctx context.Context, userIdx int64, itemIdxs []int64) ([]float64, error) {
	if len(itemIdxs) == 0 {
		return nil, nil
	}

	// 构建等长的 user_idx 数组
	users := make([]int64, len(itemIdxs))
	for i := range users {
		users[i] = userIdx
	}

	jsonData, err := json.Marshal(scoreRequest{UserIdx: users, MovieIdx: itemIdxs})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.Endpoint + c.Path
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if c.Auth != nil {
		c.addAuth(httpReq)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, core.WrapDomainError(core.ModulePredict, core.ErrorCodeUnavailable, "model service request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, core.NewDomainError(core.ModulePredict, core.ErrorCodeUnavailable,
			fmt.Sprintf("model service error: status=%d, body=%s", resp.StatusCode, string(bodyBytes)))
	}

	var result scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(result.Scores) != len(itemIdxs) {
		return nil, core.NewDomainError(core.ModulePredict, core.ErrorCodeInternalError,
			fmt.Sprintf("model service returned %d scores for %d items", len(result.Scores), len(itemIdxs)))
	}

	return result.Scores, nil
}

// addAuth 添加认证信息到 HTTP 请求
func (c *HTTPPredictor) addAuth(req *http.Request) {
	if c.Auth == nil {
		return
	}

	switch c.Auth.Type {
	case "basic":
		req.SetBasicAuth(c.Auth.Username, c.Auth.Password)
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+c.Auth.Token)
	case "api_key":
		req.Header.Set("X-API-Key", c.Auth.APIKey)
	}
}

// Health 健康检查
func (c *HTTPPredictor) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.Endpoint+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if c.Auth != nil {
		c.addAuth(httpReq)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check failed: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

// Close 关闭连接
func (c *HTTPPredictor) Close() error {
	// HTTP 客户端不需要显式关闭
	return nil
}

// 确保 HTTPPredictor 实现了 core.BatchPredictor 接口
var _ core.BatchPredictor = (*HTTPPredictor)(nil)

package feast

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/cinekit/core"
)

type stubClient struct {
	resp *GetOnlineFeaturesResponse
	err  error

	gotReq *GetOnlineFeaturesRequest
}

func (c *stubClient) GetOnlineFeatures(_ context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	c.gotReq = req
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

func (c *stubClient) Close() error { return nil }

func TestStatsProviderFetchStats(t *testing.T) {
	client := &stubClient{
		resp: &GetOnlineFeaturesResponse{
			FeatureVectors: []FeatureVector{
				{Values: map[string]float64{
					DefaultAvgFeature:   4.2,
					DefaultCountFeature: 320,
				}},
				{Values: map[string]float64{}}, // 无信号影片
				{Values: map[string]float64{
					DefaultAvgFeature: 3.9, // 缺人数，按 0 处理
				}},
			},
		},
	}

	p := &StatsProvider{Client: client, Project: "movies"}
	stats, err := p.FetchStats(context.Background(), []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("FetchStats() error = %v", err)
	}

	if len(stats) != 2 {
		t.Fatalf("got %d stats, want 2 (no-signal movie omitted)", len(stats))
	}
	if s := stats[1]; s.AvgRating != 4.2 || s.Count != 320 {
		t.Errorf("stats[1] = %+v, want avg 4.2 count 320", s)
	}
	if s := stats[3]; s.AvgRating != 3.9 || s.Count != 0 {
		t.Errorf("stats[3] = %+v, want avg 3.9 count 0", s)
	}
	if _, ok := stats[2]; ok {
		t.Error("movie without features must not appear in the result")
	}

	// 请求按默认实体键与特征引用构建
	if client.gotReq.Project != "movies" {
		t.Errorf("request project = %q, want movies", client.gotReq.Project)
	}
	if len(client.gotReq.EntityRows) != 3 {
		t.Fatalf("got %d entity rows, want 3", len(client.gotReq.EntityRows))
	}
	if id, ok := client.gotReq.EntityRows[0][DefaultEntityKey]; !ok || id != int64(1) {
		t.Errorf("entity row 0 = %v, want movie_id=1", client.gotReq.EntityRows[0])
	}
}

func TestStatsProviderUnavailable(t *testing.T) {
	p := &StatsProvider{Client: &stubClient{err: errors.New("connection refused")}}

	_, err := p.FetchStats(context.Background(), []int64{1})
	if !core.IsUnavailable(err) {
		t.Errorf("transport failure should yield UNAVAILABLE, got %v", err)
	}
}

func TestStatsProviderEmptyRequest(t *testing.T) {
	client := &stubClient{}
	p := &StatsProvider{Client: client}

	stats, err := p.FetchStats(context.Background(), nil)
	if err != nil || stats != nil {
		t.Errorf("empty request should be a no-op, got %v,%v", stats, err)
	}
	if client.gotReq != nil {
		t.Error("empty request must not hit the feature store")
	}
}

package store

import (
	"context"
	"testing"

	"github.com/rushteam/cinekit/core"
)

func TestMemoryStoreBasic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) = %v, want ErrStoreNotFound", err)
	}

	if err := s.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "k1")
	if err != nil || string(got) != "v1" {
		t.Errorf("Get(k1) = %q,%v; want v1", got, err)
	}

	if err := s.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Error("deleted key should be gone")
	}
}

func TestMemoryStoreBatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	kvs := map[string][]byte{
		"pred:base:1": []byte("4.2"),
		"pred:base:2": []byte("3.8"),
		"pred:demo:1": []byte("2.5"),
	}
	if err := s.BatchSet(ctx, kvs); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := s.BatchGet(ctx, []string{"pred:base:1", "pred:base:2", "pred:base:3"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("BatchGet returned %d entries, want 2 (missing keys omitted)", len(got))
	}
	if string(got["pred:base:1"]) != "4.2" {
		t.Errorf("pred:base:1 = %q, want 4.2", got["pred:base:1"])
	}

	// 按前缀清空一个 profile 的缓存
	if err := s.DeletePrefix(ctx, "pred:base:"); err != nil {
		t.Fatalf("DeletePrefix() error = %v", err)
	}
	if _, err := s.Get(ctx, "pred:base:1"); !core.IsStoreNotFound(err) {
		t.Error("prefixed key should be deleted")
	}
	if _, err := s.Get(ctx, "pred:demo:1"); err != nil {
		t.Error("other profile's key must survive DeletePrefix")
	}
}

func TestMemoryStoreZSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	s.ZAdd(ctx, "popular", 4.9, "3")
	s.ZAdd(ctx, "popular", 4.2, "1")
	s.ZAdd(ctx, "popular", 4.5, "2")

	// 降序返回
	members, err := s.ZRange(ctx, "popular", 0, 1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if len(members) != 2 || members[0] != "3" || members[1] != "2" {
		t.Errorf("ZRange = %v, want [3 2]", members)
	}

	// stop=-1 取全量
	members, _ = s.ZRange(ctx, "popular", 0, -1)
	if len(members) != 3 {
		t.Errorf("full ZRange returned %d members, want 3", len(members))
	}

	score, err := s.ZScore(ctx, "popular", "2")
	if err != nil || score != 4.5 {
		t.Errorf("ZScore = %v,%v; want 4.5", score, err)
	}
	if _, err := s.ZScore(ctx, "popular", "nope"); !core.IsStoreNotFound(err) {
		t.Errorf("missing member should yield ErrStoreNotFound, got %v", err)
	}
}

package catalog

import (
	"testing"

	"github.com/rushteam/cinekit/core"
)

func browseCatalog() *core.Catalog {
	movies := []struct {
		id     int64
		title  string
		genres []string
	}{
		{1, "The Godfather", []string{"Crime", "Drama"}},
		{2, "The Godfather Part II", []string{"Crime", "Drama"}},
		{3, "Airplane!", []string{"Comedy"}},
		{4, "Obscure Gem", []string{"Drama"}},
		{5, "Unrated Indie", []string{"Drama"}},
	}
	items := make([]*core.Item, 0, len(movies))
	for _, m := range movies {
		it := core.NewItem(m.id)
		it.Title = m.title
		it.Genres = m.genres
		items = append(items, it)
	}
	stats := map[int64]core.CommunityStat{
		1: {AvgRating: 4.7, Count: 1800},
		2: {AvgRating: 4.6, Count: 1100},
		3: {AvgRating: 4.0, Count: 600},
		4: {AvgRating: 4.9, Count: 12},
	}
	return core.NewCatalog(items, stats)
}

func TestSearch(t *testing.T) {
	cat := browseCatalog()

	// 片名子串，大小写无关
	got := Search(cat, SearchQuery{Title: "godfather"})
	if len(got) != 2 {
		t.Fatalf("title search returned %d movies, want 2", len(got))
	}
	if got[0].ID != 1 {
		t.Errorf("results not popularity sorted: first = %d, want 1", got[0].ID)
	}

	// 题材 + 最少评分人数
	got = Search(cat, SearchQuery{Genre: "Drama", MinCommunityCount: 100})
	if len(got) != 2 {
		t.Fatalf("filtered search returned %d movies, want 2", len(got))
	}
	for _, it := range got {
		if it.ID == 4 || it.ID == 5 {
			t.Errorf("movie %d should be excluded by min count", it.ID)
		}
	}

	// Limit 截断
	got = Search(cat, SearchQuery{Limit: 3})
	if len(got) != 3 {
		t.Errorf("limited search returned %d movies, want 3", len(got))
	}
}

func TestTopRated(t *testing.T) {
	cat := browseCatalog()

	// 达标（count>=100）的按均分排：Godfather(4.7) > Part II(4.6) > Airplane(4.0)
	got := TopRated(cat, 2, 100)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		ids := make([]int64, len(got))
		for i, it := range got {
			ids[i] = it.ID
		}
		t.Fatalf("TopRated = %v, want [1 2]", ids)
	}

	// 达标不足时用热度序补齐
	got = TopRated(cat, 5, 100)
	if len(got) != 5 {
		t.Fatalf("TopRated with fallback returned %d, want 5", len(got))
	}
	if got[3].ID != 4 {
		t.Errorf("fallback should start with the most popular leftover, got %d", got[3].ID)
	}

	if got := TopRated(nil, 5, 100); got != nil {
		t.Error("nil catalog should yield nil")
	}
}

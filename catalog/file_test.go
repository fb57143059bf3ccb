package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/cinekit/core"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFileProviderLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "movies.json", `[
		{"movie_id": 1, "title": "Heat", "genres": "Action|Crime"},
		{"id": 2, "title": "Up", "genres": ["Animation", "Adventure"]},
		{"movie_id": 3, "genres": "Drama"},
		{"title": "No ID"}
	]`)
	writeFile(t, dir, "movie_stats.json", `{
		"1": {"avg_rating": 4.2, "num_ratings": 320},
		"2": {"avg_rating": 3.9},
		"bogus": {"avg_rating": 1.0, "num_ratings": 5},
		"3": {"num_ratings": 10}
	}`)

	p := &FileProvider{Dir: dir}
	cat, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// 无 ID 的条目被跳过
	if cat.Size() != 3 {
		t.Fatalf("catalog size = %d, want 3", cat.Size())
	}

	heat, ok := cat.ByID(1)
	if !ok || heat.Title != "Heat" {
		t.Fatalf("movie 1 = %+v, want Heat", heat)
	}
	if len(heat.Genres) != 2 || heat.Genres[0] != "Action" {
		t.Errorf("movie 1 genres = %v, want [Action Crime]", heat.Genres)
	}

	up, _ := cat.ByID(2)
	if len(up.Genres) != 2 || up.Genres[1] != "Adventure" {
		t.Errorf("movie 2 genres = %v, want [Animation Adventure]", up.Genres)
	}

	// 缺标题的影片获得占位标题
	anon, _ := cat.ByID(3)
	if anon.Title != "Movie 3" {
		t.Errorf("movie 3 title = %q, want placeholder", anon.Title)
	}

	// 统计：正常条目、缺人数条目保留；非数字键和缺均分条目跳过
	if stat, ok := cat.Stat(1); !ok || stat.Count != 320 {
		t.Errorf("stat 1 = %+v, want count 320", stat)
	}
	if stat, ok := cat.Stat(2); !ok || stat.AvgRating != 3.9 || stat.Count != 0 {
		t.Errorf("stat 2 = %+v, want avg 3.9 count 0", stat)
	}
	if _, ok := cat.Stat(3); ok {
		t.Error("entry without avg_rating must be treated as no signal")
	}
}

func TestFileProviderMissingStatsDegrades(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "movies.json", `[{"movie_id": 1, "title": "Solo", "genres": "Drama"}]`)

	p := &FileProvider{Dir: dir}
	cat, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("missing stats file must not fail the load, got %v", err)
	}
	if len(cat.Stats()) != 0 {
		t.Errorf("stats should be empty, got %d entries", len(cat.Stats()))
	}
}

func TestFileProviderMissingMoviesFails(t *testing.T) {
	p := &FileProvider{Dir: t.TempDir()}
	_, err := p.Load(context.Background())
	if !core.IsNotFound(err) {
		t.Errorf("missing movies.json should yield NOT_FOUND, got %v", err)
	}
}

func TestFileProviderCorruptMoviesFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "movies.json", `{"not": "an array"}`)

	p := &FileProvider{Dir: dir}
	_, err := p.Load(context.Background())
	de := core.GetDomainError(err)
	if de == nil || de.Code != core.ErrorCodeInvalidInput {
		t.Errorf("corrupt movies.json should yield INVALID_INPUT, got %v", err)
	}
}

func TestLoadMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "metadata.json", `{
		"user2idx": {"base": 0},
		"movie2idx": {"1": 10, "2": 11, "x": 99}
	}`)

	p := &FileProvider{Dir: dir}
	meta, err := p.LoadMetadata()
	if err != nil {
		t.Fatalf("LoadMetadata() error = %v", err)
	}

	if idx, ok := meta.UserIdx("base"); !ok || idx != 0 {
		t.Errorf("UserIdx(base) = %d,%v; want 0,true", idx, ok)
	}
	if _, ok := meta.UserIdx("stranger"); ok {
		t.Error("unknown user must not resolve")
	}
	if idx, ok := meta.ItemIdx(2); !ok || idx != 11 {
		t.Errorf("ItemIdx(2) = %d,%v; want 11,true", idx, ok)
	}
	// 非数字影片键被跳过
	if meta.Items() != 2 {
		t.Errorf("Items() = %d, want 2", meta.Items())
	}
}

func TestLoadMetadataMissingMaps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "metadata.json", `{"user2idx": {}}`)

	p := &FileProvider{Dir: dir}
	_, err := p.LoadMetadata()
	de := core.GetDomainError(err)
	if de == nil || de.Code != core.ErrorCodeInvalidInput {
		t.Errorf("metadata without maps should yield INVALID_INPUT, got %v", err)
	}
}

func TestParseGenres(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "pipe separated", raw: `"Action|Drama"`, want: []string{"Action", "Drama"}},
		{name: "array", raw: `["Comedy", "Romance"]`, want: []string{"Comedy", "Romance"}},
		{name: "whitespace trimmed", raw: `" Action | Drama "`, want: []string{"Action", "Drama"}},
		{name: "empty string", raw: `""`, want: nil},
		{name: "null", raw: `null`, want: nil},
		{name: "number is ignored", raw: `42`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGenres(json.RawMessage(tt.raw))
			if len(got) != len(tt.want) {
				t.Fatalf("ParseGenres(%s) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseGenres(%s)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

package bookmarks

import (
	"reflect"
	"testing"

	"metroeval/frontend/internal/model"
)

var sample = []model.Bookmark{
	{ID: "b1", Type: "submission", Title: "Essay draft", Subtitle: "Go Programming", Notes: "needs review"},
	{ID: "b2", Type: "resource", Title: "Effective Go", Subtitle: "Reading", Notes: ""},
	{ID: "b3", Type: "flashcard", Title: "Slices", Subtitle: "Flashcard", Notes: "Go basics"},
}

func ids(items []model.Bookmark) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestFilterByType(t *testing.T) {
	if got := ids(Filter(sample, "resource", "")); !reflect.DeepEqual(got, []string{"b2"}) {
		t.Fatalf("expected [b2], got %v", got)
	}
	if got := ids(Filter(sample, "all", "")); len(got) != 3 {
		t.Fatalf("expected all bookmarks for type 'all', got %v", got)
	}
	if got := ids(Filter(sample, "", "")); len(got) != 3 {
		t.Fatalf("expected all bookmarks for empty type, got %v", got)
	}
}

func TestFilterBySearch(t *testing.T) {
	// Case-insensitive, matches title, subtitle, and notes.
	if got := ids(Filter(sample, "", "EFFECTIVE")); !reflect.DeepEqual(got, []string{"b2"}) {
		t.Fatalf("title search failed: %v", got)
	}
	if got := ids(Filter(sample, "", "go programming")); !reflect.DeepEqual(got, []string{"b1"}) {
		t.Fatalf("subtitle search failed: %v", got)
	}
	if got := ids(Filter(sample, "", "basics")); !reflect.DeepEqual(got, []string{"b3"}) {
		t.Fatalf("notes search failed: %v", got)
	}
	if got := Filter(sample, "", "nomatch"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestFilterCombined(t *testing.T) {
	if got := ids(Filter(sample, "flashcard", "go")); !reflect.DeepEqual(got, []string{"b3"}) {
		t.Fatalf("combined filter failed: %v", got)
	}
	if got := Filter(sample, "submission", "effective"); len(got) != 0 {
		t.Fatalf("expected no match, got %v", got)
	}
}

func TestMetadataLines(t *testing.T) {
	lines := MetadataLines(map[string]interface{}{
		"Course":   "Go Programming",
		"Tags":     []interface{}{"go", "slices"},
		"Empty":    "",
		"Nothing":  nil,
		"Attempts": float64(2),
	})
	want := []string{"Attempts: 2", "Course: Go Programming", "Tags: go, slices"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	if MetadataLines(nil) != nil {
		t.Fatalf("expected nil for empty metadata")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 120); got != "short" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
	got := Truncate("abcdef", 3)
	if got != "abc…" {
		t.Fatalf("expected truncated text with ellipsis, got %q", got)
	}
}

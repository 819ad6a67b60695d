// Package bookmarks mirrors the bookmarks page's client-side list handling.
package bookmarks

import (
	"fmt"
	"sort"
	"strings"

	"metroeval/frontend/internal/model"
)

// Filter narrows a bookmark list by type and a case-insensitive free-text
// search over title, subtitle, and notes. typeFilter "all" or "" matches
// every type.
func Filter(items []model.Bookmark, typeFilter, search string) []model.Bookmark {
	search = strings.ToLower(strings.TrimSpace(search))

	filtered := make([]model.Bookmark, 0, len(items))
	for _, item := range items {
		if typeFilter != "" && typeFilter != "all" && item.Type != typeFilter {
			continue
		}
		if search != "" {
			text := strings.ToLower(item.Title + " " + item.Subtitle + " " + item.Notes)
			if !strings.Contains(text, search) {
				continue
			}
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// MetadataLines flattens a bookmark's metadata map into display lines,
// skipping empty values. Lines are sorted by label for stable output.
func MetadataLines(metadata map[string]interface{}) []string {
	if len(metadata) == 0 {
		return nil
	}

	lines := make([]string, 0, len(metadata))
	for label, value := range metadata {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
			lines = append(lines, label+": "+v)
		case []interface{}:
			if len(v) == 0 {
				continue
			}
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprintf("%v", item))
			}
			lines = append(lines, label+": "+strings.Join(parts, ", "))
		default:
			lines = append(lines, fmt.Sprintf("%s: %v", label, v))
		}
	}
	sort.Strings(lines)
	return lines
}

// Truncate shortens text to limit runes, appending an ellipsis.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

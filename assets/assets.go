// Package assets embeds static data shipped with the binaries.
package assets

import (
	"embed"
	"strings"
)

//go:embed categories.txt
var categoriesFS embed.FS

// SuggestedCategories returns the category examples offered during
// entry capture, one per line in categories.txt. Blank lines and
// #-comments are skipped.
func SuggestedCategories() []string {
	data, err := categoriesFS.ReadFile("categories.txt")
	if err != nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

package chapters

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/brogergvhs/novelsrc/internal/providers"
)

var reUnderscore = regexp.MustCompile(`_+`)

func sanitize(s string) string {
	s = strings.ToLower(s)

	repl := strings.NewReplacer(
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		" ", "_",
		"(", "",
		")", "",
	)
	s = repl.Replace(s)

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			clean = append(clean, r)
		}
	}

	return strings.Trim(reUnderscore.ReplaceAllString(string(clean), "_"), "_")
}

// FileName returns a stable, filesystem-safe name for a chapter's HTML,
// ordered by chapter number.
func FileName(ch providers.Chapter) string {
	base := fmt.Sprintf("%04d", ch.ChapterNumber)
	if title := sanitize(ch.Name); title != "" {
		base += "_" + title
	}

	return base + ".html"
}

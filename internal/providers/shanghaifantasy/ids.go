package shanghaifantasy

import (
	"regexp"
	"strings"
)

var (
	reDataCat   = regexp.MustCompile(`data-cat=["'](\d+)["']`)
	reShortlink = regexp.MustCompile(`[?&]p=(\d+)`)
	reTag       = regexp.MustCompile(`<[^>]*>?`)
)

// NovelID recovers the numeric category id the chapters endpoint is keyed
// by. It returns "" when the page carries neither a data-cat attribute nor
// a WordPress shortlink.
func NovelID(html string) string {
	if m := reDataCat.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	if m := reShortlink.FindStringSubmatch(html); m != nil {
		return m[1]
	}

	return ""
}

func StripHTML(html string) string {
	return strings.TrimSpace(reTag.ReplaceAllString(html, ""))
}

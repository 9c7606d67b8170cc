package chapters

import (
	"strconv"
	"strings"

	"github.com/brogergvhs/novelsrc/internal/providers"
)

// Filter narrows all by a single chapter number, an inclusive "A-B" range
// or a "1,3,5" list, in that order of precedence. Numbers refer to
// Chapter.ChapterNumber, so gaps in the upstream numbering are respected.
func Filter(all []providers.Chapter, chapter, rng, list string) []providers.Chapter {
	if chapter != "" {
		n, err := atoi(chapter)
		if err != nil {
			return nil
		}
		return FilterByNumber(all, n)
	}
	if rng != "" {
		return FilterRange(all, rng)
	}
	if list != "" {
		return FilterList(all, list)
	}

	return all
}

func FilterByNumber(all []providers.Chapter, n int) []providers.Chapter {
	var out []providers.Chapter
	for _, ch := range all {
		if ch.ChapterNumber == n {
			out = append(out, ch)
		}
	}

	return out
}

func FilterRange(all []providers.Chapter, rng string) []providers.Chapter {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil
	}

	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil
	}
	if start <= 0 || end <= 0 || start > end {
		return nil
	}

	var out []providers.Chapter
	for _, ch := range all {
		if ch.ChapterNumber >= start && ch.ChapterNumber <= end {
			out = append(out, ch)
		}
	}

	return out
}

func FilterList(all []providers.Chapter, list string) []providers.Chapter {
	want := map[int]bool{}
	for p := range strings.SplitSeq(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if n, err := atoi(p); err == nil && n > 0 {
			want[n] = true
		}
	}

	var out []providers.Chapter
	for _, ch := range all {
		if want[ch.ChapterNumber] {
			out = append(out, ch)
		}
	}

	return out
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

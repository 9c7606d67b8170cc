package chapters

import (
	"testing"

	"github.com/brogergvhs/novelsrc/internal/providers"
	"github.com/stretchr/testify/assert"
)

// Numbering with a gap at 2, as produced when the API returns an item
// without a link.
var sample = []providers.Chapter{
	{Name: "Chapter 1", Path: "/ch-1", ChapterNumber: 1},
	{Name: "Chapter 3", Path: "/ch-3", ChapterNumber: 3},
	{Name: "Chapter 4", Path: "/ch-4", ChapterNumber: 4},
	{Name: "Finale", Path: "/ch-5", ChapterNumber: 5},
}

func numbers(chs []providers.Chapter) []int {
	out := []int{}
	for _, c := range chs {
		out = append(out, c.ChapterNumber)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name               string
		chapter, rng, list string
		want               []int
	}{
		{"all", "", "", "", []int{1, 3, 4, 5}},
		{"single", "3", "", "", []int{3}},
		{"single in gap", "2", "", "", []int{}},
		{"single wins over range", "4", "1-5", "", []int{4}},
		{"bad single", "x", "", "", []int{}},
		{"range spans gap", "", "1-3", "", []int{1, 3}},
		{"range reversed", "", "4-1", "", []int{}},
		{"range malformed", "", "1-2-3", "", []int{}},
		{"list", "", "", "5, 1,,2,zz", []int{1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, numbers(Filter(sample, tt.chapter, tt.rng, tt.list)))
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "0001_chapter_1.html", FileName(sample[0]))
	assert.Equal(t, "0012_the_end_part_2.html", FileName(providers.Chapter{Name: "The End (Part 2)", ChapterNumber: 12}))
	assert.Equal(t, "0007.html", FileName(providers.Chapter{Name: "—", ChapterNumber: 7}))
}

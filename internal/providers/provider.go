package providers

import "context"

// NovelItem is a listing entry. Path is relative to the source site.
type NovelItem struct {
	Name  string
	Cover string
	Path  string
}

type Chapter struct {
	Name          string
	Path          string
	ChapterNumber int
	ReleaseTime   string
}

// Novel is the detail view of a single novel. Name and Cover are always
// populated, falling back to placeholders when the page lacks them.
type Novel struct {
	Path     string
	Name     string
	Cover    string
	Status   NovelStatus
	Author   string
	Genres   string
	Summary  string
	Chapters []Chapter
}

type Metadata struct {
	ID      string
	Name    string
	Icon    string
	Site    string
	Version string
}

// Source is a single content site. Listing operations degrade to an empty
// result instead of failing; page fetches in ParseNovel and ParseChapter
// return their errors.
type Source interface {
	Metadata() Metadata
	Filters() []Filter

	PopularNovels(ctx context.Context, page int, filters FilterValues) []NovelItem
	SearchNovels(ctx context.Context, term string, page int) []NovelItem
	ParseNovel(ctx context.Context, path string) (*Novel, error)
	ParseChapter(ctx context.Context, path string) (string, error)
	ResolveURL(path string) string
}

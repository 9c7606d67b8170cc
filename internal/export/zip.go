package export

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/novelsrc/internal/chapters"
	"github.com/brogergvhs/novelsrc/internal/providers"
	"github.com/brogergvhs/novelsrc/internal/util"
)

const infoFile = "info.yaml"

type novelInfo struct {
	Name     string   `yaml:"name"`
	Author   string   `yaml:"author,omitempty"`
	Status   string   `yaml:"status"`
	Genres   []string `yaml:"genres,omitempty"`
	Summary  string   `yaml:"summary,omitempty"`
	Cover    string   `yaml:"cover,omitempty"`
	URL      string   `yaml:"url"`
	Chapters int      `yaml:"chapters"`
}

// WriteZip stores one HTML document per fetched chapter plus an info.yaml
// describing the novel. sourceURL is the absolute novel page.
func WriteZip(novel *providers.Novel, contents []Content, sourceURL, output string) error {
	ok := Succeeded(contents)
	if len(ok) == 0 {
		return ErrNoChapters
	}

	info, err := yaml.Marshal(novelInfo{
		Name:     novel.Name,
		Author:   novel.Author,
		Status:   string(novel.Status),
		Genres:   splitGenres(novel.Genres),
		Summary:  novel.Summary,
		Cover:    novel.Cover,
		URL:      sourceURL,
		Chapters: len(ok),
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", infoFile, err)
	}

	entries := make([]util.ArchiveEntry, 0, len(ok)+1)
	entries = append(entries, util.ArchiveEntry{Name: infoFile, Data: info})

	for _, c := range ok {
		title := html.EscapeString(sectionTitle(c.Chapter))
		doc := fmt.Sprintf(
			"<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n<h1>%s</h1>\n%s\n</body>\n</html>\n",
			title, title, c.HTML,
		)

		entries = append(entries, util.ArchiveEntry{
			Name: chapters.FileName(c.Chapter),
			Data: []byte(doc),
		})
	}

	return util.CreateArchive(entries, output)
}

func splitGenres(genres string) []string {
	var out []string
	for _, g := range strings.Split(genres, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}

	return out
}

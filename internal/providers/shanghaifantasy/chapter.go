package shanghaifantasy

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Candidate containers for the chapter body, most specific first.
var contentSelectors = []string{".contenta", ".entry-content", ".reading-content"}

const (
	selAds   = ".ai-viewport-1, .ai-viewport-2, .ai-viewport-3, .code-block"
	selNoise = "script, ins, button, template, [x-data]"
)

func (s *Source) ParseChapter(ctx context.Context, path string) (string, error) {
	_, doc, err := s.fetchPage(ctx, s.ResolveURL(path))
	if err != nil {
		return "", err
	}

	content := chapterContainer(doc)
	if content == nil {
		s.log.Debugf("no content container on %s", path)
		return "", nil
	}

	content.Find(selAds).Remove()
	content.Find(selNoise).Remove()

	html, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("render chapter %s: %w", path, err)
	}

	return html, nil
}

func chapterContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if c := doc.Find(sel).First(); c.Length() > 0 {
			return c
		}
	}

	return nil
}

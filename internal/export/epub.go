package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-epub"

	"github.com/brogergvhs/novelsrc/internal/providers"
)

// WriteEPUB compiles the fetched chapters of novel into an EPUB at output.
// coverFile is a local image path and may be empty.
func WriteEPUB(novel *providers.Novel, contents []Content, coverFile, output string) error {
	ok := Succeeded(contents)
	if len(ok) == 0 {
		return ErrNoChapters
	}

	e, err := epub.NewEpub(novel.Name)
	if err != nil {
		return fmt.Errorf("failed to create EPub: %w", err)
	}

	if novel.Author != "" {
		e.SetAuthor(novel.Author)
	}
	if novel.Summary != "" {
		e.SetDescription(novel.Summary)
	}
	e.SetLang("en")

	if coverFile != "" {
		img, err := e.AddImage(coverFile, "")
		if err != nil {
			return fmt.Errorf("failed to add cover: %w", err)
		}

		body := fmt.Sprintf(`<div class="cover"><img src="%s" alt="%s" style="max-width:100%%;height:auto;"/></div>`,
			img, html.EscapeString(novel.Name))
		if _, err := e.AddSection(body, "Cover", "", ""); err != nil {
			return fmt.Errorf("failed to add cover section: %w", err)
		}
	}

	for _, c := range ok {
		title := sectionTitle(c.Chapter)

		var b strings.Builder
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(title))
		b.WriteString(xhtmlBody(c.HTML))

		if _, err := e.AddSection(b.String(), title, "", ""); err != nil {
			return fmt.Errorf("failed to add chapter %d: %w", c.Chapter.ChapterNumber, err)
		}
	}

	if err := e.Write(output); err != nil {
		return fmt.Errorf("failed to write EPub: %w", err)
	}

	return nil
}

func sectionTitle(ch providers.Chapter) string {
	if strings.TrimSpace(ch.Name) != "" {
		return ch.Name
	}

	return fmt.Sprintf("Chapter %d", ch.ChapterNumber)
}

// xhtmlBody re-renders a chapter fragment so void elements are self-closed.
func xhtmlBody(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return fragment
	}

	return out
}

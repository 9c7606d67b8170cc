package shanghaifantasy

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/novelsrc/internal/providers"
)

const (
	selTitle    = `p.text-lg.font-bold`
	selCover    = `img.rounded-lg, img.aspect-\[3\/4\]`
	selLabel    = `span.font-bold`
	selStatus   = `a[href*="status"]`
	selGenre    = `a[href*="genre"]`
	selSynopsis = `div[x-show="activeTab==='Synopsis'"]`
)

func (s *Source) ParseNovel(ctx context.Context, path string) (*providers.Novel, error) {
	novelURL := s.ResolveURL(path)

	body, doc, err := s.fetchPage(ctx, novelURL)
	if err != nil {
		return nil, err
	}

	novel := &providers.Novel{
		Path:     path,
		Name:     "Untitled",
		Cover:    s.defaultCover,
		Status:   providers.StatusUnknown,
		Chapters: []providers.Chapter{},
	}

	if name := novelName(doc); name != "" {
		novel.Name = name
	}

	if src, ok := doc.Find(selCover).First().Attr("src"); ok && src != "" {
		novel.Cover = src
	}

	doc.Find(selLabel).Each(func(_ int, el *goquery.Selection) {
		label := strings.TrimSpace(el.Text())
		if !strings.Contains(label, "Author") {
			return
		}

		novel.Author = strings.TrimSpace(strings.Replace(el.Parent().Text(), label, "", 1))
	})

	novel.Status = providers.ParseStatus(doc.Find(selStatus).Text())

	var genres []string
	doc.Find(selGenre).Each(func(_ int, a *goquery.Selection) {
		genres = append(genres, strings.TrimSpace(a.Text()))
	})
	if len(genres) > 0 {
		novel.Genres = strings.Join(genres, ", ")
	}

	novel.Summary = novelSummary(doc)

	if id := NovelID(body); id != "" {
		novel.Chapters = s.fetchChapters(ctx, id, novelURL)
	} else {
		s.log.Debugf("no category id on %s, skipping chapter list", novelURL)
	}

	return novel, nil
}

func novelName(doc *goquery.Document) string {
	if name := strings.TrimSpace(doc.Find(selTitle).Text()); name != "" {
		return name
	}

	name, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	return name
}

func novelSummary(doc *goquery.Document) string {
	panel := doc.Find(selSynopsis)
	if panel.Length() == 0 {
		desc, _ := doc.Find(`meta[property="og:description"]`).Attr("content")
		return desc
	}

	paras := panel.Find("p").Map(func(_ int, p *goquery.Selection) string {
		return strings.TrimSpace(p.Text())
	})

	return strings.Join(paras, "\n\n")
}

// fetchChapters requests the full chapter list in one page. ChapterNumber
// is the item's position in the response, so skipped items leave gaps.
func (s *Source) fetchChapters(ctx context.Context, id, referer string) []providers.Chapter {
	params := url.Values{}
	params.Set("category", id)
	params.Set("order", "asc")
	params.Set("page", "1")
	params.Set("per_page", "9999")

	recs, err := s.getRecords(ctx, s.site+"/wp-json/fiction/v1/chapters", params, referer)
	if err != nil {
		s.log.Errorf("Chapter API Error: %v", err)
		return []providers.Chapter{}
	}

	chapters := make([]providers.Chapter, 0, len(recs))
	for i, r := range recs {
		link := r.str("permalink", "url", "link")
		if link == "" {
			continue
		}

		name := r.str("post_title", "title")
		if name == "" {
			name = "Chapter " + strconv.Itoa(i+1)
		}

		chapters = append(chapters, providers.Chapter{
			Name:          name,
			Path:          s.relative(link),
			ChapterNumber: i + 1,
			ReleaseTime:   r.str("post_date", "date"),
		})
	}

	return chapters
}

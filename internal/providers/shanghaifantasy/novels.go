package shanghaifantasy

import (
	"context"
	"net/url"
	"strconv"

	"github.com/brogergvhs/novelsrc/internal/providers"
)

func (s *Source) novelsEndpoint() string {
	return s.site + "/wp-json/fiction/v1/novels/"
}

func (s *Source) PopularNovels(ctx context.Context, page int, filters providers.FilterValues) []providers.NovelItem {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("novelstatus", filters.Value(filterByKey(FilterStatus)))
	params.Set("term", filters.Value(filterByKey(FilterTerm)))
	params.Set("orderby", "date")
	params.Set("order", "desc")
	params.Set("query", "")

	referer := s.site + "/library/?pages=" + strconv.Itoa(page)

	recs, err := s.getRecords(ctx, s.novelsEndpoint(), params, referer)
	if err != nil {
		s.log.Errorf("Popular Error: %v", err)
		return []providers.NovelItem{}
	}

	novels := make([]providers.NovelItem, 0, len(recs))
	for _, r := range recs {
		name := r.str("title")
		if name == "" {
			continue
		}

		novels = append(novels, providers.NovelItem{
			Name:  name,
			Cover: s.cover(r.str("novelImage", "thumbnail")),
			Path:  s.relative(r.str("permalink")),
		})
	}

	return novels
}

func (s *Source) SearchNovels(ctx context.Context, term string, page int) []providers.NovelItem {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("novelstatus", "")
	params.Set("term", "")
	params.Set("query", term)
	params.Set("orderby", "")
	params.Set("order", "")

	recs, err := s.getRecords(ctx, s.novelsEndpoint(), params, s.site+"/library/")
	if err != nil {
		s.log.Errorf("Search Error: %v", err)
		return []providers.NovelItem{}
	}

	novels := make([]providers.NovelItem, 0, len(recs))
	for _, r := range recs {
		name := r.str("title", "post_title", "name")
		link := r.str("permalink", "link", "url")
		if name == "" || link == "" {
			continue
		}

		novels = append(novels, providers.NovelItem{
			Name:  name,
			Cover: s.cover(r.str("novelImage", "thumbnail", "image")),
			Path:  s.relative(link),
		})
	}

	return novels
}

func (s *Source) cover(u string) string {
	if u == "" {
		return s.defaultCover
	}

	return u
}

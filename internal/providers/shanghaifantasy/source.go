package shanghaifantasy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/novelsrc/internal/providers"
	"github.com/brogergvhs/novelsrc/internal/ui"
	"github.com/brogergvhs/novelsrc/internal/util"
)

const (
	DefaultSite  = "https://shanghaifantasy.com"
	DefaultCover = "https://github.com/LNReader/lnreader-plugins/blob/master/icons/src/coverNotAvailable.webp?raw=true"

	logComponent = "ShanghaiFantasy"
)

var meta = providers.Metadata{
	ID:      "shanghaifantasy",
	Name:    "Shanghai Fantasy",
	Icon:    "src/en/shanghaifantasy/icon.png",
	Site:    DefaultSite,
	Version: "1.0.1",
}

type Options struct {
	Site         string
	DefaultCover string
	UserAgent    string
	Client       *http.Client
	Logger       *ui.Logger
}

type Source struct {
	client       *http.Client
	site         string
	defaultCover string
	userAgent    string
	log          *ui.Logger
}

var _ providers.Source = (*Source)(nil)

func New(opts Options) *Source {
	s := &Source{
		client:       opts.Client,
		site:         strings.TrimRight(opts.Site, "/"),
		defaultCover: opts.DefaultCover,
		userAgent:    util.PickUserAgent(opts.UserAgent),
	}

	if s.client == nil {
		s.client = &http.Client{Timeout: 30 * time.Second}
	}
	if s.site == "" {
		s.site = DefaultSite
	}
	if s.defaultCover == "" {
		s.defaultCover = DefaultCover
	}

	log := opts.Logger
	if log == nil {
		log = ui.NewLogger(false)
	}
	s.log = log.WithPrefix(logComponent)

	return s
}

func (s *Source) Metadata() providers.Metadata {
	m := meta
	m.Site = s.site
	return m
}

func (s *Source) ResolveURL(path string) string {
	return s.site + path
}

// relative strips the site origin from an absolute link.
func (s *Source) relative(link string) string {
	return strings.Replace(link, s.site, "", 1)
}

func (s *Source) get(ctx context.Context, target, referer string, jsonAPI bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	if jsonAPI {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("Referer", referer)
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.log.Debugf("failed to close response body for %s: %v", target, cerr)
		}
	}()

	if err := util.CheckStatus(resp); err != nil {
		return nil, err
	}

	return io.ReadAll(resp.Body)
}

func (s *Source) getRecords(ctx context.Context, endpoint string, params url.Values, referer string) ([]record, error) {
	body, err := s.get(ctx, endpoint+"?"+params.Encode(), referer, true)
	if err != nil {
		return nil, err
	}

	recs, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}

	return recs, nil
}

// fetchPage returns the raw HTML alongside the parsed document; the raw
// form is needed for attribute patterns the DOM queries do not cover.
func (s *Source) fetchPage(ctx context.Context, target string) (string, *goquery.Document, error) {
	body, err := s.get(ctx, target, s.site+"/", false)
	if err != nil {
		return "", nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("parse %s: %w", target, err)
	}

	return string(body), doc, nil
}

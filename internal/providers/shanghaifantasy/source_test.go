package shanghaifantasy

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brogergvhs/novelsrc/internal/providers"
	"github.com/brogergvhs/novelsrc/internal/ui"
	"github.com/brogergvhs/novelsrc/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t      *testing.T
	srv    *httptest.Server
	mux    *http.ServeMux
	src    *Source
	logBuf *bytes.Buffer

	mu       sync.Mutex
	requests []*http.Request
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{t: t, mux: http.NewServeMux(), logBuf: &bytes.Buffer{}}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Clone(context.Background()))
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)

	f.src = New(Options{
		Site:   f.srv.URL,
		Client: &http.Client{Timeout: 5 * time.Second},
		Logger: ui.NewLoggerTo(f.logBuf, false),
	})

	return f
}

// body serves content with every {{site}} replaced by the server origin.
func (f *fixture) body(pattern, contentType, content string) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(strings.ReplaceAll(content, "{{site}}", f.srv.URL)))
	})
}

func (f *fixture) lastRequest(path string) *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].URL.Path == path {
			return f.requests[i]
		}
	}
	f.t.Fatalf("no request to %s", path)
	return nil
}

func (f *fixture) requested(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.requests {
		if r.URL.Path == path {
			return true
		}
	}
	return false
}

const novelsItems = `[
  {"title": "Rebirth of the Era", "novelImage": "https://cdn/a.jpg", "permalink": "{{site}}/novel/rebirth/"},
  {"thumbnail": "https://cdn/b.jpg", "permalink": "{{site}}/novel/untitled/"},
  {"title": "Thumb Only", "thumbnail": "https://cdn/c.jpg", "permalink": "{{site}}/novel/thumb/"},
  {"title": "No Cover", "permalink": "{{site}}/novel/plain/"}
]`

func TestPopularNovelsToleratesBothShapes(t *testing.T) {
	bare := newFixture(t)
	bare.body("/wp-json/fiction/v1/novels/", "application/json", novelsItems)

	wrapped := newFixture(t)
	wrapped.body("/wp-json/fiction/v1/novels/", "application/json", `{"data": `+novelsItems+`, "total": 4}`)

	want := []providers.NovelItem{
		{Name: "Rebirth of the Era", Cover: "https://cdn/a.jpg", Path: "/novel/rebirth/"},
		{Name: "Thumb Only", Cover: "https://cdn/c.jpg", Path: "/novel/thumb/"},
		{Name: "No Cover", Cover: DefaultCover, Path: "/novel/plain/"},
	}

	assert.Equal(t, want, bare.src.PopularNovels(context.Background(), 1, nil))
	assert.Equal(t, want, wrapped.src.PopularNovels(context.Background(), 1, nil))
}

func TestPopularNovelsRequest(t *testing.T) {
	f := newFixture(t)
	f.body("/wp-json/fiction/v1/novels/", "application/json", `[]`)

	got := f.src.PopularNovels(context.Background(), 3, providers.FilterValues{
		FilterStatus: "Completed",
		FilterTerm:   "Transmigration",
	})
	assert.Empty(t, got)

	req := f.lastRequest("/wp-json/fiction/v1/novels/")
	q := req.URL.Query()
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "Completed", q.Get("novelstatus"))
	assert.Equal(t, "Transmigration", q.Get("term"))
	assert.Equal(t, "date", q.Get("orderby"))
	assert.Equal(t, "desc", q.Get("order"))
	assert.Equal(t, "", q.Get("query"))

	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, f.srv.URL+"/library/?pages=3", req.Header.Get("Referer"))
	assert.Equal(t, util.DefaultUserAgent, req.Header.Get("User-Agent"))
}

func TestPopularNovelsDefaultFilters(t *testing.T) {
	f := newFixture(t)
	f.body("/wp-json/fiction/v1/novels/", "application/json", `[]`)

	f.src.PopularNovels(context.Background(), 1, providers.FilterValues{})

	q := f.lastRequest("/wp-json/fiction/v1/novels/").URL.Query()
	assert.True(t, q.Has("novelstatus"))
	assert.True(t, q.Has("term"))
	assert.Equal(t, "", q.Get("novelstatus"))
	assert.Equal(t, "", q.Get("term"))
}

func TestSearchNovels(t *testing.T) {
	f := newFixture(t)
	f.body("/wp-json/fiction/v1/novels/", "application/json", `{"data": [
	  {"post_title": "Post Title", "image": "https://cdn/i.jpg", "link": "{{site}}/novel/post/"},
	  {"name": "Named", "url": "{{site}}/novel/named/"},
	  {"title": "No Link"},
	  {"permalink": "{{site}}/novel/nameless/"},
	  {"title": "", "post_title": "Empty Title Falls Through", "permalink": "{{site}}/novel/fall/"}
	]}`)

	got := f.src.SearchNovels(context.Background(), "era wife", 2)

	assert.Equal(t, []providers.NovelItem{
		{Name: "Post Title", Cover: "https://cdn/i.jpg", Path: "/novel/post/"},
		{Name: "Named", Cover: DefaultCover, Path: "/novel/named/"},
		{Name: "Empty Title Falls Through", Cover: DefaultCover, Path: "/novel/fall/"},
	}, got)

	req := f.lastRequest("/wp-json/fiction/v1/novels/")
	q := req.URL.Query()
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "era wife", q.Get("query"))
	assert.Equal(t, "", q.Get("orderby"))
	assert.Equal(t, "", q.Get("order"))
	assert.Equal(t, "", q.Get("novelstatus"))
	assert.Equal(t, "", q.Get("term"))
	assert.Equal(t, f.srv.URL+"/library/", req.Header.Get("Referer"))
}

func TestListingFailuresDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `[]`},
		{"html instead of json", http.StatusOK, `<html>blocked</html>`},
		{"object without data", http.StatusOK, `{"message": "nope"}`},
		{"null", http.StatusOK, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.mux.HandleFunc("/wp-json/fiction/v1/novels/", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			popular := f.src.PopularNovels(context.Background(), 1, nil)
			search := f.src.SearchNovels(context.Background(), "x", 1)

			assert.NotNil(t, popular)
			assert.Empty(t, popular)
			assert.NotNil(t, search)
			assert.Empty(t, search)
		})
	}
}

func TestListingLogsWithComponentPrefix(t *testing.T) {
	f := newFixture(t)
	f.body("/wp-json/fiction/v1/novels/", "text/html", `<html></html>`)

	f.src.PopularNovels(context.Background(), 1, nil)
	f.src.SearchNovels(context.Background(), "x", 1)

	out := f.logBuf.String()
	assert.Contains(t, out, "[ERROR] ShanghaiFantasy Popular Error:")
	assert.Contains(t, out, "[ERROR] ShanghaiFantasy Search Error:")
}

func TestListingUnreachableSite(t *testing.T) {
	src := New(Options{
		Site:   "http://127.0.0.1:1",
		Client: &http.Client{Timeout: time.Second},
		Logger: ui.NewLoggerTo(&bytes.Buffer{}, false),
	})

	assert.Empty(t, src.PopularNovels(context.Background(), 1, nil))
	assert.Empty(t, src.SearchNovels(context.Background(), "x", 1))
}

const novelPage = `<!DOCTYPE html>
<html>
<head>
  <meta property="og:title" content="OG Title">
  <meta property="og:description" content="OG description">
  <link rel="shortlink" href="{{site}}/?p=999">
</head>
<body>
  <div class="flex">
    <img class="rounded-lg" src="https://cdn/cover.jpg">
    <p class="text-lg font-bold">  The Sickly Wife  </p>
    <div><span class="font-bold">Author:</span> Mo Yu</div>
    <div><span class="font-bold">Translator:</span> Lin</div>
    <a href="{{site}}/novelstatus/ongoing/">  Ongoing </a>
    <a href="{{site}}/genre/romance/">Romance</a>
    <a href="{{site}}/genre/era/"> Era </a>
  </div>
  <div x-show="activeTab==='Synopsis'">
    <p> First paragraph. </p>
    <p>Second paragraph.</p>
  </div>
  <button data-cat="482">Subscribe</button>
</body>
</html>`

func TestParseNovel(t *testing.T) {
	f := newFixture(t)
	f.body("/novel/sickly-wife/", "text/html", novelPage)
	f.body("/wp-json/fiction/v1/chapters", "application/json", `[
	  {"permalink": "{{site}}/ch-1", "post_date": "2024-01-01"},
	  {"post_title": "No Link"},
	  {"permalink": "{{site}}/ch-3"},
	  {"post_title": "Finale", "url": "{{site}}/ch-4", "date": "2024-02-01 10:00:00"}
	]`)

	novel, err := f.src.ParseNovel(context.Background(), "/novel/sickly-wife/")
	require.NoError(t, err)

	assert.Equal(t, "/novel/sickly-wife/", novel.Path)
	assert.Equal(t, "The Sickly Wife", novel.Name)
	assert.Equal(t, "https://cdn/cover.jpg", novel.Cover)
	assert.Equal(t, "Mo Yu", novel.Author)
	assert.Equal(t, providers.StatusOngoing, novel.Status)
	assert.Equal(t, "Romance, Era", novel.Genres)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", novel.Summary)

	assert.Equal(t, []providers.Chapter{
		{Name: "Chapter 1", Path: "/ch-1", ChapterNumber: 1, ReleaseTime: "2024-01-01"},
		{Name: "Chapter 3", Path: "/ch-3", ChapterNumber: 3, ReleaseTime: ""},
		{Name: "Finale", Path: "/ch-4", ChapterNumber: 4, ReleaseTime: "2024-02-01 10:00:00"},
	}, novel.Chapters)

	req := f.lastRequest("/wp-json/fiction/v1/chapters")
	q := req.URL.Query()
	assert.Equal(t, "482", q.Get("category"))
	assert.Equal(t, "asc", q.Get("order"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "9999", q.Get("per_page"))
	assert.Equal(t, f.srv.URL+"/novel/sickly-wife/", req.Header.Get("Referer"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestParseNovelFallbacks(t *testing.T) {
	f := newFixture(t)
	f.body("/novel/bare/", "text/html", `<html><head>
	  <meta property="og:description" content="From meta">
	</head><body><a href="/status/x">Dropped</a></body></html>`)

	novel, err := f.src.ParseNovel(context.Background(), "/novel/bare/")
	require.NoError(t, err)

	assert.Equal(t, "Untitled", novel.Name)
	assert.Equal(t, DefaultCover, novel.Cover)
	assert.Equal(t, providers.StatusUnknown, novel.Status)
	assert.Empty(t, novel.Author)
	assert.Empty(t, novel.Genres)
	assert.Equal(t, "From meta", novel.Summary)
	assert.NotNil(t, novel.Chapters)
	assert.Empty(t, novel.Chapters)
	assert.False(t, f.requested("/wp-json/fiction/v1/chapters"))
}

func TestParseNovelOGTitleAndShortlink(t *testing.T) {
	f := newFixture(t)
	f.body("/novel/short/", "text/html", `<html><head>
	  <meta property="og:title" content="From OG">
	  <link rel="shortlink" href="{{site}}/?p=773">
	</head><body></body></html>`)
	f.body("/wp-json/fiction/v1/chapters", "application/json", `{"data": [{"post_title": "One", "link": "{{site}}/one/"}]}`)

	novel, err := f.src.ParseNovel(context.Background(), "/novel/short/")
	require.NoError(t, err)

	assert.Equal(t, "From OG", novel.Name)
	assert.Equal(t, "", novel.Summary)
	assert.Equal(t, "773", f.lastRequest("/wp-json/fiction/v1/chapters").URL.Query().Get("category"))
	assert.Equal(t, []providers.Chapter{{Name: "One", Path: "/one/", ChapterNumber: 1}}, novel.Chapters)
}

func TestParseNovelChapterAPIFailure(t *testing.T) {
	f := newFixture(t)
	f.body("/novel/x/", "text/html", `<html><body><div data-cat='12'></div><p class="text-lg font-bold">X</p></body></html>`)
	f.mux.HandleFunc("/wp-json/fiction/v1/chapters", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	novel, err := f.src.ParseNovel(context.Background(), "/novel/x/")
	require.NoError(t, err)

	assert.Equal(t, "X", novel.Name)
	assert.Empty(t, novel.Chapters)
	assert.Contains(t, f.logBuf.String(), "ShanghaiFantasy Chapter API Error:")
}

func TestParseNovelPageError(t *testing.T) {
	f := newFixture(t)

	_, err := f.src.ParseNovel(context.Background(), "/novel/missing/")
	assert.Error(t, err)
}

func TestNovelID(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"data-cat double quotes", `<div data-cat="482"></div>`, "482"},
		{"data-cat single quotes", `<div data-cat='17'></div>`, "17"},
		{"data-cat wins over shortlink", `<a href="/?p=1"></a><div data-cat="2"></div>`, "2"},
		{"shortlink query", `<link rel="shortlink" href="https://x/?p=773">`, "773"},
		{"shortlink ampersand", `<a href="/index.php?x=1&p=55">`, "55"},
		{"none", `<div data-cat="abc"></div><a href="/?page=2">`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NovelID(tt.html))
		})
	}
}

func TestParseChapter(t *testing.T) {
	f := newFixture(t)
	f.body("/ch-1", "text/html", `<html><body>
	<div class="entry-content"><p>Wrong container</p></div>
	<div class="contenta">
	  <p>Line one.</p>
	  <div class="ai-viewport-1">ad</div>
	  <div class="code-block"><span>ad</span></div>
	  <script>track()</script>
	  <ins class="adsbygoogle"></ins>
	  <button>Next</button>
	  <template><p>tpl</p></template>
	  <div x-data="{open:false}"><p>popup</p></div>
	  <section x-data><p>also interactive</p></section>
	  <p>Line two.</p>
	</div>
	</body></html>`)

	html, err := f.src.ParseChapter(context.Background(), "/ch-1")
	require.NoError(t, err)

	assert.Contains(t, html, "<p>Line one.</p>")
	assert.Contains(t, html, "<p>Line two.</p>")
	assert.NotContains(t, html, "Wrong container")
	for _, banned := range []string{"<script", "<button", "<template", "<ins", "x-data", "ai-viewport", "code-block", "popup"} {
		assert.NotContains(t, html, banned)
	}
}

func TestParseChapterFallbackContainers(t *testing.T) {
	f := newFixture(t)
	f.body("/entry", "text/html", `<div class="reading-content"><p>R</p></div><div class="entry-content"><p>E</p></div>`)
	f.body("/reading", "text/html", `<div class="reading-content"><p>R</p></div>`)
	f.body("/none", "text/html", `<div class="article"><p>nothing</p></div>`)
	f.body("/empty", "text/html", `<div class="contenta"><script>x()</script></div>`)

	got, err := f.src.ParseChapter(context.Background(), "/entry")
	require.NoError(t, err)
	assert.Equal(t, "<p>E</p>", got)

	got, err = f.src.ParseChapter(context.Background(), "/reading")
	require.NoError(t, err)
	assert.Equal(t, "<p>R</p>", got)

	got, err = f.src.ParseChapter(context.Background(), "/none")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = f.src.ParseChapter(context.Background(), "/empty")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello world", StripHTML("  <p>Hello <b>world</b></p>\n"))
	assert.Equal(t, "a", StripHTML("a<br"))
}

func TestResolveURLRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.body("/wp-json/fiction/v1/novels/", "application/json", `[{"title": "T", "permalink": "{{site}}/novel/t/"}]`)

	items := f.src.PopularNovels(context.Background(), 1, nil)
	require.Len(t, items, 1)

	assert.Equal(t, f.srv.URL+items[0].Path, f.src.ResolveURL(items[0].Path))
	u, err := url.Parse(f.src.ResolveURL(items[0].Path))
	require.NoError(t, err)
	assert.Equal(t, "/novel/t/", u.Path)
}

func TestMetadata(t *testing.T) {
	src := New(Options{})
	m := src.Metadata()

	assert.Equal(t, "shanghaifantasy", m.ID)
	assert.Equal(t, "Shanghai Fantasy", m.Name)
	assert.Equal(t, DefaultSite, m.Site)
	assert.Equal(t, DefaultSite+"/novel/x/", src.ResolveURL("/novel/x/"))

	custom := New(Options{Site: "https://mirror.example/"})
	assert.Equal(t, "https://mirror.example", custom.Metadata().Site)
}

func TestFilters(t *testing.T) {
	fs := New(Options{}).Filters()
	require.Len(t, fs, 2)

	status, term := fs[0], fs[1]
	assert.Equal(t, FilterStatus, status.Key)
	assert.Equal(t, FilterTerm, term.Key)

	for _, f := range fs {
		assert.Equal(t, providers.FilterPicker, f.Kind)
		assert.Equal(t, "", f.Default)
		assert.Equal(t, providers.FilterOption{Label: "All", Value: ""}, f.Options[0])
	}

	assert.True(t, status.HasValue("Completed"))
	assert.True(t, term.HasValue("Girl's Love"))
	assert.True(t, term.HasValue("Hot-blooded Protagonist"))
	assert.True(t, term.HasValue("Omegaverse"))
	assert.Len(t, term.Options, 371)

	seen := map[string]bool{}
	for _, o := range term.Options {
		assert.False(t, seen[o.Value], fmt.Sprintf("duplicate option %q", o.Value))
		seen[o.Value] = true
	}
}

func TestParseFiltersRejectsBadYAML(t *testing.T) {
	_, err := parseFilters([]byte("filters: [\n"))
	assert.Error(t, err)
}

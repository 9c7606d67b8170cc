package export

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/brogergvhs/novelsrc/internal/providers"
	"github.com/brogergvhs/novelsrc/internal/ui"
)

var ErrNoChapters = errors.New("no chapters to export")

// Content is the fetched body of one chapter. Err is set when the fetch
// failed and HTML is then empty.
type Content struct {
	Chapter providers.Chapter
	HTML    string
	Err     error
}

type Exporter struct {
	src        providers.Source
	log        *ui.Logger
	skipBroken bool
}

func New(src providers.Source, log *ui.Logger, skipBroken bool) *Exporter {
	if log == nil {
		log = ui.NewLogger(false)
	}

	return &Exporter{src: src, log: log, skipBroken: skipBroken}
}

type noProgress struct{}

func (noProgress) Update(int, int, int64) {}
func (noProgress) MarkDone()              {}

// FetchChapters downloads chapter bodies with up to maxParallel concurrent
// requests. Results keep the order of chs. Unless the exporter skips broken
// chapters, any failure fails the whole fetch.
func (e *Exporter) FetchChapters(
	ctx context.Context,
	chs []providers.Chapter,
	maxParallel int,
	ph ui.Progress,
	stats *ui.Stats,
) ([]Content, error) {

	total := len(chs)
	if total == 0 {
		return nil, ErrNoChapters
	}
	if ph == nil {
		ph = noProgress{}
	}
	if stats == nil {
		stats = &ui.Stats{}
	}
	if maxParallel < 1 {
		maxParallel = 1
	}
	if maxParallel > total {
		maxParallel = total
	}

	results := make([]Content, total)

	var (
		mu     sync.Mutex
		done   int
		failed int
		bytes  int64
	)
	ph.Update(0, total, 0)

	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			ch := chs[i]

			html, err := e.src.ParseChapter(ctx, ch.Path)
			results[i] = Content{Chapter: ch, HTML: html, Err: err}

			if err != nil {
				e.log.Errorf("Chapter %d (%s) failed: %v", ch.ChapterNumber, ch.Path, err)
				stats.Failed.Add(1)
			} else {
				stats.Chapters.Add(1)
				stats.Bytes.Add(int64(len(html)))
			}

			mu.Lock()
			done++
			if err != nil {
				failed++
			}
			bytes += int64(len(html))
			ph.Update(done, total, bytes)
			mu.Unlock()
		}
	}

	wg.Add(maxParallel)
	for w := 0; w < maxParallel; w++ {
		go worker()
	}

	for i := range chs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			ph.MarkDone()
			return results, ctx.Err()
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()
	ph.MarkDone()

	if failed > 0 && !e.skipBroken {
		return results, fmt.Errorf("failed %d/%d chapters (use --skip-broken to continue)", failed, total)
	}

	return results, nil
}

// Succeeded returns the contents that were fetched without error.
func Succeeded(contents []Content) []Content {
	out := make([]Content, 0, len(contents))
	for _, c := range contents {
		if c.Err == nil {
			out = append(out, c)
		}
	}

	return out
}

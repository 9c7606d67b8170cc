package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/brogergvhs/novelsrc/internal/providers"
)

func newTable(w io.Writer, header string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, header)
	return tw
}

func printNovelItems(w io.Writer, items []providers.NovelItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No novels found.")
		return err
	}

	tw := newTable(w, "#\tNAME\tPATH")
	for i, it := range items {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, it.Name, it.Path)
	}

	return tw.Flush()
}

// releaseLabel renders an upstream post date relative to now, e.g.
// "3 days ago (2024-05-01)". Unparseable dates are shown verbatim.
func releaseLabel(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "-"
	}

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return raw
	}

	return fmt.Sprintf("%s (%s)", humanize.RelTime(t, now, "ago", "from now"), t.Format("2006-01-02"))
}

func printNovel(w io.Writer, n *providers.Novel, url string, now time.Time) error {
	_, _ = fmt.Fprintf(w, "%s\n\n", n.Name)
	_, _ = fmt.Fprintf(w, " -url: %s\n", url)
	_, _ = fmt.Fprintf(w, " -cover: %s\n", n.Cover)
	_, _ = fmt.Fprintf(w, " -status: %s\n", n.Status)
	if n.Author != "" {
		_, _ = fmt.Fprintf(w, " -author: %s\n", n.Author)
	}
	if n.Genres != "" {
		_, _ = fmt.Fprintf(w, " -genres: %s\n", n.Genres)
	}
	if n.Summary != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", n.Summary)
	}

	_, _ = fmt.Fprintf(w, "\n%s:\n", english.Plural(len(n.Chapters), "chapter", "chapters"))
	if len(n.Chapters) == 0 {
		return nil
	}

	tw := newTable(w, "#\tNAME\tRELEASED\tPATH")
	for _, ch := range n.Chapters {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", ch.ChapterNumber, ch.Name, releaseLabel(ch.ReleaseTime, now), ch.Path)
	}

	return tw.Flush()
}

func printFilters(w io.Writer, filters []providers.Filter, verbose bool) error {
	for i, f := range filters {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}

		def := f.LabelFor(f.Default)
		_, _ = fmt.Fprintf(w, "%s (%s, %s, default %q): %s\n",
			f.Label, f.Key, f.Kind, def, english.Plural(len(f.Options), "option", "options"))

		shown := f.Options
		if !verbose && len(shown) > 12 {
			shown = shown[:12]
		}

		tw := newTable(w, "  VALUE\tLABEL")
		for _, o := range shown {
			v := o.Value
			if v == "" {
				v = `""`
			}
			_, _ = fmt.Fprintf(tw, "  %s\t%s\n", v, o.Label)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if len(shown) < len(f.Options) {
			_, _ = fmt.Fprintf(w, "  ... %d more (use --all)\n", len(f.Options)-len(shown))
		}
	}

	return nil
}

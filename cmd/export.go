package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/brogergvhs/novelsrc/internal/chapters"
	"github.com/brogergvhs/novelsrc/internal/config"
	"github.com/brogergvhs/novelsrc/internal/export"
	"github.com/brogergvhs/novelsrc/internal/ui"
	"github.com/brogergvhs/novelsrc/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagChapter string
	flagRange   string
	flagList    string

	// runtime
	flagOutput         string
	flagFormat         string
	flagChapterWorkers int
	flagDryRun         bool
	flagSkipBroken     bool
	flagNoCover        bool
)

func init() {
	exportCmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Download a novel's chapters into an EPUB or ZIP. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	// selection
	exportCmd.Flags().StringVar(&flagChapter, "chapter", "", "export a single chapter by number")
	exportCmd.Flags().StringVar(&flagRange, "range", "", "export a range of chapters by number (e.g. 5-12)")
	exportCmd.Flags().StringVar(&flagList, "list", "", "export specific chapter numbers (e.g. 1,3,5)")

	// runtime
	exportCmd.Flags().StringVar(&flagOutput, "output", "", "output folder")
	exportCmd.Flags().StringVar(&flagFormat, "format", "", "epub or zip")
	exportCmd.Flags().IntVar(&flagChapterWorkers, "chapter-workers", 2, "parallel chapter downloads")
	exportCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be exported, don’t download")
	exportCmd.Flags().BoolVar(&flagSkipBroken, "skip-broken", false, "leave out failed chapters instead of failing the export")
	exportCmd.Flags().BoolVar(&flagNoCover, "no-cover", false, "don't embed the cover image")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	opts := config.Options{
		Output: flagOutput,
		Format: flagFormat,
	}
	if cmd.Flags().Changed("chapter-workers") {
		opts.ChapterWorkers = flagChapterWorkers
	}

	s, err := newSession(opts)
	if err != nil {
		return err
	}
	cfg := s.cfg

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	novel, err := s.src.ParseNovel(ctx, args[0])
	if err != nil {
		return err
	}

	if flagChapter == "" && flagRange == "" && flagList == "" {
		fmt.Fprintf(out, "Found %d chapters on the site.\n\n", len(novel.Chapters))
	}

	selected := chapters.Filter(novel.Chapters, flagChapter, flagRange, flagList)
	if len(selected) == 0 {
		return fmt.Errorf("no chapters selected")
	}

	outPath := filepath.Join(cfg.Output, export.OutputName(novel.Name, cfg.Format))

	if flagDryRun {
		fmt.Fprintf(out, "Dry-run: %d chapters selected, output %s\n\n", len(selected), outPath)
		for _, ch := range selected {
			fmt.Fprintf(out, "%4d) %s\n      %s\n", ch.ChapterNumber, ch.Name, s.src.ResolveURL(ch.Path))
		}
		return nil
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	stop := util.SetupInterruptHandler(outPath)
	defer stop()

	start := time.Now()
	stats := &ui.Stats{}
	exp := export.New(s.src, s.log, flagSkipBroken)

	pm := ui.NewProgressManager(os.Stderr)
	ph := pm.Register(ui.Truncate(novel.Name, 28), len(selected))
	contents, err := exp.FetchChapters(ctx, selected, cfg.ChapterWorkers, ph, stats)
	pm.Close()
	if err != nil {
		return err
	}

	switch cfg.Format {
	case "zip":
		err = export.WriteZip(novel, contents, s.src.ResolveURL(novel.Path), outPath)
	default:
		cover := ""
		if !flagNoCover && novel.Cover != "" {
			cover, err = fetchCover(cmd, s, novel.Cover)
			if err != nil {
				s.log.Errorf("Cover skipped: %v", err)
			}
			if cover != "" {
				defer func() { _ = os.RemoveAll(filepath.Dir(cover)) }()
			}
		}
		err = export.WriteEPUB(novel, contents, cover, outPath)
	}
	if err != nil {
		util.RemovePartial(outPath)
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Export Summary:")
	fmt.Fprintf(out, "File:     %s\n", outPath)
	fmt.Fprintf(out, "Chapters: %d\n", stats.Chapters.Load())
	if failed := stats.Failed.Load(); failed > 0 {
		fmt.Fprintf(out, "Skipped:  %d\n", failed)
	}
	fmt.Fprintf(out, "Data:     %s\n", humanize.Bytes(uint64(stats.Bytes.Load())))
	fmt.Fprintf(out, "Time:     %s\n", time.Since(start).Round(time.Second))
	fmt.Fprintln(out, "\nAll done.")

	return nil
}

func fetchCover(cmd *cobra.Command, s *session, url string) (string, error) {
	dir, err := os.MkdirTemp("", "novelsrc-cover-*")
	if err != nil {
		return "", err
	}

	path, err := export.DownloadCover(cmd.Context(), s.client, url, s.cfg.Site+"/", dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}

	return path, nil
}

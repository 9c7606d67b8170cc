package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/brogergvhs/novelsrc/internal/config"
	"github.com/brogergvhs/novelsrc/internal/providers"
	"github.com/brogergvhs/novelsrc/internal/providers/shanghaifantasy"

	"github.com/spf13/cobra"
)

var (
	flagPage      int
	flagStatus    string
	flagGenre     string
	flagText      bool
	flagAllFilter bool
)

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List novels from the library, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(config.Options{})
		if err != nil {
			return err
		}

		status := s.cfg.DefaultStatus
		if cmd.Flags().Changed("status") {
			status = flagStatus
		}
		term := s.cfg.DefaultTerm
		if cmd.Flags().Changed("genre") {
			term = flagGenre
		}

		values := providers.FilterValues{}
		if err := setFilter(values, shanghaifantasy.FilterStatus, status); err != nil {
			return err
		}
		if err := setFilter(values, shanghaifantasy.FilterTerm, term); err != nil {
			return err
		}

		items := s.src.PopularNovels(cmd.Context(), flagPage, values)
		return printNovelItems(cmd.OutOrStdout(), items)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search novels by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(config.Options{})
		if err != nil {
			return err
		}

		items := s.src.SearchNovels(cmd.Context(), strings.Join(args, " "), flagPage)
		return printNovelItems(cmd.OutOrStdout(), items)
	},
}

var novelCmd = &cobra.Command{
	Use:   "novel <path>",
	Short: "Show a novel's details and chapter list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(config.Options{})
		if err != nil {
			return err
		}

		n, err := s.src.ParseNovel(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return printNovel(cmd.OutOrStdout(), n, s.src.ResolveURL(n.Path), time.Now())
	},
}

var chapterCmd = &cobra.Command{
	Use:   "chapter <path>",
	Short: "Print a chapter's cleaned HTML (or plain text with --text)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(config.Options{})
		if err != nil {
			return err
		}

		body, err := s.src.ParseChapter(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if body == "" {
			return fmt.Errorf("no chapter content found at %s", s.src.ResolveURL(args[0]))
		}

		if flagText {
			body = strings.TrimSpace(shanghaifantasy.StripHTML(body))
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
		return err
	},
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the filters accepted by popular",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printFilters(cmd.OutOrStdout(), shanghaifantasy.Filters(), flagAllFilter)
	},
}

var urlCmd = &cobra.Command{
	Use:   "url <path>",
	Short: "Print the absolute URL of a site-relative path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(config.Options{})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), s.src.ResolveURL(args[0]))
		return err
	},
}

// setFilter stores the option matching in (by value or label) under key.
func setFilter(values providers.FilterValues, key, in string) error {
	if in == "" {
		return nil
	}

	for _, f := range shanghaifantasy.Filters() {
		if f.Key != key {
			continue
		}

		v, ok := f.Lookup(in)
		if !ok {
			return fmt.Errorf("unknown %s %q (see `novelsrc filters --all`)", strings.ToLower(f.Label), in)
		}
		values[key] = v
		return nil
	}

	return fmt.Errorf("unknown filter %q", key)
}

func init() {
	popularCmd.Flags().IntVar(&flagPage, "page", 1, "result page")
	popularCmd.Flags().StringVar(&flagStatus, "status", "", "novel status (value or label, see `filters`)")
	popularCmd.Flags().StringVar(&flagGenre, "genre", "", "genre/tag (value or label, see `filters`)")

	searchCmd.Flags().IntVar(&flagPage, "page", 1, "result page")

	chapterCmd.Flags().BoolVar(&flagText, "text", false, "strip markup and print plain text")

	filtersCmd.Flags().BoolVar(&flagAllFilter, "all", false, "list every option")

	rootCmd.AddCommand(popularCmd, searchCmd, novelCmd, chapterCmd, filtersCmd, urlCmd)
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/novelsrc/internal/config"

	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.ListConfigs()
		if err != nil {
			return fmt.Errorf("cannot read configs directory: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No configs yet. Run `novelsrc config init` to create one.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "\tLABEL\tSITE\tFORMAT\tPATH")

		for _, c := range list {
			mark := ""
			if c.Active {
				mark = "*"
			}

			site, format := "?", "?"
			if cfg, err := config.LoadFile(c.Path); err == nil {
				site, format = cfg.Site, cfg.Format
			} else {
				format = "invalid: " + err.Error()
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", mark, c.Label, site, format, c.Path)
		}

		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to flush table output: %v\n", err)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}

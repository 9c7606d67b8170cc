package cmd

import (
	"fmt"
	"runtime"

	"github.com/brogergvhs/novelsrc/internal/providers/shanghaifantasy"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the novelsrc and source adapter versions",
	Run: func(cmd *cobra.Command, args []string) {
		m := shanghaifantasy.New(shanghaifantasy.Options{}).Metadata()

		fmt.Println("novelsrc version:", Version)
		fmt.Printf("source: %s %s (%s, %s)\n", m.Name, m.Version, m.ID, m.Site)
		fmt.Printf("go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

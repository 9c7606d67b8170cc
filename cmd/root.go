package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/novelsrc/internal/config"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagSite         string
	flagUserAgent    string
	flagTimeout      string
	flagRPS          float64
	flagCFBypass     bool
	flagEnvFile      string
)

var rootCmd = &cobra.Command{
	Use:           "novelsrc",
	Short:         "Browse, read and export novels from Shanghai Fantasy",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagEnvFile != "" {
			return config.LoadDotEnv(flagEnvFile)
		}
		return config.LoadDotEnv()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	pf.BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	pf.StringVar(&flagSite, "site", "", "override the site origin (e.g. a mirror)")
	pf.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	pf.StringVar(&flagTimeout, "timeout", "", "HTTP timeout (e.g. 30s)")
	pf.Float64Var(&flagRPS, "rps", 0, "limit requests per second (0 = unlimited)")
	pf.BoolVar(&flagCFBypass, "cloudflare-bypass", false, "mimic a browser TLS/header fingerprint")
	pf.StringVar(&flagEnvFile, "env-file", "", "load NOVELSRC_* variables from this file instead of ./.env")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

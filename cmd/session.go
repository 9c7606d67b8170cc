package cmd

import (
	"net/http"

	"github.com/brogergvhs/novelsrc/internal/config"
	"github.com/brogergvhs/novelsrc/internal/providers/shanghaifantasy"
	"github.com/brogergvhs/novelsrc/internal/ui"
	"github.com/brogergvhs/novelsrc/internal/util"
)

// session bundles what every network command needs: the merged config,
// a logger, the shared HTTP client and the source adapter.
type session struct {
	cfg    *config.Config
	used   string
	log    *ui.Logger
	client *http.Client
	src    *shanghaifantasy.Source
}

func newSession(opts config.Options) (*session, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Debug = flagDebug
	opts.Site = flagSite
	opts.UserAgent = flagUserAgent
	opts.Timeout = flagTimeout
	opts.RequestsPerSecond = flagRPS
	opts.CloudflareBypass = flagCFBypass

	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	log := ui.NewLogger(cfg.Debug)
	log.Debugf("Config file: %s", used)

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:           timeout,
		UserAgent:         util.PickUserAgent(cfg.UserAgent),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		CloudflareBypass:  cfg.CloudflareBypass,
		DebugLogger:       log,
	})
	if err != nil {
		return nil, err
	}

	src := shanghaifantasy.New(shanghaifantasy.Options{
		Site:         cfg.Site,
		DefaultCover: cfg.DefaultCover,
		UserAgent:    cfg.UserAgent,
		Client:       client,
		Logger:       log,
	})

	return &session{cfg: cfg, used: used, log: log, client: client, src: src}, nil
}

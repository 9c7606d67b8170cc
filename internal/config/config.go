package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "NOVELSRC_"

type Config struct {
	Site         string `yaml:"site"`
	DefaultCover string `yaml:"default_cover"`
	UserAgent    string `yaml:"user_agent"`
	Timeout      string `yaml:"timeout"`

	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	CloudflareBypass  bool    `yaml:"cloudflare_bypass"`

	Debug          bool   `yaml:"debug"`
	Output         string `yaml:"output"`
	Format         string `yaml:"format"`
	ChapterWorkers int    `yaml:"chapter_workers"`

	DefaultStatus string `yaml:"default_status"`
	DefaultTerm   string `yaml:"default_term"`
}

type Options struct {
	IgnoreConfig      bool
	Debug             bool
	Site              string
	UserAgent         string
	Timeout           string
	RequestsPerSecond float64
	CloudflareBypass  bool
	Output            string
	Format            string
	ChapterWorkers    int
}

func DefaultConfig() *Config {
	return &Config{
		Site:              "https://shanghaifantasy.com",
		DefaultCover:      "",
		UserAgent:         "",
		Timeout:           "30s",
		RequestsPerSecond: 0,
		Burst:             1,
		CloudflareBypass:  false,
		Debug:             false,
		Output:            ".",
		Format:            "epub",
		ChapterWorkers:    2,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadFile reads a profile on top of the defaults.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged layers defaults, the active profile, NOVELSRC_* environment
// variables and finally opts. The returned string names the profile used.
func LoadMerged(opts Options) (*Config, string, error) {
	var (
		cfg  *Config
		used string
	)

	if opts.IgnoreConfig {
		cfg, used = DefaultConfig(), "(ignored config)"
	} else {
		activePath, err := ActiveConfigPath()
		switch {
		case errors.Is(err, ErrNoConfig) || (err == nil && activePath == ""):
			cfg, used = DefaultConfig(), "(default config in memory)"
		case err != nil:
			return nil, "", err
		default:
			cfg, err = LoadFile(activePath)
			if err != nil {
				return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
			}
			used = activePath
		}
	}

	if err := mergeEnv(cfg, os.LookupEnv); err != nil {
		return nil, "", err
	}
	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return cfg, used, nil
}

// LoadDotEnv loads NOVELSRC_* variables from .env files into the process
// environment. Missing files are not an error; already-set variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}

	return nil
}

func mergeEnv(c *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}

	str("SITE", &c.Site)
	str("DEFAULT_COVER", &c.DefaultCover)
	str("USER_AGENT", &c.UserAgent)
	str("TIMEOUT", &c.Timeout)
	str("OUTPUT", &c.Output)
	str("FORMAT", &c.Format)
	str("DEFAULT_STATUS", &c.DefaultStatus)
	str("DEFAULT_TERM", &c.DefaultTerm)

	if v, ok := lookup(envPrefix + "REQUESTS_PER_SECOND"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sREQUESTS_PER_SECOND: %w", envPrefix, err)
		}
		c.RequestsPerSecond = f
	}
	if v, ok := lookup(envPrefix + "BURST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sBURST: %w", envPrefix, err)
		}
		c.Burst = n
	}
	if v, ok := lookup(envPrefix + "CHAPTER_WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCHAPTER_WORKERS: %w", envPrefix, err)
		}
		c.ChapterWorkers = n
	}
	if v, ok := lookup(envPrefix + "CLOUDFLARE_BYPASS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCLOUDFLARE_BYPASS: %w", envPrefix, err)
		}
		c.CloudflareBypass = b
	}
	if v, ok := lookup(envPrefix + "DEBUG"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEBUG: %w", envPrefix, err)
		}
		c.Debug = b
	}

	return nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Site != "" {
		c.Site = o.Site
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Timeout != "" {
		c.Timeout = o.Timeout
	}
	if o.RequestsPerSecond != 0 {
		c.RequestsPerSecond = o.RequestsPerSecond
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.ChapterWorkers != 0 {
		c.ChapterWorkers = o.ChapterWorkers
	}
}

func normalizeDefaults(c *Config) {
	c.Site = strings.TrimRight(c.Site, "/")
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))

	if c.Site == "" {
		c.Site = "https://shanghaifantasy.com"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.Output == "" {
		c.Output = "."
	}
	if c.Format == "" {
		c.Format = "epub"
	}
	if c.ChapterWorkers == 0 {
		c.ChapterWorkers = 2
	}
	if c.Burst == 0 {
		c.Burst = 1
	}
}

func (c *Config) Validate() error {
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.ChapterWorkers < 1 {
		return fmt.Errorf("chapter_workers must be at least 1, got %d", c.ChapterWorkers)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	if c.Format != "epub" && c.Format != "zip" {
		return fmt.Errorf("unknown export format %q (want epub or zip)", c.Format)
	}

	return nil
}

func (c *Config) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}

	return d, nil
}

func (c *Config) Print() {
	fmt.Printf(" -site: %s\n", c.Site)
	fmt.Printf(" -timeout: %s\n", c.Timeout)
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.DefaultCover != "" {
		fmt.Printf(" -default_cover: %s\n", c.DefaultCover)
	}
	if c.RequestsPerSecond > 0 {
		fmt.Printf(" -requests_per_second: %g (burst %d)\n", c.RequestsPerSecond, c.Burst)
	}
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	fmt.Printf(" -output: %s\n", c.Output)
	fmt.Printf(" -format: %s\n", c.Format)
	fmt.Printf(" -chapter_workers: %d\n", c.ChapterWorkers)
	if c.DefaultStatus != "" {
		fmt.Printf(" -default_status: %s\n", c.DefaultStatus)
	}
	if c.DefaultTerm != "" {
		fmt.Printf(" -default_term: %s\n", c.DefaultTerm)
	}
}

// Package config loads the YAML configuration for a scrape run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/edison-soccer/internal/aggregator"
	"github.com/pfrederiksen/edison-soccer/internal/logger"
	"github.com/pfrederiksen/edison-soccer/internal/scraper"
	"github.com/pfrederiksen/edison-soccer/internal/team"
	"gopkg.in/yaml.v3"
)

var seasonPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// Config captures everything needed to run one aggregation and serve it
type Config struct {
	CurrentSeason  string   `yaml:"current_season"`
	PreviousSeason string   `yaml:"previous_season"`
	URLs           URLs     `yaml:"urls"`
	UserAgent      string   `yaml:"user_agent"`
	Timeout        Duration `yaml:"timeout"`
	Coach          string   `yaml:"coach"`
	LogLevel       string   `yaml:"log_level"`
	ListenAddr     string   `yaml:"listen_addr"`
}

// URLs holds the page templates. Each must contain the {season} placeholder.
type URLs struct {
	Stats    string `yaml:"stats"`
	Fixtures string `yaml:"fixtures"`
	Roster   string `yaml:"roster"`
}

// Default returns a Config pointing at the Edison boys soccer pages
func Default() Config {
	pages := scraper.DefaultPages()
	return Config{
		CurrentSeason:  aggregator.DefaultCurrentSeason,
		PreviousSeason: aggregator.DefaultPreviousSeason,
		URLs: URLs{
			Stats:    pages.Stats,
			Fixtures: pages.Fixtures,
			Roster:   pages.Roster,
		},
		UserAgent:  scraper.UserAgent,
		Coach:      team.DefaultCoach,
		LogLevel:   string(logger.LevelInfo),
		ListenAddr: ":8080",
	}
}

// Load reads, merges, and validates configuration from a YAML file
func Load(path string) (*Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer fh.Close()

	return LoadFromReader(fh)
}

// LoadFromReader decodes configuration from an arbitrary reader
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decodeYAML(r, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalise()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Validate checks season labels, URL templates and the log level
func (c Config) Validate() error {
	if err := ValidateSeason(c.CurrentSeason); err != nil {
		return fmt.Errorf("current_season: %w", err)
	}
	if err := ValidateSeason(c.PreviousSeason); err != nil {
		return fmt.Errorf("previous_season: %w", err)
	}

	templates := []struct {
		key string
		url string
	}{
		{"urls.stats", c.URLs.Stats},
		{"urls.fixtures", c.URLs.Fixtures},
		{"urls.roster", c.URLs.Roster},
	}
	for _, tpl := range templates {
		if tpl.url == "" {
			return fmt.Errorf("%s must be set", tpl.key)
		}
		if !strings.Contains(tpl.url, scraper.SeasonPlaceholder) {
			return fmt.Errorf("%s must contain %s (got %q)", tpl.key, scraper.SeasonPlaceholder, tpl.url)
		}
	}

	if c.UserAgent == "" {
		return errors.New("user_agent must be set")
	}
	if c.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", c.Timeout)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// ValidateSeason checks a season label such as "2025-2026". The second year
// must follow the first.
func ValidateSeason(season string) error {
	m := seasonPattern.FindStringSubmatch(season)
	if m == nil {
		return fmt.Errorf("invalid season %q: want YYYY-YYYY", season)
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	if second != first+1 {
		return fmt.Errorf("invalid season %q: years must be consecutive", season)
	}
	return nil
}

// Normalise trims whitespace that YAML or flags may leave around values
func (c *Config) Normalise() {
	c.CurrentSeason = strings.TrimSpace(c.CurrentSeason)
	c.PreviousSeason = strings.TrimSpace(c.PreviousSeason)
	c.URLs.Stats = strings.TrimSpace(c.URLs.Stats)
	c.URLs.Fixtures = strings.TrimSpace(c.URLs.Fixtures)
	c.URLs.Roster = strings.TrimSpace(c.URLs.Roster)
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	c.Coach = strings.TrimSpace(c.Coach)
	if c.Coach == "" {
		c.Coach = team.DefaultCoach
	}
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
}

// Pages returns the URL templates in the form the scraper takes
func (c Config) Pages() scraper.Pages {
	return scraper.Pages{
		Stats:    c.URLs.Stats,
		Fixtures: c.URLs.Fixtures,
		Roster:   c.URLs.Roster,
	}
}

// FetchOptions returns the fetcher settings
func (c Config) FetchOptions() scraper.FetchOptions {
	return scraper.FetchOptions{
		UserAgent: c.UserAgent,
		Timeout:   c.Timeout.Duration,
	}
}

// Duration wraps time.Duration to support human-readable YAML values
type Duration struct {
	time.Duration
}

// DurationFrom creates a Duration from a standard time.Duration
func DurationFrom(d time.Duration) Duration {
	return Duration{Duration: d}
}

// MarshalYAML emits the duration as a string
func (d Duration) MarshalYAML() (any, error) {
	return d.Duration.String(), nil
}

// UnmarshalYAML accepts either a string duration or numeric seconds
func (d *Duration) UnmarshalYAML(value func(any) error) error {
	var raw any
	if err := value(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		if v == "" {
			d.Duration = 0
			return nil
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		d.Duration = parsed
		return nil
	case int:
		d.Duration = time.Duration(v) * time.Second
		return nil
	case float64:
		d.Duration = time.Duration(v * float64(time.Second))
		return nil
	default:
		return fmt.Errorf("unsupported duration type %T", raw)
	}
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// ErrInvalid marks a config file that parsed but describes an unusable setup.
var ErrInvalid = errors.New("invalid config")

// Theater is one page to scrape.
type Theater struct {
	Name string
	Area string
	URL  string
}

// Config captures everything marquee needs to collect and show schedules.
type Config struct {
	Theaters         []Theater
	IgnoreHeadings   []string
	SkipTableMarkers []string
	UserAgent        string
	RequestTimeout   time.Duration
	RequestDelay     time.Duration
	CacheTTL         time.Duration
	PollInterval     time.Duration
}

const (
	appName = "marquee"

	defaultUserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultRequestTimeout = 30 * time.Second
	defaultRequestDelay   = time.Second
	defaultCacheTTL       = time.Hour
	defaultPollInterval   = time.Minute
)

var defaultTheaters = []Theater{
	{Name: "シアタス調布", Area: "調布", URL: "https://eiga.com/theater/13/130811/3275/"},
	{Name: "TOHOシネマズ府中", Area: "府中", URL: "https://eiga.com/theater/13/130803/3104/"},
	{Name: "シネマシティ", Area: "立川", URL: "https://eiga.com/theater/13/130802/3101/"},
	{Name: "TOHOシネマズ立川立飛", Area: "立川", URL: "https://eiga.com/theater/13/130802/3309/"},
	{Name: "吉祥寺オデヲン", Area: "吉祥寺", URL: "https://eiga.com/theater/13/130809/3109/"},
	{Name: "アップリンク吉祥寺", Area: "吉祥寺", URL: "https://eiga.com/theater/13/130809/3285/"},
}

// Headings on eiga.com theater pages that are not movie titles.
var defaultIgnoreHeadings = []string{
	"イオンシネマ シアタス調布",
	"TOHOシネマズ府中",
	"シネマシティ",
	"TOHOシネマズ立川立飛",
	"吉祥寺オデヲン",
	"アップリンク吉祥寺",
	"映画.com注目特集",
	"国内映画ランキング",
	"おすすめ情報",
	"特別企画",
	"注目作品ランキング",
}

var defaultSkipTableMarkers = []string{"住所", "電話番号"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theaters:         slices.Clone(defaultTheaters),
		IgnoreHeadings:   slices.Clone(defaultIgnoreHeadings),
		SkipTableMarkers: slices.Clone(defaultSkipTableMarkers),
		UserAgent:        defaultUserAgent,
		RequestTimeout:   defaultRequestTimeout,
		RequestDelay:     defaultRequestDelay,
		CacheTTL:         defaultCacheTTL,
		PollInterval:     defaultPollInterval,
	}
}

// DefaultPath returns the config location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

type rawTheater struct {
	Name string `toml:"name"`
	Area string `toml:"area"`
	URL  string `toml:"url"`
}

type rawConfig struct {
	UserAgent        string       `toml:"user_agent"`
	RequestTimeout   string       `toml:"request_timeout"`
	RequestDelay     string       `toml:"request_delay"`
	CacheTTL         string       `toml:"cache_ttl"`
	PollInterval     string       `toml:"poll_interval"`
	IgnoreHeadings   []string     `toml:"ignore_headings"`
	SkipTableMarkers []string     `toml:"skip_table_markers"`
	Theaters         []rawTheater `toml:"theaters"`
}

// Load locates and parses the marquee config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if ua := strings.TrimSpace(raw.UserAgent); ua != "" {
		cfg.UserAgent = ua
	}

	durations := []struct {
		key   string
		value string
		dest  *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"request_delay", raw.RequestDelay, &cfg.RequestDelay},
		{"cache_ttl", raw.CacheTTL, &cfg.CacheTTL},
		{"poll_interval", raw.PollInterval, &cfg.PollInterval},
	}
	for _, d := range durations {
		if strings.TrimSpace(d.value) == "" {
			continue
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(d.value))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, d.key, err)
		}
		if parsed < 0 {
			return Config{}, fmt.Errorf("%w: %s must not be negative", ErrInvalid, d.key)
		}
		*d.dest = parsed
	}

	if raw.IgnoreHeadings != nil {
		cfg.IgnoreHeadings = trimAll(raw.IgnoreHeadings)
	}
	if raw.SkipTableMarkers != nil {
		cfg.SkipTableMarkers = trimAll(raw.SkipTableMarkers)
	}

	if len(raw.Theaters) > 0 {
		theaters, err := buildTheaters(raw.Theaters)
		if err != nil {
			return Config{}, err
		}
		cfg.Theaters = theaters
	}

	return cfg, nil
}

func buildTheaters(raw []rawTheater) ([]Theater, error) {
	seen := make(map[string]struct{}, len(raw))
	theaters := make([]Theater, 0, len(raw))
	for i, r := range raw {
		name := strings.TrimSpace(r.Name)
		url := strings.TrimSpace(r.URL)
		if name == "" {
			return nil, fmt.Errorf("%w: theaters[%d]: name is empty", ErrInvalid, i)
		}
		if url == "" {
			return nil, fmt.Errorf("%w: theater %q: url is empty", ErrInvalid, name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: theater %q listed twice", ErrInvalid, name)
		}
		seen[name] = struct{}{}

		area := strings.TrimSpace(r.Area)
		if area == "" {
			area = name
		}
		theaters = append(theaters, Theater{Name: name, Area: area, URL: url})
	}
	return theaters, nil
}

// Areas returns the distinct theater areas in the order they first appear.
func (c Config) Areas() []string {
	var areas []string
	for _, t := range c.Theaters {
		if !slices.Contains(areas, t.Area) {
			areas = append(areas, t.Area)
		}
	}
	return areas
}

// TheatersIn returns the theaters in an area, in config order.
func (c Config) TheatersIn(area string) []Theater {
	var out []Theater
	for _, t := range c.Theaters {
		if t.Area == area {
			out = append(out, t)
		}
	}
	return out
}

// Ignored reports whether a page heading is not a movie title.
func (c Config) Ignored(heading string) bool {
	heading = strings.TrimSpace(heading)
	if heading == "" {
		return true
	}
	return slices.Contains(c.IgnoreHeadings, heading)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return ExpandPath(path)
}

// ExpandPath expands a leading ~ to the home directory and makes the path
// absolute.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

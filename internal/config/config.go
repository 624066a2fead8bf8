// Package config loads and validates the binder configuration.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/binder/internal/common"
	"github.com/Veraticus/binder/internal/model"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyToken             = "ct_token"
	KeyThreshold         = "price_cents_threshold"
	KeyColors            = "colors"
	KeyGameID            = "game_id"
	KeyBaseURL           = "api.base_url"
	KeyTimeout           = "api.timeout"
	KeyRequestsPerMinute = "api.requests_per_minute"
	KeyConcurrency       = "resolve.concurrency"
	KeyCachePath         = "cache.path"
	KeyLogLevel          = "logging.level"
	KeyLogFormat         = "logging.format"
	KeyOutput            = "output"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// DefaultGameID is the vendor's identifier for Magic: The Gathering.
const DefaultGameID = 1

// APIConfig holds vendor transport settings.
type APIConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Config is the validated, read-only configuration for one run.
type Config struct {
	Token     string
	CachePath string
	Output    string
	// Categories are the enabled report buckets, in report order.
	Categories          []model.Category
	API                 APIConfig
	PriceThresholdCents int64
	GameID              int
	Concurrency         int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyThreshold, 0)
	var codes []string
	for _, cat := range model.Categories() {
		codes = append(codes, cat.Code)
	}
	v.SetDefault(KeyColors, codes)
	v.SetDefault(KeyGameID, DefaultGameID)
	v.SetDefault(KeyBaseURL, "https://api.cardtrader.com/api/v2")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyRequestsPerMinute, 0)
	v.SetDefault(KeyConcurrency, 1)
	v.SetDefault(KeyCachePath, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyOutput, OutputTable)
}

// Load builds a Config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cats, err := ParseCategories(v.GetStringSlice(KeyColors))
	if err != nil {
		return nil, err
	}

	threshold, err := thresholdCents(v.Get(KeyThreshold))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Token:               strings.TrimSpace(v.GetString(KeyToken)),
		PriceThresholdCents: threshold,
		Categories:          cats,
		GameID:              v.GetInt(KeyGameID),
		Concurrency:         v.GetInt(KeyConcurrency),
		CachePath:           ExpandPath(v.GetString(KeyCachePath)),
		Output:              strings.ToLower(v.GetString(KeyOutput)),
		API: APIConfig{
			BaseURL:           strings.TrimRight(v.GetString(KeyBaseURL), "/"),
			Timeout:           v.GetDuration(KeyTimeout),
			RequestsPerMinute: v.GetInt(KeyRequestsPerMinute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants of a loaded configuration.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyToken)
	}
	if c.PriceThresholdCents < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %d", common.ErrInvalidConfig, KeyThreshold, c.PriceThresholdCents)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyColors)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: %s must be at least 1", common.ErrInvalidConfig, KeyConcurrency)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyBaseURL)
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: %s %q", common.ErrInvalidConfig, KeyOutput, c.Output)
	}
	return nil
}

var decimalCents = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

// thresholdCents reads the threshold strictly: whole cents only, so a typo
// cannot silently become a zero threshold.
func thresholdCents(raw any) (int64, error) {
	switch n := raw.(type) {
	case nil:
		return 0, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %s must be whole cents, got %v", common.ErrInvalidConfig, KeyThreshold, n)
		}
	case string:
		n = strings.TrimSpace(n)
		if !decimalCents.MatchString(n) {
			return 0, fmt.Errorf("%w: %s must be whole cents, got %q", common.ErrInvalidConfig, KeyThreshold, n)
		}
		raw = n
	}

	cents, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, KeyThreshold, err)
	}
	return cents, nil
}

// ParseCategories turns configured color codes into categories. Entries may
// be comma separated. The result follows the canonical category order, not
// the order the codes were listed in, and contains each category once.
func ParseCategories(codes []string) ([]model.Category, error) {
	enabled := make(map[string]bool)
	for _, entry := range codes {
		for _, code := range strings.Split(entry, ",") {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			cat, ok := model.CategoryByCode(code)
			if !ok {
				return nil, fmt.Errorf("%w: unknown color code %q", common.ErrInvalidConfig, code)
			}
			enabled[cat.Code] = true
		}
	}

	var cats []model.Category
	for _, cat := range model.Categories() {
		if enabled[cat.Code] {
			cats = append(cats, cat)
		}
	}
	return cats, nil
}

// ExpandPath expands a leading ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

package config

import (
	"fmt"
	"strings"

	"github.com/cours-de-latin/scansion"
)

// Validate checks the loaded values. Load calls it automatically.
func (c *Config) Validate() error {
	if _, err := scansion.LookupForm(c.Scan.Meter); err != nil {
		return fmt.Errorf("scan.meter: %w", err)
	}
	if c.Scan.MaxPasses <= 0 {
		return fmt.Errorf("scan.max_passes must be > 0 (got %d)", c.Scan.MaxPasses)
	}
	if c.Scan.Alpha <= 0 {
		return fmt.Errorf("scan.alpha must be > 0 (got %v)", c.Scan.Alpha)
	}
	if c.Scan.MaxHypotheses <= 0 {
		return fmt.Errorf("scan.max_hypotheses must be > 0 (got %d)", c.Scan.MaxHypotheses)
	}
	if c.Dictionary.CacheSize <= 0 {
		return fmt.Errorf("dictionary.cache_size must be > 0 (got %d)", c.Dictionary.CacheSize)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}

// Origins splits AllowedOrigins on commas.
func (c ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ScanOptions turns the scan section into scanner options.
func (c ScanConfig) ScanOptions() (scansion.Options, error) {
	form, err := scansion.LookupForm(c.Meter)
	if err != nil {
		return scansion.Options{}, err
	}
	return scansion.Options{
		Form:          form,
		MaxPasses:     c.MaxPasses,
		Alpha:         c.Alpha,
		MaxHypotheses: c.MaxHypotheses,
		Normalizer:    scansion.LineNormalizer{SplitPrefixes: c.SplitPrefixes},
	}, nil
}

package config

// Config is the root configuration of the scansion binaries.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Scan       ScanConfig       `yaml:"scan"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Server     ServerConfig     `yaml:"server"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// ScanConfig holds the refinement settings.
type ScanConfig struct {
	Meter         string  `yaml:"meter"          env:"SCAN_METER"          env-default:"hexameter"`
	MaxPasses     int     `yaml:"max_passes"     env:"SCAN_MAX_PASSES"     env-default:"200"`
	Alpha         float64 `yaml:"alpha"          env:"SCAN_ALPHA"          env-default:"1"`
	SplitPrefixes bool    `yaml:"split_prefixes" env:"SCAN_SPLIT_PREFIXES" env-default:"false"`
	MaxHypotheses int     `yaml:"max_hypotheses" env:"SCAN_MAX_HYPOTHESES" env-default:"1024"`
}

// DictionaryConfig points at the Collatinus data files. An empty DataDir
// disables the dictionary.
type DictionaryConfig struct {
	DataDir   string `yaml:"data_dir"   env:"DICTIONARY_DATA_DIR"`
	CacheSize int    `yaml:"cache_size" env:"DICTIONARY_CACHE_SIZE" env-default:"4096"`
}

// Enabled reports whether a dictionary is configured.
func (c DictionaryConfig) Enabled() bool { return c.DataDir != "" }

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string `yaml:"addr"            env:"SERVER_ADDR"            env-default:":8080"`
	AllowedOrigins string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS" env-default:"*"`
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/tankbeurt-splitter/internal/logging"
)

// DefaultPath is read when no path is given and CONFIG_PATH is unset.
// A missing default file is not an error.
const DefaultPath = "tankbeurt.yaml"

// Config is the service and CLI configuration.
type Config struct {
	// Web server
	Listen      string `yaml:"listen"`
	StaticDir   string `yaml:"static_dir"`
	MaxUploadMB int    `yaml:"max_upload_mb"`

	OCR OCRConfig      `yaml:"ocr"`
	Log logging.Config `yaml:"log"`
}

// OCRConfig tunes the tesseract invocation.
type OCRConfig struct {
	Lang string `yaml:"lang"`
	PSM  int    `yaml:"psm"`
	DPI  int    `yaml:"dpi"`
}

// Load reads .env (if present), then the YAML file, then applies
// TANKBEURT_* environment overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	envOverride(&cfg.Listen, "TANKBEURT_LISTEN")
	envOverride(&cfg.StaticDir, "TANKBEURT_STATIC_DIR")
	envOverride(&cfg.OCR.Lang, "TANKBEURT_OCR_LANG")
	envOverride(&cfg.Log.Level, "TANKBEURT_LOG_LEVEL")
	envOverride(&cfg.Log.Format, "TANKBEURT_LOG_FORMAT")
	if err := envOverrideInt(&cfg.MaxUploadMB, "TANKBEURT_MAX_UPLOAD_MB"); err != nil {
		return nil, err
	}
	if err := envOverrideInt(&cfg.OCR.PSM, "TANKBEURT_OCR_PSM"); err != nil {
		return nil, err
	}
	if err := envOverrideInt(&cfg.OCR.DPI, "TANKBEURT_OCR_DPI"); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 16
	}
	if c.OCR.Lang == "" {
		c.OCR.Lang = "nld+eng"
	}
	if c.OCR.PSM <= 0 {
		// single uniform block of text
		c.OCR.PSM = 6
	}
	if c.OCR.DPI <= 0 {
		c.OCR.DPI = 300
	}
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	*dst = n
	return nil
}

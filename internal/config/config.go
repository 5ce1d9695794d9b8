package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr                  string `yaml:"addr"`
	ModelPath             string `yaml:"model_path"`
	ModelName             string `yaml:"model_name"`
	ModelsDir             string `yaml:"models_dir"`
	Language              string `yaml:"language"`
	ResourceDir           string `yaml:"resource_dir"`
	TranslationBaseURL    string `yaml:"translation_base_url"`
	TranslationTimeoutSec int    `yaml:"translation_timeout"`
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load builds the configuration from environment variables, optionally
// overlaid by a YAML file named in SPEECHBRIDGE_CONFIG. File values win over
// environment values.
func Load() Config {
	cfg := Config{
		Addr:                  getenv("SPEECHBRIDGE_ADDR", ":8080"),
		ModelPath:             getenv("SPEECHBRIDGE_MODEL_PATH", ""),
		ModelName:             getenv("SPEECHBRIDGE_MODEL_NAME", "base"),
		ModelsDir:             getenv("SPEECHBRIDGE_MODELS_DIR", "./models"),
		Language:              getenv("SPEECHBRIDGE_LANGUAGE", ""),
		ResourceDir:           getenv("SPEECHBRIDGE_RESOURCE_DIR", "./resources"),
		TranslationBaseURL:    getenv("TRANSLATION_BASE_URL", "https://libretranslate.obiente.cloud"),
		TranslationTimeoutSec: getenvInt("TRANSLATION_TIMEOUT", 8),
	}
	if path := os.Getenv("SPEECHBRIDGE_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
		}
	}
	return cfg
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

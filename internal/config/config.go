package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/chriserin/specdraw/internal/llm"
)

// Config holds the resolved settings for a specdraw run.
type Config struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" yaml:"gemini_api_key"`
	Model        string `mapstructure:"model" yaml:"model"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	DebugMode    bool   `mapstructure:"debug_mode" yaml:"debug_mode"`
	Port         int    `mapstructure:"port" yaml:"port"`
	DBPath       string `mapstructure:"db_path" yaml:"db_path"`
	PromptsDir   string `mapstructure:"prompts_dir" yaml:"prompts_dir"`
}

// Status is the redacted view of Config served at /config/status.
type Status struct {
	GeminiAPI bool   `json:"gemini_api"`
	Model     string `json:"model"`
	DebugMode bool   `json:"debug_mode"`
	LogLevel  string `json:"log_level"`
}

func (c Config) Status() Status {
	return Status{
		GeminiAPI: c.GeminiAPIKey != "",
		Model:     c.Model,
		DebugMode: c.DebugMode,
		LogLevel:  c.LogLevel,
	}
}

// DefaultFile is the config file name searched for in the working directory.
const DefaultFile = "specdraw.yaml"

func Defaults() Config {
	return Config{
		Model:    llm.DefaultModel,
		LogLevel: "info",
		Port:     8000,
		DBPath:   "specdraw.db",
	}
}

// bare environment names honoured alongside the SPECDRAW_ prefix
var bareEnv = map[string]string{
	"gemini_api_key": "GEMINI_API_KEY",
	"log_level":      "LOG_LEVEL",
	"debug_mode":     "DEBUG_MODE",
	"port":           "PORT",
}

// Load reads .env, the optional YAML config file and the environment.
// Precedence is SPECDRAW_* env, then bare env names, then the file, then defaults.
func Load(cfgFile string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("specdraw")
	}

	v.SetEnvPrefix("SPECDRAW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("gemini_api_key", d.GeminiAPIKey)
	v.SetDefault("model", d.Model)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("debug_mode", d.DebugMode)
	v.SetDefault("port", d.Port)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("prompts_dir", d.PromptsDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	for key, name := range bareEnv {
		if _, set := os.LookupEnv("SPECDRAW_" + strings.ToUpper(key)); set {
			continue
		}
		if val, ok := os.LookupEnv(name); ok {
			v.Set(key, val)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.DebugMode {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

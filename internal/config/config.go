package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Export     ExportConfig     `mapstructure:"export"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"`
}

// DictionaryConfig points at the keyword workbook. Source may be a local
// path or an http(s) URL.
type DictionaryConfig struct {
	Source               string `mapstructure:"source"`
	Level2Sheet          string `mapstructure:"level2_sheet"`
	Level1Sheet          string `mapstructure:"level1_sheet"`
	FetchTimeout         int    `mapstructure:"fetch_timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// ExportConfig holds CSV export settings
type ExportConfig struct {
	Dir      string `mapstructure:"dir"`
	Encoding string `mapstructure:"encoding"` // utf-8 or windows-1251
}

// PipelineConfig tunes the classification transform and its workers
type PipelineConfig struct {
	MaxWorkers      int  `mapstructure:"max_workers"`
	MaxDepth        int  `mapstructure:"max_depth"`
	CaseInsensitive bool `mapstructure:"case_insensitive"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config.yaml file not found in current directory")
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "wbs")
	viper.SetDefault("database.user", "wbs_user")
	viper.SetDefault("database.password", "wbs_pass")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
	viper.SetDefault("redis.consumer_group", "wbsclass_consumer")
	viper.SetDefault("redis.min_idle_time", 120)

	viper.SetDefault("dictionary.source", "./dictionary.xlsx")
	viper.SetDefault("dictionary.level2_sheet", "Level2")
	viper.SetDefault("dictionary.level1_sheet", "Level1")
	viper.SetDefault("dictionary.fetch_timeout", 30)
	viper.SetDefault("dictionary.max_requests_per_second", 2)

	viper.SetDefault("export.dir", "./out")
	viper.SetDefault("export.encoding", "utf-8")

	viper.SetDefault("pipeline.max_workers", 10)
	viper.SetDefault("pipeline.max_depth", 3)
	viper.SetDefault("pipeline.case_insensitive", true)
}

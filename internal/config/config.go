package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds the full service configuration.
type Config struct {
	Server ServerConfig  `json:"server" yaml:"server"`
	App    AppConfig     `json:"app" yaml:"app"`
	Blob   BlobConfig    `json:"blob" yaml:"blob"`
	Redis  RedisConfig   `json:"redis" yaml:"redis"`
	Auth   AuthConfig    `json:"auth" yaml:"auth"`
	Logger logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type AppConfig struct {
	NodeID          int64 `json:"node_id" yaml:"node_id"`
	ChunkSize       int64 `json:"chunk_size" yaml:"chunk_size"`
	MaxFileSize     int64 `json:"max_file_size" yaml:"max_file_size"`
	DefaultPageSize int   `json:"default_page_size" yaml:"default_page_size"`
	MaxPageSize     int   `json:"max_page_size" yaml:"max_page_size"`
	// JanitorIntervalSec controls the orphan-chunk sweep period. Zero
	// disables the janitor.
	JanitorIntervalSec int `json:"janitor_interval_sec" yaml:"janitor_interval_sec"`
}

type BlobConfig struct {
	DataDir             string `json:"data_dir" yaml:"data_dir"`
	FSync               bool   `json:"fsync" yaml:"fsync"`
	CompactionThreshold int    `json:"compaction_threshold" yaml:"compaction_threshold"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type AuthConfig struct {
	Secret string `json:"secret" yaml:"secret"`
	Issuer string `json:"issuer" yaml:"issuer"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8090",
		},
		App: AppConfig{
			NodeID:             1,
			ChunkSize:          512 * 1024,             // 512KB
			MaxFileSize:        2 * 1024 * 1024 * 1024, // 2GB
			DefaultPageSize:    10,
			MaxPageSize:        100,
			JanitorIntervalSec: 300,
		},
		Blob: BlobConfig{
			DataDir: "./data",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Auth: AuthConfig{
			Issuer: "docvault",
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

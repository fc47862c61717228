package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Log         LogConfig         `mapstructure:"log"`
	Chat        ChatConfig        `mapstructure:"chat"`
	Session     SessionConfig     `mapstructure:"session"`
	Drawing     DrawingConfig     `mapstructure:"drawing"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Counters    CountersConfig    `mapstructure:"counters"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	Speech      SpeechConfig      `mapstructure:"speech"`
	MCP         MCPConfig         `mapstructure:"mcp"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type ChatConfig struct {
	// Cosmetic pause before the assistant answers.
	ReplyDelay time.Duration `mapstructure:"reply_delay" validate:"min=0"`
}

// SessionConfig controls expiry of idle chat sessions. A zero TTL keeps sessions forever.
type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl" validate:"min=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"required_with=TTL"`
}

type DrawingConfig struct {
	AnalysisDelay  time.Duration `mapstructure:"analysis_delay" validate:"min=0"`
	MaxWidth       int           `mapstructure:"max_width" validate:"min=1"`
	MaxHeight      int           `mapstructure:"max_height" validate:"min=1"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" validate:"min=1"`
}

type StorageConfig struct {
	Type      string `mapstructure:"type" validate:"oneof=memory disk"`
	DataDir   string `mapstructure:"data_dir" validate:"required_if=Type disk"`
	CacheSize int    `mapstructure:"cache_size" validate:"min=1"`

	BackupInterval time.Duration `mapstructure:"backup_interval" validate:"min=0"`
}

type CountersConfig struct {
	Type string `mapstructure:"type" validate:"oneof=memory sqlite"`
	Path string `mapstructure:"path" validate:"required_if=Type sqlite"`
}

type LeaderboardConfig struct {
	Size int `mapstructure:"size" validate:"min=1,max=100"`
}

type SpeechConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type MCPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BasePath string `mapstructure:"base_path" validate:"required_if=Enabled true"`
}

var cfg *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_header_bytes", 1<<20)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "X-User-ID", "X-User-Name", "X-User-Photo"})
	v.SetDefault("cors.exposed_headers", []string{})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 3600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("chat.reply_delay", "500ms")

	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cleanup_interval", "1h")

	v.SetDefault("drawing.analysis_delay", "1500ms")
	v.SetDefault("drawing.max_width", 600)
	v.SetDefault("drawing.max_height", 400)
	v.SetDefault("drawing.max_upload_bytes", 10<<20)

	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.data_dir", "./data/chat")
	v.SetDefault("storage.cache_size", 100)
	v.SetDefault("storage.backup_interval", "6h")

	v.SetDefault("counters.type", "memory")
	v.SetDefault("counters.path", "./data/nuggetube.db")

	v.SetDefault("leaderboard.size", 10)

	v.SetDefault("speech.enabled", true)

	v.SetDefault("mcp.enabled", false)
	v.SetDefault("mcp.base_path", "/mcp")
}

// Load reads the YAML file at configPath when it exists, applies NUGGET_* environment
// overrides (NUGGET_SERVER_PORT and so on) and validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("NUGGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, oops.Errorf("failed to read config file %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, oops.Errorf("failed to stat config file %s: %w", configPath, err)
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return nil, oops.Errorf("failed to decode config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(loaded); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	cfg = loaded
	return cfg, nil
}

func Get() *Config {
	return cfg
}

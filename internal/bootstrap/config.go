package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"shogi/internal/engine"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	RPC     RPCConfig     `mapstructure:"rpc"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Store   StoreConfig   `mapstructure:"store"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Log     LogConfig     `mapstructure:"log"`

	// 实际读取的配置文件，没有时为空
	Path string `mapstructure:"-"`
}

type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	WebDir      string `mapstructure:"web_dir"`
	MobileDir   string `mapstructure:"mobile_dir"`
	OpenBrowser bool   `mapstructure:"open_browser"`
}

type RPCConfig struct {
	Addr string `mapstructure:"addr"`
}

type EngineConfig struct {
	Level      string        `mapstructure:"level"`
	ThinkDelay time.Duration `mapstructure:"think_delay"`
	Strict     bool          `mapstructure:"strict"`
	Seed       int64         `mapstructure:"seed"`
}

type StoreConfig struct {
	Driver   string        `mapstructure:"driver"`
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type ArchiveConfig struct {
	MongoURI string `mapstructure:"mongo_uri"`
	Database string `mapstructure:"database"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

var defaults = map[string]any{
	"server.addr":         ":2888",
	"server.web_dir":      "./web",
	"server.mobile_dir":   "",
	"server.open_browser": true,
	"rpc.addr":            ":2889",
	"engine.level":        "medium",
	"engine.think_delay":  "500ms",
	"engine.strict":       false,
	"engine.seed":         0,
	"store.driver":        "memory",
	"store.redis_url":     "",
	"store.ttl":           "24h",
	"archive.mongo_uri":   "",
	"archive.database":    "shogi",
	"log.debug":           false,
}

// Setup 读取配置：cfgPath 为空时按 XDG 目录和可执行文件旁边查找 config.yaml，
// 都没有就只用默认值和 SHOGI_ 前缀的环境变量。
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("SHOGI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := cfgPath
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := engine.ParseLevel(c.Engine.Level); err != nil {
		return fmt.Errorf("%w: engine.level: %v", ErrInvalidConfig, err)
	}
	if c.Engine.ThinkDelay < 0 {
		return fmt.Errorf("%w: engine.think_delay must not be negative", ErrInvalidConfig)
	}
	switch c.Store.Driver {
	case "memory":
	case "redis":
		if c.Store.RedisURL == "" {
			return fmt.Errorf("%w: store.redis_url is required for the redis driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store.driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	if c.Archive.MongoURI != "" && c.Archive.Database == "" {
		return fmt.Errorf("%w: archive.database is empty", ErrInvalidConfig)
	}
	return nil
}

// Level 已经过 Validate，这里不会出错。
func (c *Config) Level() engine.Level {
	l, _ := engine.ParseLevel(c.Engine.Level)
	return l
}

package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig 监听配置
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`             // TCP line protocol
	WSPort          int      `yaml:"ws_port"`          // WebSocket, 0 disables it
	AllowedOrigins  []string `yaml:"allowed_origins"`  // WebSocket origins, empty allows all
	ShutdownTimeout int      `yaml:"shutdown_timeout"` // seconds
}

// ShutdownTimeoutDuration 返回关闭等待时长
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"` // zerolog level name
	File  string `yaml:"file"`  // empty logs to the console
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 1001
	defaultWSPort          = 1780
	defaultRedisAddr       = "localhost:6379"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10
)

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Config{Server: ServerConfig{WSPort: -1}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.WSPort < 0 {
		cfg.Server.WSPort = defaultWSPort
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = defaultRedisAddr
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			WSPort:          defaultWSPort,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Redis: RedisConfig{
			Addr: defaultRedisAddr,
		},
		Log: LogConfig{
			Level: defaultLogLevel,
		},
	}
}

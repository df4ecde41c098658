package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver" validate:"required|in:file,redis"`
	Dir         string `yaml:"dir"`
	Compress    bool   `yaml:"compress"`
	RedisAddr   string `yaml:"redisAddr"`
	RedisDB     int    `yaml:"redisDB"`
	RedisPrefix string `yaml:"redisPrefix"`
}

type Persistence struct {
	Retries       int           `yaml:"retries" validate:"uint"`
	RetryDelay    time.Duration `yaml:"retryDelay"`
	FlushInterval time.Duration `yaml:"flushInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type UserConfig struct {
	FreeScans int `yaml:"freeScans" validate:"uint"`
}

type TasksConfig struct {
	StrictPetReference bool `yaml:"strictPetReference"`
	CascadeOnPetRemove bool `yaml:"cascadeOnPetRemove"`
}

type ScannerConfig struct {
	Delay time.Duration `yaml:"delay"`
}

type SeedConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server        `yaml:"webServer"`
	Storage     StorageConfig `yaml:"storage"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
	User        UserConfig    `yaml:"user"`
	Tasks       TasksConfig   `yaml:"tasks"`
	Scanner     ScannerConfig `yaml:"scanner"`
	Seed        SeedConfig    `yaml:"seed"`
}

package providers

import (
	"fmt"
	"path/filepath"
	"petcare/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "PetCareDaemon"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8090)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("storage.compress", true)
	v.SetDefault("storage.redisPrefix", "petcare:")
	v.SetDefault("persistence.retries", 1)
	v.SetDefault("persistence.retryDelay", 200*time.Millisecond)
	v.SetDefault("persistence.flushInterval", 30*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cache.ttl", 60*time.Second)
	v.SetDefault("user.freeScans", 3)
	v.SetDefault("scanner.delay", 2*time.Second)
	v.SetDefault("seed.enabled", true)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("logger.level", "PETCARE_LOG_LEVEL")
	_ = v.BindEnv("storage.dir", "PETCARE_STORAGE_DIR")
	_ = v.BindEnv("storage.driver", "PETCARE_STORAGE_DRIVER")
	_ = v.BindEnv("storage.redisAddr", "PETCARE_REDIS_ADDR")
	_ = v.BindEnv("cache.enabled", "PETCARE_CACHE_ENABLED")
	_ = v.BindEnv("scanner.delay", "PETCARE_SCAN_DELAY")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = appName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

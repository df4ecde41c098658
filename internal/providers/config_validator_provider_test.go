package providers

import (
	"petcare/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8090,
		},
		Storage: structures.StorageConfig{
			Driver: "file",
			Dir:    "/tmp/petcare",
		},
		Persistence: structures.Persistence{
			Retries:       1,
			FlushInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_UnknownDriver(t *testing.T) {
	c := validConfig()
	c.Storage.Driver = "sqlite"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_FileDriverNeedsDir(t *testing.T) {
	c := validConfig()
	c.Storage.Dir = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_RedisDriverNeedsAddr(t *testing.T) {
	c := validConfig()
	c.Storage.Driver = "redis"
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Storage.RedisAddr = "127.0.0.1:6379"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

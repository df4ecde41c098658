package providers

import (
	"errors"
	"fmt"
	"petcare/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}
	if c.conf.Storage.Driver == "file" && c.conf.Storage.Dir == "" {
		return errors.New("invalid config: storage.dir is required for the file driver")
	}
	if c.conf.Storage.Driver == "redis" && c.conf.Storage.RedisAddr == "" {
		return errors.New("invalid config: storage.redisAddr is required for the redis driver")
	}
	return nil
}

package persistence

import (
	"fmt"
	"petcare/internal/providers"
	"petcare/internal/structures"
)

const documentFileMode = 0o644

// NewStorage builds the configured backend.
func NewStorage(conf *structures.Config, logger providers.Logger) (StorageInterface, error) {
	var (
		storage StorageInterface
		err     error
	)

	switch conf.Storage.Driver {
	case "redis":
		storage, err = NewRedisStorage(conf.Storage.RedisAddr, conf.Storage.RedisDB, conf.Storage.RedisPrefix)
		if err != nil {
			return nil, err
		}
		logger.Infof(providers.TypeStorage, "Using redis storage at %s (db %d)", conf.Storage.RedisAddr, conf.Storage.RedisDB)
	case "file", "":
		var compressor CompressorInterface = NoopCompressor{}
		if conf.Storage.Compress {
			compressor, err = NewZstdCompressor()
			if err != nil {
				return nil, err
			}
		}
		storage, err = NewFileStorage(conf.Storage.Dir, documentFileMode, compressor, conf.Storage.Compress)
		if err != nil {
			compressor.Close()
			return nil, err
		}
		logger.Infof(providers.TypeStorage, "Using file storage in %s (compress=%t)", conf.Storage.Dir, conf.Storage.Compress)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
	return storage, nil
}

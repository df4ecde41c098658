package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage keeps one file per key under dir, replaced atomically on
// every write.
type FileStorage struct {
	dir        string
	ext        string
	mode       os.FileMode
	compressor CompressorInterface
}

func NewFileStorage(dir string, mode os.FileMode, compressor CompressorInterface, compressed bool) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	ext := ".json"
	if compressed {
		ext += ".zst"
	}
	if mode == 0 {
		mode = 0o644
	}
	return &FileStorage{dir: dir, ext: ext, mode: mode, compressor: compressor}, nil
}

func (f *FileStorage) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.dir, key+f.ext), nil
}

func (f *FileStorage) Read(_ context.Context, key string) ([]byte, bool, error) {
	fileName, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, false, fmt.Errorf("decompress %s: %w", fileName, err)
	}
	return decompressed, true, nil
}

func (f *FileStorage) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fileName, err := f.path(key)
	if err != nil {
		return err
	}
	compressed, err := f.compressor.Compress(data)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.mode)
	if err != nil {
		return err
	}

	if _, err = file.Write(compressed); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileStorage) Close() error {
	f.compressor.Close()
	return nil
}

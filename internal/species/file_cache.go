package species

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileCache stores raw API responses on disk, one file per key.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

var cacheKeyReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ".", "_")

func (cache *FileCache) filePath(key string) string {
	return filepath.Join(cache.rootDir, cacheKeyReplacer.Replace(strings.ToLower(key))+".json")
}

// cache returns the stored contents for key, or calls fetch and stores its result.
// The bool reports whether the contents came from disk.
func (cache *FileCache) cache(key string, fetch func() ([]byte, error)) ([]byte, bool, error) {
	localFilePath := cache.filePath(key)
	if _, err := os.Stat(localFilePath); err == nil {
		contents, err := cache.read(localFilePath)
		if err != nil {
			return nil, false, fmt.Errorf("cache.read > %w", err)
		}
		return contents, true, nil
	}

	contents, err := fetch()
	if err != nil {
		return nil, false, err
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return contents, false, fmt.Errorf("os.MkdirAll(%s) > %w", cache.rootDir, err)
	}
	file, err := os.Create(localFilePath)
	if err != nil {
		return contents, false, fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return contents, false, fmt.Errorf("file.Write > %w", err)
	}
	return contents, false, nil
}

func (cache *FileCache) read(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}

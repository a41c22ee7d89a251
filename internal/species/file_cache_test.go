package species

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_cache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "species")
	cache := NewFileCache(dir)

	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte(`[{"sciName":"Parus major"}]`), nil
	}

	got, cached, err := cache.cache("de_Parus major", fetch)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, `[{"sciName":"Parus major"}]`, string(got))

	got, cached, err = cache.cache("DE_parus MAJOR", fetch)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, `[{"sciName":"Parus major"}]`, string(got))
	assert.Equal(t, 1, calls)

	_, err = os.Stat(filepath.Join(dir, "de_parus_major.json"))
	assert.NoError(t, err)
}

func TestFileCache_cache_FetchError(t *testing.T) {
	cache := NewFileCache(t.TempDir())
	wantErr := errors.New("unavailable")

	got, cached, err := cache.cache("key", func() ([]byte, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, cached)
	assert.Nil(t, got)

	_, statErr := os.Stat(cache.filePath("key"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileCache_filePath(t *testing.T) {
	cache := NewFileCache("/tmp/cache")
	tests := []struct {
		key  string
		want string
	}{
		{key: "Parus major", want: "/tmp/cache/parus_major.json"},
		{key: "de_Parus major", want: "/tmp/cache/de_parus_major.json"},
		{key: "../etc/passwd", want: "/tmp/cache/___etc_passwd.json"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, cache.filePath(tt.key))
		})
	}
}

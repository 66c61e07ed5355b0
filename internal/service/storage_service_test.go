package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ortprep_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageUploadAndDelete(t *testing.T) {
	provider := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}

	url, err := provider.Upload(context.Background(), "ort-samples/sample.txt", strings.NewReader("материал"), 8, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/ort-samples/sample.txt", url)

	data, err := os.ReadFile(filepath.Join(provider.Config.LocalPath, "ort-samples", "sample.txt"))
	require.NoError(t, err)
	assert.Equal(t, "материал", string(data))

	require.NoError(t, provider.Delete(context.Background(), "ort-samples/sample.txt"))
	_, err = os.Stat(filepath.Join(provider.Config.LocalPath, "ort-samples", "sample.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewStorageServiceFallsBackToLocal(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()}}
	svc := NewStorageService(cfg)

	_, ok := svc.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}

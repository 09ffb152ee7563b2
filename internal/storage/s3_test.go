package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/instantfun/soundboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		AccessKey:      "AKIATESTACCESSKEY",
		SecretKey:      "test-secret-key",
		Bucket:         "soundboard-test",
		Domain:         "https://cdn.test",
		Region:         "us-east-1",
		UploadTokenTTL: 15 * time.Minute,
	}
}

func TestObjectKeyLayout(t *testing.T) {
	key := objectKey()

	now := time.Now()
	prefix := fmt.Sprintf("sounds/%d/%02d/", now.Year(), now.Month())
	assert.True(t, strings.HasPrefix(key, prefix), "key %q", key)
	assert.NotEqual(t, key, objectKey(), "keys are unique per call")
}

func TestMintUploadToken(t *testing.T) {
	// Presigning is pure request signing; no network round trip happens.
	store, err := NewS3Store(testStorageConfig())
	require.NoError(t, err)

	cred, err := store.MintUploadToken(context.Background())
	require.NoError(t, err)

	assert.Contains(t, cred.Token, "soundboard-test")
	assert.Contains(t, cred.Token, "X-Amz-Signature=")
	assert.Contains(t, cred.Token, cred.Key)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), cred.ExpiresAt, time.Minute)
}

func TestMintUploadTokenCustomEndpoint(t *testing.T) {
	cfg := testStorageConfig()
	cfg.Endpoint = "https://minio.internal:9000"

	store, err := NewS3Store(cfg)
	require.NoError(t, err)

	cred, err := store.MintUploadToken(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cred.Token, "minio.internal:9000")
}

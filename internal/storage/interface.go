package storage

import (
	"context"
	"time"
)

// UploadCredential is a short-lived, bucket-scoped credential that lets a
// client write one object directly to storage without routing bytes through
// this service.
type UploadCredential struct {
	Token     string    `json:"token"` // presigned PUT URL
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ObjectStore is the surface the handlers need from the storage provider:
// credential minting and delete-by-key. Allows mocking in tests.
type ObjectStore interface {
	MintUploadToken(ctx context.Context) (*UploadCredential, error)
	DeleteObject(ctx context.Context, key string) error
}

// Ensure S3Store implements ObjectStore
var _ ObjectStore = (*S3Store)(nil)

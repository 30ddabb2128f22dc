package storage

import (
	"context"
	"time"
)

// StorageService issues time-limited download URLs for objects the read path
// references (trainer profile images). Uploads are handled by the profile
// service outside this process.
type StorageService interface {
	GetSecureDownloadURL(ctx context.Context, objectPath string, expires time.Duration) (string, error)
}

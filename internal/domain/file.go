package domain

import (
	"context"
	"io"
	"time"
)

// FileRecord holds metadata about an uploaded file. The payload itself
// lives in a BlobStore under StorageKey (the storage-internal filename).
type FileRecord struct {
	ID            string
	Filename      string // storage-internal name
	OriginalName  string // user-facing name
	MimeType      string
	Size          int64
	UserID        string
	DownloadToken string     // empty when no token is active
	TokenExpiry   *time.Time // nil when no token is active
	CreatedAt     time.Time
}

// FileUpdate enumerates the mutable file fields for partial updates.
// Setting a new DownloadToken supersedes any previously issued one.
type FileUpdate struct {
	OriginalName  *string
	DownloadToken *string
	TokenExpiry   *time.Time
}

// FileRepository defines persistence operations for file metadata.
type FileRepository interface {
	Create(ctx context.Context, file *FileRecord) error
	GetByID(ctx context.Context, id string) (*FileRecord, error)
	// GetByToken resolves a download token, returning ErrNotFound unless
	// the token matches and its expiry is strictly after now.
	GetByToken(ctx context.Context, token string, now time.Time) (*FileRecord, error)
	ListByUser(ctx context.Context, userID string) ([]FileRecord, error)
	Update(ctx context.Context, id string, upd FileUpdate) (*FileRecord, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// TotalSize returns the sum of all stored file sizes in bytes.
	TotalSize(ctx context.Context) (int64, error)
}

// BlobStore abstracts raw file byte storage. The initial implementation
// writes to local disk; the interface allows swapping to S3 or another
// backend later.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadSeekCloser, error)
	Delete(ctx context.Context, key string) error
}

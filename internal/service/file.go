package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/adventuresync/server/internal/domain"
)

const downloadTokenTTL = 24 * time.Hour

// FileService handles upload metadata, storage accounting, and
// capability-token downloads.
type FileService struct {
	files domain.FileRepository
	users domain.UserRepository
	blobs domain.BlobStore
}

// NewFileService creates a new FileService.
func NewFileService(files domain.FileRepository, users domain.UserRepository, blobs domain.BlobStore) *FileService {
	return &FileService{files: files, users: users, blobs: blobs}
}

// Upload sniffs the content type, persists the payload under a generated
// internal name, records metadata, and adds the size to the owner's
// storageUsed counter. The size ceiling is enforced by the caller before
// any of this runs.
func (s *FileService) Upload(ctx context.Context, userID, originalName string, content io.ReadSeeker) (*domain.FileRecord, error) {
	if originalName == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}

	mtype, err := mimetype.DetectReader(content)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	key := uuid.NewString() + mtype.Extension()
	size, err := s.blobs.Save(ctx, key, content)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	file := &domain.FileRecord{
		Filename:     key,
		OriginalName: originalName,
		MimeType:     mtype.String(),
		Size:         size,
		UserID:       userID,
	}
	if err := s.files.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("record upload: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	used := user.StorageUsed + size
	if _, err := s.users.Update(ctx, userID, domain.UserUpdate{StorageUsed: &used}); err != nil {
		return nil, fmt.Errorf("update storage used: %w", err)
	}

	return file, nil
}

// ListByUser returns the caller's files, newest first.
func (s *FileService) ListByUser(ctx context.Context, userID string) ([]domain.FileRecord, error) {
	return s.files.ListByUser(ctx, userID)
}

// GenerateToken issues a fresh 24h download token for a file the caller
// owns. Any previously issued token stops resolving; only one token is
// active per file. Files the caller does not own read as not found.
func (s *FileService) GenerateToken(ctx context.Context, userID, fileID string) (string, time.Time, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return "", time.Time{}, err
	}
	if file.UserID != userID {
		return "", time.Time{}, domain.ErrNotFound
	}

	token, err := generateDownloadToken()
	if err != nil {
		return "", time.Time{}, err
	}
	expiry := time.Now().UTC().Add(downloadTokenTTL)

	if _, err := s.files.Update(ctx, fileID, domain.FileUpdate{
		DownloadToken: &token,
		TokenExpiry:   &expiry,
	}); err != nil {
		return "", time.Time{}, fmt.Errorf("store download token: %w", err)
	}
	return token, expiry, nil
}

// ResolveToken exchanges a valid, unexpired download token for the file
// record and its payload. Expired or unknown tokens read as not found.
// The caller owns closing the returned reader.
func (s *FileService) ResolveToken(ctx context.Context, token string) (*domain.FileRecord, io.ReadSeekCloser, error) {
	file, err := s.files.GetByToken(ctx, token, time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}

	blob, err := s.blobs.Open(ctx, file.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("open blob: %w", err)
	}
	return file, blob, nil
}

func generateDownloadToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate download token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

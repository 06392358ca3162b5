package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adventuresync/server/internal/domain"
)

// FileRepository implements domain.FileRepository on an in-memory map.
type FileRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.FileRecord
}

func (r *FileRepository) Create(ctx context.Context, file *domain.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	file.DownloadToken = ""
	file.TokenExpiry = nil
	file.CreatedAt = time.Now().UTC()
	r.byID[file.ID] = *file
	return nil
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (*domain.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	file, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &file, nil
}

func (r *FileRepository) GetByToken(ctx context.Context, token string, now time.Time) (*domain.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.byID {
		if f.DownloadToken == token && f.TokenExpiry != nil && f.TokenExpiry.After(now) {
			file := f
			return &file, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *FileRepository) ListByUser(ctx context.Context, userID string) ([]domain.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	files := make([]domain.FileRecord, 0)
	for _, f := range r.byID {
		if f.UserID == userID {
			files = append(files, f)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}

func (r *FileRepository) Update(ctx context.Context, id string, upd domain.FileUpdate) (*domain.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if upd.OriginalName != nil {
		file.OriginalName = *upd.OriginalName
	}
	if upd.DownloadToken != nil {
		file.DownloadToken = *upd.DownloadToken
	}
	if upd.TokenExpiry != nil {
		expiry := *upd.TokenExpiry
		file.TokenExpiry = &expiry
	}

	r.byID[id] = file
	return &file, nil
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *FileRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *FileRepository) TotalSize(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, f := range r.byID {
		total += f.Size
	}
	return total, nil
}

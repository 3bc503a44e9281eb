package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"careercraft-backend/internal/extract"
	"careercraft-backend/internal/shared/expiry"
	"careercraft-backend/internal/shared/storage/object"
	"careercraft-backend/internal/shared/telemetry"
)

// Service contains business logic for resume records. Every read applies the
// expiry policy: an expired record is deleted on the spot and reported as
// not found, exactly like an id that never existed.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	TTL   time.Duration

	now func() time.Time
}

// NewService constructs a resume Service.
func NewService(repo Repo, store object.ObjectStore, ttl time.Duration) *Service {
	return &Service{
		Repo:  repo,
		Store: store,
		TTL:   ttl,
		now:   time.Now,
	}
}

// Upload extracts text from an uploaded document, stores the raw file in the
// object store and creates the record. The record is created only after
// every earlier step succeeded, so a failed upload leaves no entity behind.
func (s *Service) Upload(ctx context.Context, fileName string, data []byte) (Record, error) {
	if strings.TrimSpace(fileName) == "" || len(data) == 0 {
		return Record{}, ErrInvalidInput
	}
	if !extract.SupportedExt(fileName) {
		return Record{}, fmt.Errorf("%w: unsupported file type", ErrInvalidInput)
	}

	text, err := extract.Text(ctx, data, fileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			return Record{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		return Record{}, fmt.Errorf("extract %s: %w", fileName, err)
	}
	if strings.TrimSpace(text) == "" {
		return Record{}, ErrNoText
	}

	id := uuid.NewString()

	var storageKey string
	if s.Store != nil {
		storageKey, _, _, err = s.Store.Save(ctx, id, fileName, bytes.NewReader(data))
		if err != nil {
			return Record{}, fmt.Errorf("store upload: %w", err)
		}
	}

	rec := Record{
		ID:         id,
		FileName:   fileName,
		StorageKey: storageKey,
		Text:       text,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("create resume record: %w", err)
	}

	telemetry.Info("resume.uploaded", map[string]any{
		"resume_id": rec.ID,
		"file_name": rec.FileName,
		"text_len":  len(rec.Text),
	})
	return rec, nil
}

// Get returns a live record, deleting it first if it has outlived the TTL.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	if strings.TrimSpace(id) == "" {
		return Record{}, ErrNotFound
	}
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if expiry.Expired(rec.CreatedAt, s.now().UTC(), s.TTL) {
		telemetry.Warn("resume.expired_on_read", map[string]any{"resume_id": id})
		if err := s.Repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			return Record{}, err
		}
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Text returns the extracted text of a live record.
func (s *Service) Text(ctx context.Context, id string) (string, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return rec.Text, nil
}

// DeleteExpired removes every record older than the TTL, using the same
// threshold arithmetic as the read-time check.
func (s *Service) DeleteExpired(ctx context.Context) (int, error) {
	return s.Repo.DeleteOlderThan(ctx, expiry.Cutoff(s.now().UTC(), s.TTL))
}

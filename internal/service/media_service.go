package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"votehub/internal/cache"
	apperrors "votehub/internal/errors"
	"votehub/internal/model"
	"votehub/internal/repository"
	"votehub/internal/storage"
)

// MediaService handles media uploads and URL resolution. Upload failures are
// reported individually and never fail the poll they belong to.
type MediaService interface {
	UploadOptionImage(ctx context.Context, optionID uuid.UUID, filename, contentType string, r io.Reader) (*model.OptionMedia, error)
	UploadPollAttachment(ctx context.Context, pollID uuid.UUID, mediaType model.MediaType, filename, contentType, description string, r io.Reader) (*model.PollMedia, error)
	ResolveURL(storagePath string) string
}

type mediaService struct {
	pollRepo  repository.PollRepository
	mediaRepo repository.MediaRepository
	store     storage.ObjectStore
	cache     *cache.Client
}

// NewMediaService creates a new media service. A nil store disables uploads.
func NewMediaService(
	pollRepo repository.PollRepository,
	mediaRepo repository.MediaRepository,
	store storage.ObjectStore,
	cache *cache.Client,
) MediaService {
	return &mediaService{
		pollRepo:  pollRepo,
		mediaRepo: mediaRepo,
		store:     store,
		cache:     cache,
	}
}

// UploadOptionImage stores an option's image and records the media row.
// Each option may carry at most one image.
func (s *mediaService) UploadOptionImage(ctx context.Context, optionID uuid.UUID, filename, contentType string, r io.Reader) (*model.OptionMedia, error) {
	if s.store == nil {
		return nil, fmt.Errorf("media storage is not configured")
	}

	option, err := s.pollRepo.FindOption(ctx, optionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOptionNotFound
		}
		return nil, fmt.Errorf("load option: %w", err)
	}

	if _, err := s.mediaRepo.FindOptionMedia(ctx, optionID); err == nil {
		return nil, fmt.Errorf("%w: option already has an image", apperrors.ErrConstraintViolation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check option media: %w", err)
	}

	objectPath := fmt.Sprintf("option-images/%s/%s", optionID, safeFilename(filename))
	if err := s.store.Save(ctx, objectPath, r, contentType); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	media := &model.OptionMedia{
		OptionID:    optionID,
		StoragePath: objectPath,
		URL:         s.ResolveURL(objectPath),
	}
	if err := s.mediaRepo.CreateOptionMedia(ctx, media); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: option already has an image", apperrors.ErrConstraintViolation)
		}
		return nil, fmt.Errorf("record option media: %w", err)
	}

	_ = s.cache.Delete(ctx, pollCacheKey(option.PollID))
	return media, nil
}

// UploadPollAttachment stores a poll-level image or document and records the
// media row.
func (s *mediaService) UploadPollAttachment(ctx context.Context, pollID uuid.UUID, mediaType model.MediaType, filename, contentType, description string, r io.Reader) (*model.PollMedia, error) {
	if s.store == nil {
		return nil, fmt.Errorf("media storage is not configured")
	}
	if mediaType != model.MediaTypeImage && mediaType != model.MediaTypeDocument {
		return nil, fmt.Errorf("%w: unsupported media type %q for upload", apperrors.ErrInvalidInput, mediaType)
	}

	if _, err := s.pollRepo.FindByID(ctx, pollID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPollNotFound
		}
		return nil, fmt.Errorf("load poll: %w", err)
	}

	objectPath := fmt.Sprintf("poll-attachments/%s/%s", pollID, safeFilename(filename))
	if err := s.store.Save(ctx, objectPath, r, contentType); err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	media := &model.PollMedia{
		PollID:      pollID,
		MediaType:   mediaType,
		StoragePath: objectPath,
		URL:         s.ResolveURL(objectPath),
		Description: description,
	}
	if err := s.mediaRepo.CreatePollMedia(ctx, media); err != nil {
		return nil, fmt.Errorf("record poll media: %w", err)
	}

	_ = s.cache.Delete(ctx, pollCacheKey(pollID))
	return media, nil
}

// ResolveURL returns a signed read URL for a stored object, falling back to
// the public URL when signing is unavailable.
func (s *mediaService) ResolveURL(storagePath string) string {
	if s.store == nil || storagePath == "" {
		return ""
	}
	if signed, err := s.store.SignedURL(storagePath, storage.SignedURLExpiry); err == nil {
		return signed
	}
	return s.store.PublicURL(storagePath)
}

// safeFilename strips any directory components from an uploaded filename.
func safeFilename(filename string) string {
	name := path.Base(filename)
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}

package service

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/pkg/events"
	"ai-chat-be/pkg/extract"
	"ai-chat-be/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

var filenamePattern = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// IUploadService coordinates attachment uploads against the blob backend
// and exposes the storage-facing helpers built on top of it. Persisting
// the resulting attachment row is the caller's job.
type IUploadService interface {
	Upload(ctx context.Context, data []byte, originalName, mimeType string, userId uuid.UUID) (*dto.UploadFileResponse, error)
	GetSignedUrl(ctx context.Context, storagePath string) (string, error)
	Download(ctx context.Context, storagePath string) ([]byte, error)
	Delete(ctx context.Context, storagePath string) error
	Parse(ctx context.Context, storagePath, mimeType, originalName string) string
	CheckSetup(ctx context.Context) *dto.StorageHealthResponse
}

type uploadService struct {
	gateway          storage.Gateway
	dispatcher       *extract.Dispatcher
	publisherService IPublisherService
	logger           logger.ILogger
	bucket           string
	signedURLTTL     time.Duration
	urlCache         *gocache.Cache
	parseCache       *gocache.Cache
}

func NewUploadService(
	gateway storage.Gateway,
	dispatcher *extract.Dispatcher,
	publisherService IPublisherService,
	log logger.ILogger,
	bucket string,
	signedURLTTL time.Duration,
) IUploadService {
	return &uploadService{
		gateway:          gateway,
		dispatcher:       dispatcher,
		publisherService: publisherService,
		logger:           log,
		bucket:           bucket,
		signedURLTTL:     signedURLTTL,
		// Cached URLs must expire before the signature does.
		urlCache:   gocache.New(signedURLTTL-5*time.Minute, 10*time.Minute),
		parseCache: gocache.New(30*time.Minute, 10*time.Minute),
	}
}

func (s *uploadService) Upload(ctx context.Context, data []byte, originalName, mimeType string, userId uuid.UUID) (*dto.UploadFileResponse, error) {
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimetype.Detect(data).String()
	}

	buckets, err := s.gateway.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrStorageUnavailable, err)
	}
	found := false
	for _, b := range buckets {
		if b.Name == s.bucket {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", storage.ErrBucketMissing, s.bucket)
	}

	// Per-user folder plus a random id keeps keys collision free.
	storagePath := fmt.Sprintf("%s/%s%s", userId, uuid.New(), path.Ext(originalName))

	if err := s.gateway.Upload(ctx, storagePath, data, mimeType, false); err != nil {
		return nil, err
	}

	s.logger.Info("upload", "file uploaded", map[string]interface{}{
		"path": storagePath,
		"size": len(data),
	})

	res := &dto.UploadFileResponse{
		StoragePath:  storagePath,
		Filename:     fmt.Sprintf("%s_%s", uuid.New(), filenamePattern.ReplaceAllString(originalName, "_")),
		OriginalName: originalName,
		MimeType:     mimeType,
		FileSize:     int64(len(data)),
	}

	s.publishUploaded(ctx, res)
	return res, nil
}

// publishUploaded warms the extraction cache asynchronously. Publishing is
// auxiliary, so a failure is logged and the upload still succeeds.
func (s *uploadService) publishUploaded(ctx context.Context, res *dto.UploadFileResponse) {
	if s.publisherService == nil {
		return
	}

	event := events.BaseEvent{
		Type: events.AttachmentUploaded,
		Data: map[string]interface{}{
			"storage_path":  res.StoragePath,
			"mime_type":     res.MimeType,
			"original_name": res.OriginalName,
		},
		OccurredAt: time.Now(),
	}

	if err := s.publisherService.Publish(ctx, event); err != nil {
		s.logger.Warn("upload", "failed to publish uploaded event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *uploadService) GetSignedUrl(ctx context.Context, storagePath string) (string, error) {
	if cached, ok := s.urlCache.Get(storagePath); ok {
		return cached.(string), nil
	}

	url, err := s.gateway.SignedURL(ctx, storagePath, s.signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to get file URL: %w", err)
	}

	s.urlCache.Set(storagePath, url, gocache.DefaultExpiration)
	return url, nil
}

func (s *uploadService) Download(ctx context.Context, storagePath string) ([]byte, error) {
	data, err := s.gateway.Download(ctx, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return data, nil
}

func (s *uploadService) Delete(ctx context.Context, storagePath string) error {
	if err := s.gateway.Delete(ctx, storagePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	s.urlCache.Delete(storagePath)
	s.parseCache.Delete(storagePath)
	return nil
}

func (s *uploadService) Parse(ctx context.Context, storagePath, mimeType, originalName string) string {
	if cached, ok := s.parseCache.Get(storagePath); ok {
		return cached.(string)
	}

	content := s.dispatcher.Extract(ctx, storagePath, mimeType, originalName)
	s.parseCache.Set(storagePath, content, gocache.DefaultExpiration)
	return content
}

func (s *uploadService) CheckSetup(ctx context.Context) *dto.StorageHealthResponse {
	buckets, err := s.gateway.ListBuckets(ctx)
	if err != nil {
		return &dto.StorageHealthResponse{Ok: false, Detail: err.Error()}
	}

	for _, b := range buckets {
		if b.Name == s.bucket {
			return &dto.StorageHealthResponse{Ok: true, Detail: fmt.Sprintf("bucket %q reachable", s.bucket)}
		}
	}

	return &dto.StorageHealthResponse{
		Ok:     false,
		Detail: fmt.Sprintf("bucket %q not found; create it on the storage backend", s.bucket),
	}
}

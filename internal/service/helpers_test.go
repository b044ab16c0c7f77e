package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/storage"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestFactory spins up an in-memory sqlite DB with the full schema.
func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A plain :memory: DSN gives every pooled connection its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Chat{}, &model.Message{}, &model.Attachment{}))

	return unitofwork.NewRepositoryFactory(db)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeGateway is an in-memory storage.Gateway for exercising the upload
// and extraction flows without a real blob backend.
type fakeGateway struct {
	buckets        []storage.BucketInfo
	listBucketsErr error
	objects        map[string][]byte
	contentTypes   map[string]string
	uploadCalls    int
	signCalls      int
}

func newFakeGateway(buckets ...string) *fakeGateway {
	infos := make([]storage.BucketInfo, len(buckets))
	for i, b := range buckets {
		infos[i] = storage.BucketInfo{Name: b}
	}
	return &fakeGateway{
		buckets:      infos,
		objects:      map[string][]byte{},
		contentTypes: map[string]string{},
	}
}

func (g *fakeGateway) ListBuckets(ctx context.Context) ([]storage.BucketInfo, error) {
	if g.listBucketsErr != nil {
		return nil, g.listBucketsErr
	}
	return g.buckets, nil
}

func (g *fakeGateway) Upload(ctx context.Context, key string, data []byte, contentType string, overwrite bool) error {
	if _, exists := g.objects[key]; exists && !overwrite {
		return storage.ErrUploadConflict
	}
	g.uploadCalls++
	g.objects[key] = data
	g.contentTypes[key] = contentType
	return nil
}

func (g *fakeGateway) Download(ctx context.Context, key string) ([]byte, error) {
	data, ok := g.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (g *fakeGateway) Delete(ctx context.Context, key string) error {
	delete(g.objects, key)
	return nil
}

func (g *fakeGateway) List(ctx context.Context, prefix string, search string) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	for key, data := range g.objects {
		if strings.HasPrefix(key, prefix) && strings.Contains(key, search) {
			out = append(out, storage.ObjectInfo{Name: key, Size: int64(len(data))})
		}
	}
	return out, nil
}

func (g *fakeGateway) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	g.signCalls++
	return "https://signed.example.com/" + key, nil
}

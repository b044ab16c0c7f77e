package implementation

import (
	"context"
	"testing"
	"time"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/specification"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Chat{}, &model.Message{}, &model.Attachment{}))
	return db
}

func TestChatRepositoryRoundTrip(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))
	ctx := context.Background()

	chat := &entity.Chat{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Title:     "roundtrip",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, chat))

	found, err := repo.FindOne(ctx, specification.ByID{ID: chat.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, chat.Id, found.Id)
	assert.Equal(t, "roundtrip", found.Title)

	found.Title = "renamed"
	require.NoError(t, repo.Update(ctx, found))

	again, err := repo.FindOne(ctx, specification.ByID{ID: chat.Id})
	require.NoError(t, err)
	assert.Equal(t, "renamed", again.Title)

	require.NoError(t, repo.Delete(ctx, chat.Id))

	gone, err := repo.FindOne(ctx, specification.ByID{ID: chat.Id})
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestChatRepositoryFindAllScoped(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))
	ctx := context.Background()
	userId := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.Chat{
			Id: uuid.New(), UserId: userId, Title: "mine",
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}))
	}
	require.NoError(t, repo.Create(ctx, &entity.Chat{
		Id: uuid.New(), UserId: uuid.New(), Title: "theirs",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	mine, err := repo.FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: userId})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	page, err := repo.FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Pagination{Limit: 2, Offset: 0},
	)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestMessageRepositoryJSONColumns(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	msg := &entity.Message{
		Id:        uuid.New(),
		ChatId:    uuid.New(),
		UserId:    uuid.New(),
		Role:      "assistant",
		Content:   "answer",
		Model:     "gpt-4o",
		ToolsUsed: []string{"web_search", "code_interpreter"},
		Metadata:  map[string]interface{}{"tokens": float64(128), "finish": "stop"},
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, msg))

	found, err := repo.FindOne(ctx, specification.ByID{ID: msg.Id})
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, []string{"web_search", "code_interpreter"}, found.ToolsUsed)
	assert.Equal(t, float64(128), found.Metadata["tokens"])
	assert.Equal(t, "stop", found.Metadata["finish"])
}

func TestMessageRepositoryNilCollections(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	ctx := context.Background()

	msg := &entity.Message{
		Id: uuid.New(), ChatId: uuid.New(), UserId: uuid.New(),
		Role: "user", Content: "bare", CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, msg))

	found, err := repo.FindOne(ctx, specification.ByID{ID: msg.Id})
	require.NoError(t, err)
	require.NotNil(t, found)

	// Readers never see nil collections.
	assert.NotNil(t, found.ToolsUsed)
	assert.NotNil(t, found.Metadata)
}

func TestAttachmentRepositoryBulkAndLookup(t *testing.T) {
	repo := NewAttachmentRepository(newTestDB(t))
	ctx := context.Background()
	messageId := uuid.New()

	attachments := []*entity.Attachment{
		{
			Id: uuid.New(), MessageId: messageId,
			Filename: "f1", OriginalName: "one.txt", MimeType: "text/plain",
			FileSize: 10, StoragePath: "u/one.txt",
		},
		{
			Id: uuid.New(), MessageId: messageId,
			Filename: "f2", OriginalName: "two.txt", MimeType: "text/plain",
			FileSize: 20, StoragePath: "u/two.txt",
		},
	}
	require.NoError(t, repo.CreateBulk(ctx, attachments))

	all, err := repo.FindAll(ctx, specification.ByMessageID{MessageID: messageId})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byPath, err := repo.FindOne(ctx, specification.ByStoragePath{StoragePath: "u/two.txt"})
	require.NoError(t, err)
	require.NotNil(t, byPath)
	assert.Equal(t, "two.txt", byPath.OriginalName)

	missing, err := repo.FindOne(ctx, specification.ByStoragePath{StoragePath: "u/none.txt"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttachmentRepositoryUniqueStoragePath(t *testing.T) {
	repo := NewAttachmentRepository(newTestDB(t))
	ctx := context.Background()

	first := &entity.Attachment{
		Id: uuid.New(), MessageId: uuid.New(),
		Filename: "f", OriginalName: "a.txt", MimeType: "text/plain",
		StoragePath: "u/same.txt",
	}
	require.NoError(t, repo.Create(ctx, first))

	dup := &entity.Attachment{
		Id: uuid.New(), MessageId: uuid.New(),
		Filename: "g", OriginalName: "b.txt", MimeType: "text/plain",
		StoragePath: "u/same.txt",
	}
	assert.Error(t, repo.Create(ctx, dup))
}

func TestAttachmentRepositoryCreateBulkEmpty(t *testing.T) {
	repo := NewAttachmentRepository(newTestDB(t))
	assert.NoError(t, repo.CreateBulk(context.Background(), nil))
}

package service

import (
	"context"
	"testing"
	"time"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageCreateDefaults(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewMessageService(factory, NewAttachmentAggregator(factory, nopLogger{}))
	ctx := context.Background()

	msg, err := svc.Create(ctx, uuid.New(), &dto.CreateMessageRequest{
		ChatId: uuid.New(), Role: "user", Content: "plain text",
	})
	require.NoError(t, err)

	// Absent collections come back empty, never nil.
	assert.NotNil(t, msg.ToolsUsed)
	assert.Empty(t, msg.ToolsUsed)
	assert.NotNil(t, msg.Metadata)
	assert.Empty(t, msg.Metadata)
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestMessageCreateWithAttachments(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewMessageService(factory, NewAttachmentAggregator(factory, nopLogger{}))
	ctx := context.Background()
	userId := uuid.New()
	chatId := uuid.New()

	msg, err := svc.Create(ctx, userId, &dto.CreateMessageRequest{
		ChatId:    chatId,
		Role:      "user",
		Content:   "see attached",
		ToolsUsed: []string{"web_search"},
		Metadata:  map[string]interface{}{"client": "web"},
		Attachments: []dto.AttachmentPayload{
			{
				Filename:     "a1_notes.txt",
				OriginalName: "notes.txt",
				MimeType:     "text/plain",
				FileSize:     42,
				StoragePath:  userId.String() + "/a1.txt",
			},
			{
				Filename:     "a2_pic.png",
				OriginalName: "pic.png",
				MimeType:     "image/png",
				FileSize:     1024,
				StoragePath:  userId.String() + "/a2.png",
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"web_search"}, msg.ToolsUsed)

	uow := factory.NewUnitOfWork(ctx)
	count, err := uow.AttachmentRepository().Count(ctx, specification.ByMessageID{MessageID: msg.Id})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMessageCreateAtomicWithAttachments(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewMessageService(factory, NewAttachmentAggregator(factory, nopLogger{}))
	ctx := context.Background()
	userId := uuid.New()
	chatId := uuid.New()

	payload := dto.AttachmentPayload{
		Filename:     "dup.txt",
		OriginalName: "dup.txt",
		MimeType:     "text/plain",
		StoragePath:  userId.String() + "/dup.txt",
	}

	first, err := svc.Create(ctx, userId, &dto.CreateMessageRequest{
		ChatId: chatId, Role: "user", Content: "one",
		Attachments: []dto.AttachmentPayload{payload},
	})
	require.NoError(t, err)

	// Same storage path violates the unique index, so the second message
	// must not survive the failed attachment insert.
	_, err = svc.Create(ctx, userId, &dto.CreateMessageRequest{
		ChatId: chatId, Role: "user", Content: "two",
		Attachments: []dto.AttachmentPayload{payload},
	})
	require.Error(t, err)

	uow := factory.NewUnitOfWork(ctx)
	count, err := uow.MessageRepository().Count(ctx, specification.ByChatID{ChatID: chatId})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	survivor, err := uow.MessageRepository().FindOne(ctx, specification.ByChatID{ChatID: chatId})
	require.NoError(t, err)
	require.NotNil(t, survivor)
	assert.Equal(t, first.Id, survivor.Id)
}

func TestMessageUpdatePartial(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewMessageService(factory, NewAttachmentAggregator(factory, nopLogger{}))
	ctx := context.Background()

	msg, err := svc.Create(ctx, uuid.New(), &dto.CreateMessageRequest{
		ChatId: uuid.New(), Role: "assistant", Content: "draft", Model: "gpt-4o",
		Metadata: map[string]interface{}{"tokens": float64(12)},
	})
	require.NoError(t, err)

	newContent := "final"
	updated, err := svc.Update(ctx, &dto.UpdateMessageRequest{Id: msg.Id, Content: &newContent})
	require.NoError(t, err)

	assert.Equal(t, "final", updated.Content)
	// Untouched fields keep their values.
	assert.Equal(t, "gpt-4o", updated.Model)
	assert.Equal(t, map[string]interface{}{"tokens": float64(12)}, updated.Metadata)
	// Identity fields never move.
	assert.Equal(t, msg.Id, updated.Id)
	assert.WithinDuration(t, msg.CreatedAt, updated.CreatedAt, time.Second)
}

func TestMessageUpdateMissing(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewMessageService(factory, NewAttachmentAggregator(factory, nopLogger{}))

	content := "x"
	_, err := svc.Update(context.Background(), &dto.UpdateMessageRequest{Id: uuid.New(), Content: &content})
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestMessageDelete(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewMessageService(factory, NewAttachmentAggregator(factory, nopLogger{}))
	ctx := context.Background()

	msg, err := svc.Create(ctx, uuid.New(), &dto.CreateMessageRequest{
		ChatId: uuid.New(), Role: "user", Content: "bye",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, msg.Id))

	gone, err := svc.Show(ctx, msg.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, svc.Delete(ctx, msg.Id), ErrMessageNotFound)
}

func TestMessageGetByChatIdOrdered(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewMessageService(factory, NewAttachmentAggregator(factory, nopLogger{}))
	ctx := context.Background()
	userId := uuid.New()
	chatId := uuid.New()

	for _, content := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, userId, &dto.CreateMessageRequest{
			ChatId: chatId, Role: "user", Content: content,
		})
		require.NoError(t, err)
	}

	messages, err := svc.GetByChatId(ctx, chatId)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
	assert.Equal(t, "third", messages[2].Content)
}

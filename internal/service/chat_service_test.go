package service

import (
	"context"
	"testing"
	"time"

	"ai-chat-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(t *testing.T) (IChatService, IMessageService) {
	factory := newTestFactory(t)
	aggregator := NewAttachmentAggregator(factory, nopLogger{})
	return NewChatService(factory, aggregator), NewMessageService(factory, aggregator)
}

func TestChatCreateAndShow(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateChatRequest{Title: "Trip planning"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Id)
	assert.Equal(t, userId, created.UserId)
	assert.Equal(t, "Trip planning", created.Title)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	found, err := svc.Show(ctx, created.Id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.Id, found.Id)
}

func TestChatShowMissingReturnsNil(t *testing.T) {
	svc, _ := newChatService(t)

	found, err := svc.Show(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestChatGetAllOrderedByRecency(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()
	userId := uuid.New()

	first, err := svc.Create(ctx, userId, &dto.CreateChatRequest{Title: "first"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, userId, &dto.CreateChatRequest{Title: "second"})
	require.NoError(t, err)

	// Other users' chats stay invisible.
	_, err = svc.Create(ctx, uuid.New(), &dto.CreateChatRequest{Title: "foreign"})
	require.NoError(t, err)

	// Touching the first chat moves it back to the top.
	time.Sleep(10 * time.Millisecond)
	_, err = svc.Update(ctx, &dto.UpdateChatRequest{Id: first.Id, Title: "first renamed"})
	require.NoError(t, err)

	chats, err := svc.GetAll(ctx, userId)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "first renamed", chats[0].Title)
	assert.Equal(t, "second", chats[1].Title)
}

func TestChatUpdateMissing(t *testing.T) {
	svc, _ := newChatService(t)

	_, err := svc.Update(context.Background(), &dto.UpdateChatRequest{Id: uuid.New(), Title: "x"})
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestChatDeleteReturnsDeletedRow(t *testing.T) {
	svc, msgSvc := newChatService(t)
	ctx := context.Background()
	userId := uuid.New()

	chat, err := svc.Create(ctx, userId, &dto.CreateChatRequest{Title: "doomed"})
	require.NoError(t, err)

	msg, err := msgSvc.Create(ctx, userId, &dto.CreateMessageRequest{
		ChatId: chat.Id, Role: "user", Content: "hello",
	})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, chat.Id)
	require.NoError(t, err)
	assert.Equal(t, "doomed", deleted.Title)

	gone, err := svc.Show(ctx, chat.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Messages are not cascaded.
	orphan, err := msgSvc.Show(ctx, msg.Id)
	require.NoError(t, err)
	require.NotNil(t, orphan)
	assert.Equal(t, "hello", orphan.Content)

	_, err = svc.Delete(ctx, chat.Id)
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestChatTranscript(t *testing.T) {
	svc, msgSvc := newChatService(t)
	ctx := context.Background()
	userId := uuid.New()

	chat, err := svc.Create(ctx, userId, &dto.CreateChatRequest{Title: "with messages"})
	require.NoError(t, err)

	question, err := msgSvc.Create(ctx, userId, &dto.CreateMessageRequest{
		ChatId: chat.Id, Role: "user", Content: "what is in the report?",
		Attachments: []dto.AttachmentPayload{{
			Filename:     "abc_report.pdf",
			OriginalName: "report.pdf",
			MimeType:     "application/pdf",
			FileSize:     2048,
			StoragePath:  userId.String() + "/r1.pdf",
		}},
	})
	require.NoError(t, err)
	_, err = msgSvc.Create(ctx, userId, &dto.CreateMessageRequest{
		ChatId: chat.Id, Role: "assistant", Content: "summary follows", Model: "gpt-4o",
	})
	require.NoError(t, err)

	transcript, err := svc.GetWithMessages(ctx, chat.Id, userId)
	require.NoError(t, err)
	require.NotNil(t, transcript)
	require.Len(t, transcript.Messages, 2)

	// Chronological order, attachments joined onto their message.
	assert.Equal(t, question.Id, transcript.Messages[0].Id)
	require.Len(t, transcript.Messages[0].Attachments, 1)
	assert.Equal(t, "report.pdf", transcript.Messages[0].Attachments[0].OriginalName)
	assert.Equal(t, "assistant", transcript.Messages[1].Role)
	assert.Empty(t, transcript.Messages[1].Attachments)
}

func TestChatTranscriptOwnershipScoped(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()
	owner := uuid.New()

	chat, err := svc.Create(ctx, owner, &dto.CreateChatRequest{Title: "private"})
	require.NoError(t, err)

	// A different user cannot tell the chat exists.
	transcript, err := svc.GetWithMessages(ctx, chat.Id, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, transcript)
}

package contract

import (
	"context"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) error
	CreateBulk(ctx context.Context, attachments []*entity.Attachment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

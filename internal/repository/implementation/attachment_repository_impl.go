package implementation

import (
	"context"
	"errors"

	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/mapper"
	"ai-chat-be/internal/model"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AttachmentMapper
}

func NewAttachmentRepository(db *gorm.DB) contract.AttachmentRepository {
	return &AttachmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewAttachmentMapper(),
	}
}

func (r *AttachmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *entity.Attachment) error {
	m := r.mapper.ToModel(attachment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attachment = *r.mapper.ToEntity(m)
	return nil
}

func (r *AttachmentRepositoryImpl) CreateBulk(ctx context.Context, attachments []*entity.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}
	models := make([]*model.Attachment, len(attachments))
	for i, a := range attachments {
		models[i] = r.mapper.ToModel(a)
	}
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Attachment{}, "id = ?", id).Error
}

func (r *AttachmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error) {
	var m model.Attachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AttachmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error) {
	var models []*model.Attachment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Attachment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *AttachmentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Attachment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

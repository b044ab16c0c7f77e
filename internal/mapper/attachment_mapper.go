package mapper

import (
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/model"
)

type AttachmentMapper struct{}

func NewAttachmentMapper() *AttachmentMapper {
	return &AttachmentMapper{}
}

func (m *AttachmentMapper) ToEntity(a *model.Attachment) *entity.Attachment {
	if a == nil {
		return nil
	}

	return &entity.Attachment{
		Id:           a.Id,
		MessageId:    a.MessageId,
		Filename:     a.Filename,
		OriginalName: a.OriginalName,
		MimeType:     a.MimeType,
		FileSize:     a.FileSize,
		StoragePath:  a.StoragePath,
	}
}

func (m *AttachmentMapper) ToModel(a *entity.Attachment) *model.Attachment {
	if a == nil {
		return nil
	}

	return &model.Attachment{
		Id:           a.Id,
		MessageId:    a.MessageId,
		Filename:     a.Filename,
		OriginalName: a.OriginalName,
		MimeType:     a.MimeType,
		FileSize:     a.FileSize,
		StoragePath:  a.StoragePath,
	}
}

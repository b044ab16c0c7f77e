package dto

import (
	"github.com/google/uuid"
)

type AttachmentResponse struct {
	Id           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	FileSize     int64     `json:"file_size"`
	StoragePath  string    `json:"storage_path"`
}

type UploadFileResponse struct {
	StoragePath  string `json:"storage_path"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	FileSize     int64  `json:"file_size"`
}

type SignedUrlResponse struct {
	Url string `json:"url"`
}

type ParseFileResponse struct {
	Content string `json:"content"`
}

type StorageHealthResponse struct {
	Ok     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// PublishAttachmentUploadedMessage is the payload published after a
// successful upload so the extraction cache can be warmed asynchronously.
type PublishAttachmentUploadedMessage struct {
	StoragePath  string `json:"storage_path"`
	MimeType     string `json:"mime_type"`
	OriginalName string `json:"original_name"`
}

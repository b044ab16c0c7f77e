package controller

import (
	"io"
	"strings"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAttachmentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	GetSignedUrl(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	Parse(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type attachmentController struct {
	uploadService service.IUploadService
	uowFactory    unitofwork.RepositoryFactory
}

func NewAttachmentController(uploadService service.IUploadService, uowFactory unitofwork.RepositoryFactory) IAttachmentController {
	return &attachmentController{
		uploadService: uploadService,
		uowFactory:    uowFactory,
	}
}

func (c *attachmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/attachment/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload", c.Upload)
	h.Get("url", c.GetSignedUrl)
	h.Get("download", c.Download)
	h.Get("parse", c.Parse)
	h.Delete("", c.Delete)
	h.Get("health", c.Health)
}

func (c *attachmentController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.uploadService.Upload(ctx.Context(), data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload file", res))
}

func (c *attachmentController) GetSignedUrl(ctx *fiber.Ctx) error {
	storagePath, err := c.ownedPath(ctx)
	if err != nil {
		return err
	}

	url, err := c.uploadService.GetSignedUrl(ctx.Context(), storagePath)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get file URL", &dto.SignedUrlResponse{Url: url}))
}

func (c *attachmentController) Download(ctx *fiber.Ctx) error {
	storagePath, err := c.ownedPath(ctx)
	if err != nil {
		return err
	}

	attachment, err := c.findByPath(ctx, storagePath)
	if err != nil {
		return err
	}

	data, err := c.uploadService.Download(ctx.Context(), storagePath)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, attachment.MimeType)
	return ctx.Send(data)
}

// Parse returns the textual representation of a stored attachment. The
// result is always text; extraction failures come back as descriptive
// content rather than an error status.
func (c *attachmentController) Parse(ctx *fiber.Ctx) error {
	storagePath, err := c.ownedPath(ctx)
	if err != nil {
		return err
	}

	attachment, err := c.findByPath(ctx, storagePath)
	if err != nil {
		return err
	}

	content := c.uploadService.Parse(ctx.Context(), storagePath, attachment.MimeType, attachment.OriginalName)

	return ctx.JSON(serverutils.SuccessResponse("Success parse file", &dto.ParseFileResponse{Content: content}))
}

func (c *attachmentController) Delete(ctx *fiber.Ctx) error {
	storagePath, err := c.ownedPath(ctx)
	if err != nil {
		return err
	}

	if err := c.uploadService.Delete(ctx.Context(), storagePath); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete file", nil))
}

func (c *attachmentController) Health(ctx *fiber.Ctx) error {
	res := c.uploadService.CheckSetup(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Storage health", res))
}

// ownedPath reads the path query param and rejects paths outside the
// requesting user's folder. Storage keys are always <userId>/<uuid><ext>.
func (c *attachmentController) ownedPath(ctx *fiber.Ctx) (string, error) {
	userIdStr := ctx.Locals("user_id").(string)

	storagePath := ctx.Query("path")
	if storagePath == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "path is required")
	}
	if !strings.HasPrefix(storagePath, userIdStr+"/") {
		return "", fiber.NewError(fiber.StatusForbidden, "path does not belong to user")
	}
	return storagePath, nil
}

func (c *attachmentController) findByPath(ctx *fiber.Ctx, storagePath string) (*dto.AttachmentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx.Context())

	attachment, err := uow.AttachmentRepository().FindOne(ctx.Context(),
		specification.ByStoragePath{StoragePath: storagePath},
	)
	if err != nil {
		return nil, err
	}
	if attachment == nil {
		return nil, service.ErrAttachmentNotFound
	}

	return &dto.AttachmentResponse{
		Id:           attachment.Id,
		Filename:     attachment.Filename,
		OriginalName: attachment.OriginalName,
		MimeType:     attachment.MimeType,
		FileSize:     attachment.FileSize,
		StoragePath:  attachment.StoragePath,
	}, nil
}

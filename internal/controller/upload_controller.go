package controller

import (
	"io"

	"finance-insights-be/internal/pkg/serverutils"
	"finance-insights-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	GetDocument(ctx *fiber.Ctx) error
}

type uploadController struct {
	uploadService service.IUploadService
}

func NewUploadController(uploadService service.IUploadService) IUploadController {
	return &uploadController{
		uploadService: uploadService,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/upload/v1")
	h.Use(serverutils.IdentityMiddleware)
	h.Post("", c.Upload)
	h.Get("document/:filename", c.GetDocument)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "No file uploaded"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Failed to read uploaded file"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Failed to read uploaded file"))
	}

	comment := ctx.FormValue("comment")

	res, err := c.uploadService.Upload(ctx.Context(), userId, fileHeader.Filename, data, comment)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("File analyzed", res))
}

func (c *uploadController) GetDocument(ctx *fiber.Ctx) error {
	filename := ctx.Params("filename")

	res, err := c.uploadService.GetDocument(ctx.Context(), filename)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document detail", res))
}

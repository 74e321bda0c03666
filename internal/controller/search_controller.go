package controller

import (
	"finance-insights-be/internal/constant"
	"finance-insights-be/internal/dto"
	"finance-insights-be/internal/pkg/serverutils"
	"finance-insights-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	DeleteChat(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Use(serverutils.IdentityMiddleware)
	h.Post("ask", c.Ask)
	h.Get("chat-history", c.GetChatHistory)
	h.Delete("history/:id", c.DeleteChat)
	h.Get("me", c.Me)
}

func (c *searchController) Ask(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if req.Region != "" && !constant.IsValidRegion(req.Region) {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unknown region: "+req.Region))
	}

	res, err := c.searchService.Ask(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Query answered", res))
}

func (c *searchController) GetChatHistory(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	res, err := c.searchService.GetChatHistory(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *searchController) DeleteChat(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chat id"))
	}

	if err := c.searchService.DeleteChat(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chat deleted successfully", nil))
}

func (c *searchController) Me(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)
	return ctx.JSON(serverutils.SuccessResponse("Current user", map[string]string{
		"userId": userId,
	}))
}

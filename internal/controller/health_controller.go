package controller

import (
	"finance-insights-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(app *fiber.App)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	healthService service.IHealthService
}

func NewHealthController(healthService service.IHealthService) IHealthController {
	return &healthController{
		healthService: healthService,
	}
}

func (c *healthController) RegisterRoutes(app *fiber.App) {
	app.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	checkRag := ctx.Query("check_rag") == "true"
	checkUpload := ctx.Query("check_upload") == "true"

	res := c.healthService.Check(ctx.Context(), checkRag, checkUpload)
	return ctx.JSON(res)
}

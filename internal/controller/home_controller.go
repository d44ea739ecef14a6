package controller

import (
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHomeController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	UpdateSubject(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type homeController struct {
	state     service.IStateService
	assistant service.IAssistantService
}

func NewHomeController(state service.IStateService, assistant service.IAssistantService) IHomeController {
	return &homeController{state: state, assistant: assistant}
}

func (c *homeController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Index)
	r.Post("/update_subject", c.UpdateSubject)
	r.Get("/healthz", c.Health)
}

func (c *homeController) Index(ctx *fiber.Ctx) error {
	return ctx.JSON(c.state.Home(ctx.UserContext()))
}

func (c *homeController) UpdateSubject(ctx *fiber.Ctx) error {
	var req dto.UpdateSubjectRequest
	// A missing or unparsable body sets the subject to "".
	_ = ctx.BodyParser(&req)

	c.state.UpdateSubject(ctx.UserContext(), req.Subject)
	return ctx.Redirect("/", fiber.StatusFound)
}

// Health reports "degraded" when no model answered at startup. The process
// still serves search, media and state routes in that case.
func (c *homeController) Health(ctx *fiber.Ctx) error {
	model := c.assistant.Model()
	status := "ok"
	if model == "" {
		status = "degraded"
	}
	return ctx.JSON(dto.HealthResponse{Status: status, Model: model})
}

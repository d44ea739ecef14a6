package controller

import (
	"fmt"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStudyController interface {
	RegisterRoutes(r fiber.Router)
	StudyPage(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	QuizPage(ctx *fiber.Ctx) error
	Quiz(ctx *fiber.Ctx) error
}

type studyController struct {
	service service.IAssistantService
}

func NewStudyController(service service.IAssistantService) IStudyController {
	return &studyController{service: service}
}

func (c *studyController) RegisterRoutes(r fiber.Router) {
	r.Get("/study_ai", c.StudyPage)
	r.Post("/study_ai", c.Ask)
	r.Get("/quiz", c.QuizPage)
	r.Post("/quiz", c.Quiz)
}

func (c *studyController) StudyPage(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.PageResponse{Page: "study_ai"})
}

func (c *studyController) QuizPage(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.PageResponse{Page: "quiz"})
}

func (c *studyController) Ask(ctx *fiber.Ctx) error {
	var req dto.StudyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, apperror.Validation(constant.MsgEnterQuestion))
	}

	res, err := c.service.Ask(ctx.UserContext(), &req)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindProviderError {
			return ctx.Status(apperror.StatusOf(err)).
				JSON(serverutils.ErrorResponse(fmt.Sprintf(constant.MsgAIServiceError, err.Error())))
		}
		return serverutils.RespondError(ctx, err)
	}

	return ctx.JSON(res)
}

func (c *studyController) Quiz(ctx *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, apperror.Validation(constant.MsgEnterMaterial))
	}

	res, err := c.service.Quiz(ctx.UserContext(), &req)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return ctx.JSON(res)
}

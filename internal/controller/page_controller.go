package controller

import (
	"study-assistant-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

type IPageController interface {
	RegisterRoutes(r fiber.Router)
}

// pageController serves the pages that have no server-side behaviour.
type pageController struct {
	pages []string
}

func NewPageController() IPageController {
	return &pageController{pages: []string{"books", "research", "goals"}}
}

func (c *pageController) RegisterRoutes(r fiber.Router) {
	for _, page := range c.pages {
		name := page
		r.Get("/"+name, func(ctx *fiber.Ctx) error {
			return ctx.JSON(dto.PageResponse{Page: name})
		})
	}
}

package controller

import (
	"fmt"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/dto"
	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/service"
	"study-assistant-be/pkg/catalog/archive"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	SearchBooks(ctx *fiber.Ctx) error
	SearchResearch(ctx *fiber.Ctx) error
}

type searchController struct {
	service service.ISearchService
}

func NewSearchController(service service.ISearchService) ISearchController {
	return &searchController{service: service}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	r.Get("/search_books", c.SearchBooks)
	r.Get("/search_research", c.SearchResearch)
}

func (c *searchController) SearchBooks(ctx *fiber.Ctx) error {
	books, err := c.service.SearchBooks(ctx.UserContext(), ctx.Query("q"))
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}
	return ctx.JSON(dto.BooksResponse{Books: books})
}

// SearchResearch always answers with {papers}; whether they are real results
// or placeholders is reported in the X-Search-Source header.
func (c *searchController) SearchResearch(ctx *fiber.Ctx) error {
	papers, source, err := c.service.SearchResearch(ctx.UserContext(), ctx.Query("q"))
	if err != nil {
		return ctx.Status(apperror.StatusOf(err)).
			JSON(serverutils.ErrorResponse(fmt.Sprintf(constant.MsgSearchError, err.Error())))
	}

	if source != archive.SourceNone {
		ctx.Set(dto.SearchSourceHeader, string(source))
	}
	return ctx.JSON(dto.PapersResponse{Papers: papers})
}

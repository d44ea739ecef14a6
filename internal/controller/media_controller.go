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

type IMediaController interface {
	RegisterRoutes(r fiber.Router)
	AudiobookPage(ctx *fiber.Ctx) error
	SaveAudiobook(ctx *fiber.Ctx) error
	MusicPage(ctx *fiber.Ctx) error
	UploadMusic(ctx *fiber.Ctx) error
}

type mediaController struct {
	service service.IMediaService
}

func NewMediaController(service service.IMediaService) IMediaController {
	return &mediaController{service: service}
}

func (c *mediaController) RegisterRoutes(r fiber.Router) {
	r.Get("/audiobook", c.AudiobookPage)
	r.Post("/audiobook", c.SaveAudiobook)
	r.Get("/music", c.MusicPage)
	r.Post("/music", c.UploadMusic)
}

func (c *mediaController) AudiobookPage(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.PageResponse{Page: "audiobook", Notice: ctx.Query("notice")})
}

func (c *mediaController) SaveAudiobook(ctx *fiber.Ctx) error {
	var req dto.AudiobookRequest
	// An unparsable body leaves text_content empty and fails validation below.
	_ = ctx.BodyParser(&req)

	saved, err := c.service.SaveTranscript(ctx.UserContext(), &req)
	if err != nil {
		return serverutils.RedirectWithNotice(ctx, "/audiobook", failureNotice(err, constant.MsgTranscriptError))
	}

	return serverutils.RedirectWithNotice(ctx, "/audiobook", fmt.Sprintf(constant.MsgTranscriptSaved, saved.Filename))
}

func (c *mediaController) MusicPage(ctx *fiber.Ctx) error {
	files, err := c.service.ListLocalFiles()
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}
	return ctx.JSON(dto.MusicPageResponse{
		Page:       "music",
		Notice:     ctx.Query("notice"),
		LocalFiles: files,
	})
}

func (c *mediaController) UploadMusic(ctx *fiber.Ctx) error {
	fh, err := ctx.FormFile("music_file")
	if err != nil || fh.Filename == "" {
		return serverutils.RedirectWithNotice(ctx, "/music", constant.MsgNoFileSelected)
	}

	f, err := fh.Open()
	if err != nil {
		return serverutils.RedirectWithNotice(ctx, "/music", fmt.Sprintf(constant.MsgMusicUploadError, err.Error()))
	}
	defer f.Close()

	saved, err := c.service.SaveMusic(ctx.UserContext(), fh.Filename, f)
	if err != nil {
		return serverutils.RedirectWithNotice(ctx, "/music", failureNotice(err, constant.MsgMusicUploadError))
	}

	return serverutils.RedirectWithNotice(ctx, "/music", fmt.Sprintf(constant.MsgMusicUploaded, saved.Filename))
}

// failureNotice shows validation messages verbatim and wraps anything else
// in format.
func failureNotice(err error, format string) string {
	if apperror.KindOf(err) == apperror.KindValidation {
		return err.Error()
	}
	return fmt.Sprintf(format, err.Error())
}

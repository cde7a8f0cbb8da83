package controller

import (
	"errors"

	"github.com/l-pommeret/RAG-DiBiSo/internal/dto"
	"github.com/l-pommeret/RAG-DiBiSo/internal/pkg/serverutils"
	"github.com/l-pommeret/RAG-DiBiSo/internal/service"
	"github.com/l-pommeret/RAG-DiBiSo/pkg/hours"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Hours(ctx *fiber.Ctx) error
	Facilities(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	resolver         *hours.Resolver
	formatter        *hours.Formatter
}

func NewAssistantController(
	assistantService service.IAssistantService,
	resolver *hours.Resolver,
	formatter *hours.Formatter,
) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		resolver:         resolver,
		formatter:        formatter,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("ask", c.Ask)
	h.Get("facilities", c.Facilities)
	h.Get("hours/:facility", c.Hours)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Ask(ctx.Context(), req.Question)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

// Hours exposes the live schedule chain directly, bypassing classification.
func (c *assistantController) Hours(ctx *fiber.Ctx) error {
	facilityId := ctx.Params("facility")

	schedule, err := c.resolver.Resolve(ctx.Context(), facilityId)
	if err != nil {
		if errors.Is(err, hours.ErrUnknownFacility) {
			return fiber.NewError(fiber.StatusNotFound, "unknown facility")
		}
		var unavailable *hours.SourceUnavailableError
		if errors.As(err, &unavailable) {
			return fiber.NewError(fiber.StatusServiceUnavailable, c.formatter.FormatUnavailable(unavailable))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", schedule))
}

func (c *assistantController) Facilities(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success", c.resolver.Directory().All()))
}

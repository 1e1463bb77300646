package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/yuliitezarygml/tg-bor-arend/internal/delivery/http/response"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/dto"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/service"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/failure"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

type Handler struct {
	service   service.ConsoleService
	logger    logger.Interface
	validator *validator.Validate
}

func New(s service.ConsoleService, l logger.Interface, v *validator.Validate) *Handler {
	return &Handler{
		service:   s,
		logger:    l,
		validator: v,
	}
}

const (
	identifier = "http - console - %s"

	routePath = "/consoles"
)

func (h *Handler) RegisterRoutes(r fiber.Router) {
	consoles := r.Group(routePath)

	consoles.Post("/", h.Create)
	consoles.Get("/available", h.ListAvailable)
	consoles.Get("/:id", h.Get)
	consoles.Get("/", h.List)
	consoles.Patch("/:id", h.Update)
	consoles.Delete("/:id", h.Delete)
}

func (h *Handler) Create(ctx *fiber.Ctx) error {
	var req dto.CreateConsoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		err = failure.BadRequestFromString(err.Error())

		h.logger.Error(identifier, "create - body parsing error: %v", err)

		return response.WithError(ctx, err)
	}

	if err := h.validator.Struct(req); err != nil {
		err = failure.BadRequestFromString(err.Error())

		h.logger.Error(identifier, "create - validate error: %v", err)

		return response.WithError(ctx, err)
	}

	res, err := h.service.Create(ctx.UserContext(), req)
	if err != nil {
		h.logger.Error(identifier, "create - failed to create console: %v", err)

		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusCreated, res)
}

func (h *Handler) Get(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return response.WithError(ctx, failure.BadRequestFromString("console id is required"))
	}

	res, err := h.service.Get(ctx.UserContext(), id)
	if err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

func (h *Handler) List(ctx *fiber.Ctx) error {
	res, err := h.service.GetAll(ctx.UserContext())
	if err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

func (h *Handler) ListAvailable(ctx *fiber.Ctx) error {
	res, err := h.service.GetAvailable(ctx.UserContext())
	if err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

func (h *Handler) Update(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return response.WithError(ctx, failure.BadRequestFromString("console id is required"))
	}

	var req dto.UpdateConsoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.WithError(ctx, failure.BadRequestFromString(err.Error()))
	}

	if err := h.validator.Struct(req); err != nil {
		return response.WithError(ctx, failure.BadRequestFromString(err.Error()))
	}

	res, err := h.service.Update(ctx.UserContext(), id, req)
	if err != nil {
		h.logger.Error(identifier, "update - failed to update console: %v", err)

		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

func (h *Handler) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return response.WithError(ctx, failure.BadRequestFromString("console id is required"))
	}

	if err := h.service.Delete(ctx.UserContext(), id); err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusNoContent, nil)
}

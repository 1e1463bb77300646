package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/yuliitezarygml/tg-bor-arend/internal/delivery/http/response"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/dto"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/service"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/failure"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

type Handler struct {
	service   service.SettingsService
	logger    logger.Interface
	validator *validator.Validate
}

func New(s service.SettingsService, l logger.Interface, v *validator.Validate) *Handler {
	return &Handler{
		service:   s,
		logger:    l,
		validator: v,
	}
}

const (
	identifier = "http - settings - %s"

	routePath = "/settings"
)

func (h *Handler) RegisterRoutes(r fiber.Router) {
	settings := r.Group(routePath)

	settings.Get("/", h.Get)
	settings.Patch("/", h.Update)
}

func (h *Handler) Get(ctx *fiber.Ctx) error {
	res, err := h.service.Get(ctx.UserContext())
	if err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

func (h *Handler) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		err = failure.BadRequestFromString(err.Error())

		h.logger.Error(identifier, "update - body parsing error: %v", err)

		return response.WithError(ctx, err)
	}

	if err := h.validator.Struct(req); err != nil {
		err = failure.BadRequestFromString(err.Error())

		h.logger.Error(identifier, "update - validate error: %v", err)

		return response.WithError(ctx, err)
	}

	res, err := h.service.Update(ctx.UserContext(), req)
	if err != nil {
		h.logger.Error(identifier, "update - failed: %v", err)

		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

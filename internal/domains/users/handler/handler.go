package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/yuliitezarygml/tg-bor-arend/internal/delivery/http/response"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/dto"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/service"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/failure"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

type Handler struct {
	service   service.UserService
	logger    logger.Interface
	validator *validator.Validate
}

func New(s service.UserService, l logger.Interface, v *validator.Validate) *Handler {
	return &Handler{
		service:   s,
		logger:    l,
		validator: v,
	}
}

const (
	identifier = "http - user - %s"

	routePath = "/users"
)

func (h *Handler) RegisterRoutes(r fiber.Router) {
	users := r.Group(routePath)

	users.Post("/", h.Register)
	users.Get("/:id", h.Get)
	users.Get("/", h.List)
}

func (h *Handler) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		err = failure.BadRequestFromString(err.Error())

		h.logger.Error(identifier, "register - body parsing error: %v", err)

		return response.WithError(ctx, err)
	}

	if err := h.validator.Struct(req); err != nil {
		err = failure.BadRequestFromString(err.Error())

		h.logger.Error(identifier, "register - validate error: %v", err)

		return response.WithError(ctx, err)
	}

	res, err := h.service.Register(ctx.UserContext(), req)
	if err != nil {
		h.logger.Error(identifier, "register - failed: %v", err)

		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusCreated, res)
}

func (h *Handler) Get(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return response.WithError(ctx, failure.BadRequestFromString("user id is required"))
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

package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/yuliitezarygml/tg-bor-arend/internal/delivery/http/response"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/dto"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/repository"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/service"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/failure"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

type Handler struct {
	service   service.RentalService
	logger    logger.Interface
	validator *validator.Validate
}

func New(s service.RentalService, l logger.Interface, v *validator.Validate) *Handler {
	return &Handler{
		service:   s,
		logger:    l,
		validator: v,
	}
}

const (
	identifier = "http - rental - %s"

	routePath = "/rentals"
)

func (h *Handler) RegisterRoutes(r fiber.Router) {
	rentals := r.Group(routePath)

	rentals.Post("/", h.Start)
	rentals.Get("/active", h.ListActive)
	rentals.Get("/user/:id", h.ListByUser)
	rentals.Post("/cost", h.CalculateCost)
	rentals.Get("/:id", h.Get)
	rentals.Post("/:id/end", h.End)
}

func (h *Handler) Start(ctx *fiber.Ctx) error {
	var req dto.StartRentalRequest
	if err := ctx.BodyParser(&req); err != nil {
		err = failure.BadRequestFromString(err.Error())

		h.logger.Error(identifier, "start - body parsing error: %v", err)

		return response.WithError(ctx, err)
	}

	if err := h.validator.Struct(req); err != nil {
		err = failure.BadRequestFromString(err.Error())

		h.logger.Error(identifier, "start - validate error: %v", err)

		return response.WithError(ctx, err)
	}

	res, err := h.service.StartRental(ctx.UserContext(), req)
	if err != nil {
		h.logger.Error(identifier, "start - failed to start rental: %v", err)

		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusCreated, res)
}

func (h *Handler) End(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return response.WithError(ctx, failure.BadRequestFromString("rental id is required"))
	}

	// Body is optional; without it the end is attributed to the admin panel.
	var req dto.EndRentalRequest
	_ = ctx.BodyParser(&req)

	endedBy := req.EndedBy
	if endedBy == "" {
		endedBy = repository.EndedByAdmin
	}

	res, err := h.service.EndRental(ctx.UserContext(), id, endedBy)
	if err != nil {
		h.logger.Error(identifier, "end - failed to end rental: %v", err)

		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

func (h *Handler) Get(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return response.WithError(ctx, failure.BadRequestFromString("rental id is required"))
	}

	res, err := h.service.GetRental(ctx.UserContext(), id)
	if err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

func (h *Handler) ListActive(ctx *fiber.Ctx) error {
	res, err := h.service.GetActiveRentals(ctx.UserContext())
	if err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

func (h *Handler) ListByUser(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return response.WithError(ctx, failure.BadRequestFromString("user id is required"))
	}

	res, err := h.service.GetUserRentals(ctx.UserContext(), id)
	if err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, res)
}

func (h *Handler) CalculateCost(ctx *fiber.Ctx) error {
	var req dto.CalculateCostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.WithError(ctx, failure.BadRequestFromString(err.Error()))
	}

	if err := h.validator.Struct(req); err != nil {
		return response.WithError(ctx, failure.BadRequestFromString(err.Error()))
	}

	cost, err := h.service.CalculateCost(ctx.UserContext(), req.ConsoleID, req.Hours)
	if err != nil {
		return response.WithError(ctx, err)
	}

	return response.WithJSON(ctx, fiber.StatusOK, fiber.Map{"cost": cost})
}

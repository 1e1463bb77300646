package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/dto"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/repository"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/failure"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

const identifier = "service - console - %s"

type ConsoleService interface {
	Create(ctx context.Context, req dto.CreateConsoleRequest) (dto.ConsoleResponse, error)
	Get(ctx context.Context, id string) (dto.ConsoleResponse, error)
	GetAll(ctx context.Context) ([]dto.ConsoleResponse, error)
	GetAvailable(ctx context.Context) ([]dto.ConsoleResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateConsoleRequest) (dto.ConsoleResponse, error)
	Delete(ctx context.Context, id string) error
}

type consoleService struct {
	repo *repository.Repository
	log  logger.Interface
	now  func() time.Time
}

func New(repo *repository.Repository, l logger.Interface) ConsoleService {
	return &consoleService{
		repo: repo,
		log:  l,
		now:  time.Now,
	}
}

func (s *consoleService) Create(ctx context.Context, req dto.CreateConsoleRequest) (dto.ConsoleResponse, error) {
	console := repository.Console{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Model:       req.Model,
		Games:       req.Games,
		RentalPrice: req.RentalPrice,
		SalePrice:   req.SalePrice,
		Status:      repository.StatusAvailable,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, console); err != nil {
		s.log.Error(identifier, "create - %v", err)

		return dto.ConsoleResponse{}, failure.InternalError(err)
	}

	return dto.ConsoleFromEntity(console), nil
}

func (s *consoleService) Get(ctx context.Context, id string) (dto.ConsoleResponse, error) {
	console, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ConsoleResponse{}, failure.NotFound("console")
		}

		s.log.Error(identifier, "get - %v", err)

		return dto.ConsoleResponse{}, failure.InternalError(err)
	}

	return dto.ConsoleFromEntity(console), nil
}

func (s *consoleService) GetAll(ctx context.Context) ([]dto.ConsoleResponse, error) {
	consoles, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error(identifier, "list - %v", err)

		return nil, failure.InternalError(err)
	}

	return sorted(consoles), nil
}

func (s *consoleService) GetAvailable(ctx context.Context) ([]dto.ConsoleResponse, error) {
	consoles, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error(identifier, "list available - %v", err)

		return nil, failure.InternalError(err)
	}

	for id, c := range consoles {
		if c.Status != repository.StatusAvailable {
			delete(consoles, id)
		}
	}

	return sorted(consoles), nil
}

func (s *consoleService) Update(ctx context.Context, id string, req dto.UpdateConsoleRequest) (dto.ConsoleResponse, error) {
	console, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ConsoleResponse{}, failure.NotFound("console")
		}

		s.log.Error(identifier, "update - %v", err)

		return dto.ConsoleResponse{}, failure.InternalError(err)
	}

	if req.Name != "" {
		console.Name = req.Name
	}

	if req.Model != "" {
		console.Model = req.Model
	}

	if req.Games != nil {
		console.Games = req.Games
	}

	if req.RentalPrice > 0 {
		console.RentalPrice = req.RentalPrice
	}

	if req.SalePrice > 0 {
		console.SalePrice = req.SalePrice
	}

	if err := s.repo.Update(ctx, console); err != nil {
		s.log.Error(identifier, "update - %v", err)

		return dto.ConsoleResponse{}, failure.InternalError(err)
	}

	return dto.ConsoleFromEntity(console), nil
}

func (s *consoleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failure.NotFound("console")
		}

		s.log.Error(identifier, "delete - %v", err)

		return failure.InternalError(err)
	}

	return nil
}

func sorted(consoles map[string]repository.Console) []dto.ConsoleResponse {
	out := make([]dto.ConsoleResponse, 0, len(consoles))
	for _, c := range consoles {
		out = append(out, dto.ConsoleFromEntity(c))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/dto"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/repository"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/failure"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

const identifier = "service - user - %s"

type UserService interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (dto.UserResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	GetAll(ctx context.Context) ([]dto.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  logger.Interface
	now  func() time.Time
}

func New(repo *repository.Repository, l logger.Interface) UserService {
	return &userService{
		repo: repo,
		log:  l,
		now:  time.Now,
	}
}

// Register creates the user on first contact and refreshes profile fields on
// repeat contact, keeping the spending stats intact.
func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest) (dto.UserResponse, error) {
	user, err := s.repo.Get(ctx, req.ID)

	switch {
	case err == nil:
		if req.FirstName != "" {
			user.FirstName = req.FirstName
		}

		if req.FullName != "" {
			user.FullName = req.FullName
		}

		if req.PhoneNumber != "" {
			user.PhoneNumber = req.PhoneNumber
		}
	case errors.Is(err, repository.ErrNotFound):
		user = repository.User{
			ID:          req.ID,
			FirstName:   req.FirstName,
			FullName:    req.FullName,
			PhoneNumber: req.PhoneNumber,
			CreatedAt:   s.now(),
		}
	default:
		s.log.Error(identifier, "register - %v", err)

		return dto.UserResponse{}, failure.InternalError(err)
	}

	if err := s.repo.Upsert(ctx, user); err != nil {
		s.log.Error(identifier, "register - %v", err)

		return dto.UserResponse{}, failure.InternalError(err)
	}

	return dto.UserFromEntity(user), nil
}

func (s *userService) Get(ctx context.Context, id string) (dto.UserResponse, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.UserResponse{}, failure.NotFound("user")
		}

		s.log.Error(identifier, "get - %v", err)

		return dto.UserResponse{}, failure.InternalError(err)
	}

	return dto.UserFromEntity(user), nil
}

func (s *userService) GetAll(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Error(identifier, "list - %v", err)

		return nil, failure.InternalError(err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserFromEntity(u))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

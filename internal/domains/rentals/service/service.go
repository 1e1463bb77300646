package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	consolerepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/repository"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/dto"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/repository"
	userrepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/repository"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/failure"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

const identifier = "service - rental - %s"

type RentalService interface {
	StartRental(ctx context.Context, req dto.StartRentalRequest) (dto.RentalResponse, error)
	EndRental(ctx context.Context, rentalID, endedBy string) (dto.EndRentalResponse, error)
	GetRental(ctx context.Context, rentalID string) (dto.RentalResponse, error)
	GetActiveRentals(ctx context.Context) ([]dto.RentalResponse, error)
	GetUserRentals(ctx context.Context, userID string) ([]dto.RentalResponse, error)
	CalculateCost(ctx context.Context, consoleID string, hours int) (int, error)
}

type rentalService struct {
	rentals  *repository.Repository
	consoles *consolerepo.Repository
	users    *userrepo.Repository
	log      logger.Interface
	now      func() time.Time
}

func New(
	rentals *repository.Repository,
	consoles *consolerepo.Repository,
	users *userrepo.Repository,
	l logger.Interface,
) RentalService {
	return &rentalService{
		rentals:  rentals,
		consoles: consoles,
		users:    users,
		log:      l,
		now:      time.Now,
	}
}

func (s *rentalService) StartRental(ctx context.Context, req dto.StartRentalRequest) (dto.RentalResponse, error) {
	console, err := s.consoles.Get(ctx, req.ConsoleID)
	if err != nil {
		if errors.Is(err, consolerepo.ErrNotFound) {
			return dto.RentalResponse{}, failure.NotFound("console")
		}

		s.log.Error(identifier, "start - load console: %v", err)

		return dto.RentalResponse{}, failure.InternalError(err)
	}

	if console.Status != consolerepo.StatusAvailable {
		return dto.RentalResponse{}, failure.Conflict("console is not available")
	}

	rental := repository.Rental{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		ConsoleID:     req.ConsoleID,
		StartTime:     s.now(),
		Status:        repository.StatusActive,
		SelectedHours: req.Hours,
	}

	if err := s.rentals.Create(ctx, rental); err != nil {
		s.log.Error(identifier, "start - create rental: %v", err)

		return dto.RentalResponse{}, failure.InternalError(err)
	}

	if err := s.consoles.SetStatus(ctx, console.ID, consolerepo.StatusRented); err != nil {
		s.log.Error(identifier, "start - mark console rented: %v", err)

		return dto.RentalResponse{}, failure.InternalError(err)
	}

	s.log.Info(identifier, "started rental "+rental.ID+" (user "+req.UserID+", console "+req.ConsoleID+")")

	return dto.RentalFromEntity(rental), nil
}

func (s *rentalService) EndRental(ctx context.Context, rentalID, endedBy string) (dto.EndRentalResponse, error) {
	rental, err := s.rentals.Get(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.EndRentalResponse{}, failure.NotFound("rental")
		}

		s.log.Error(identifier, "end - load rental: %v", err)

		return dto.EndRentalResponse{}, failure.InternalError(err)
	}

	if !rental.Active() {
		return dto.EndRentalResponse{}, failure.Conflict("rental already completed")
	}

	console, err := s.consoles.Get(ctx, rental.ConsoleID)
	if err != nil {
		s.log.Error(identifier, "end - load console: %v", err)

		// Billing falls back to a zero price when the console record is gone.
		console = consolerepo.Console{ID: rental.ConsoleID, Name: "Unknown console"}
	}

	now := s.now()
	cost, billedHours := BilledCost(rental.StartTime, console.RentalPrice, now)

	rental.EndTime = &now
	rental.Status = repository.StatusCompleted
	rental.TotalCost = cost
	rental.EndedBy = endedBy

	if err := s.rentals.Update(ctx, rental); err != nil {
		s.log.Error(identifier, "end - update rental: %v", err)

		return dto.EndRentalResponse{}, failure.InternalError(err)
	}

	if err := s.consoles.SetStatus(ctx, rental.ConsoleID, consolerepo.StatusAvailable); err != nil {
		s.log.Error(identifier, "end - release console: %v", err)
	}

	if user, err := s.users.Get(ctx, rental.UserID); err == nil {
		user.TotalSpent += cost
		if err := s.users.Upsert(ctx, user); err != nil {
			s.log.Error(identifier, "end - update user stats: %v", err)
		}
	} else {
		s.log.Warn(identifier, "end - user "+rental.UserID+" not found, stats not updated")
	}

	s.log.Info(identifier, "ended rental "+rentalID)

	return dto.EndRentalResponse{
		Rental:      dto.RentalFromEntity(rental),
		TotalCost:   cost,
		BilledHours: billedHours,
	}, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID string) (dto.RentalResponse, error) {
	rental, err := s.rentals.Get(ctx, rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.RentalResponse{}, failure.NotFound("rental")
		}

		s.log.Error(identifier, "get - %v", err)

		return dto.RentalResponse{}, failure.InternalError(err)
	}

	return dto.RentalFromEntity(rental), nil
}

func (s *rentalService) GetActiveRentals(ctx context.Context) ([]dto.RentalResponse, error) {
	active, malformed, err := s.rentals.GetActive(ctx)
	if err != nil {
		s.log.Error(identifier, "list active - %v", err)

		return nil, failure.InternalError(err)
	}

	for id, err := range malformed {
		s.log.Error(identifier, "list active - skipping rental "+id+": %v", err)
	}

	out := make([]dto.RentalResponse, 0, len(active))
	for _, rental := range active {
		out = append(out, dto.RentalFromEntity(rental))
	}

	return out, nil
}

func (s *rentalService) GetUserRentals(ctx context.Context, userID string) ([]dto.RentalResponse, error) {
	rentals, err := s.rentals.GetActiveByUser(ctx, userID)
	if err != nil {
		s.log.Error(identifier, "list user - %v", err)

		return nil, failure.InternalError(err)
	}

	out := make([]dto.RentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		out = append(out, dto.RentalFromEntity(rental))
	}

	return out, nil
}

func (s *rentalService) CalculateCost(ctx context.Context, consoleID string, hours int) (int, error) {
	console, err := s.consoles.Get(ctx, consoleID)
	if err != nil {
		if errors.Is(err, consolerepo.ErrNotFound) {
			return 0, failure.NotFound("console")
		}

		return 0, failure.InternalError(err)
	}

	if hours < 1 {
		hours = 1
	}

	return hours * console.RentalPrice, nil
}

package service

import (
	"context"

	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/dto"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/repository"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/failure"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

const identifier = "service - settings - %s"

type SettingsService interface {
	Get(ctx context.Context) (dto.SettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (dto.SettingsResponse, error)
}

type settingsService struct {
	repo *repository.Repository
	log  logger.Interface
}

func New(repo *repository.Repository, l logger.Interface) SettingsService {
	return &settingsService{
		repo: repo,
		log:  l,
	}
}

func (s *settingsService) Get(ctx context.Context) (dto.SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		s.log.Error(identifier, "get - %v", err)

		return dto.SettingsResponse{}, failure.InternalError(err)
	}

	return dto.SettingsFromEntity(settings), nil
}

// Update patches only the supplied fields. The scheduler picks the new values
// up on its next tick without a restart.
func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (dto.SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		s.log.Error(identifier, "update - %v", err)

		return dto.SettingsResponse{}, failure.InternalError(err)
	}

	if req.MaxRentalHours != nil {
		settings.MaxRentalHours = *req.MaxRentalHours
	}

	if req.ReminderHours != nil {
		settings.ReminderHours = *req.ReminderHours
	}

	if req.NotificationFrequency != nil {
		settings.NotificationFrequency = *req.NotificationFrequency
	}

	if req.PushNotificationsEnabled != nil {
		settings.PushNotificationsEnabled = *req.PushNotificationsEnabled
	}

	if req.CriticalNotificationsEnabled != nil {
		settings.CriticalNotificationsEnabled = *req.CriticalNotificationsEnabled
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		s.log.Error(identifier, "update - %v", err)

		return dto.SettingsResponse{}, failure.InternalError(err)
	}

	return dto.SettingsFromEntity(settings), nil
}

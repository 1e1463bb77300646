package dto

import "github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/repository"

type UpdateSettingsRequest struct {
	MaxRentalHours               *float64 `json:"max_rental_hours" validate:"omitempty,gt=0,lte=168"`
	ReminderHours                *float64 `json:"reminder_hours" validate:"omitempty,gt=0"`
	NotificationFrequency        *int     `json:"notification_frequency" validate:"omitempty,min=1,max=1440"`
	PushNotificationsEnabled     *bool    `json:"push_notifications_enabled"`
	CriticalNotificationsEnabled *bool    `json:"critical_notifications_enabled"`
}

type SettingsResponse struct {
	MaxRentalHours               float64 `json:"max_rental_hours"`
	ReminderHours                float64 `json:"reminder_hours"`
	NotificationFrequency        int     `json:"notification_frequency"`
	PushNotificationsEnabled     bool    `json:"push_notifications_enabled"`
	CriticalNotificationsEnabled bool    `json:"critical_notifications_enabled"`
}

func SettingsFromEntity(s repository.Settings) SettingsResponse {
	return SettingsResponse(s)
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yuliitezarygml/tg-bor-arend/pkg/store"
)

// settingsRecordID keys the single settings document inside the
// admin_settings collection.
const settingsRecordID = "settings"

// Settings is the admin-editable runtime configuration. The scheduler reads
// it fresh on every tick, so edits apply without a restart.
type Settings struct {
	MaxRentalHours               float64 `json:"max_rental_hours"`
	ReminderHours                float64 `json:"reminder_hours"`
	NotificationFrequency        int     `json:"notification_frequency"`
	PushNotificationsEnabled     bool    `json:"push_notifications_enabled"`
	CriticalNotificationsEnabled bool    `json:"critical_notifications_enabled"`
}

func Defaults() Settings {
	return Settings{
		MaxRentalHours:               24,
		ReminderHours:                23,
		NotificationFrequency:        5,
		PushNotificationsEnabled:     true,
		CriticalNotificationsEnabled: true,
	}
}

// TickInterval converts the notification frequency to a sleep duration,
// falling back to the default when the stored value is unusable.
func (s Settings) TickInterval() time.Duration {
	minutes := s.NotificationFrequency
	if minutes <= 0 {
		minutes = Defaults().NotificationFrequency
	}

	return time.Duration(minutes) * time.Minute
}

type Repository struct {
	store store.Store
}

func New(s store.Store) *Repository {
	return &Repository{store: s}
}

// Get loads the settings record, applying defaults for absent fields and
// returning pure defaults when the record or collection does not exist.
func (r *Repository) Get(ctx context.Context) (Settings, error) {
	records, err := r.store.Load(ctx, store.CollectionAdminSettings)
	if err != nil {
		return Settings{}, err
	}

	settings := Defaults()

	raw, ok := records[settingsRecordID]
	if !ok {
		return settings, nil
	}

	if err := json.Unmarshal(raw, &settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	if settings.MaxRentalHours <= 0 {
		settings.MaxRentalHours = Defaults().MaxRentalHours
	}

	return settings, nil
}

func (r *Repository) Save(ctx context.Context, settings Settings) error {
	records, err := r.store.Load(ctx, store.CollectionAdminSettings)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	records[settingsRecordID] = raw

	return r.store.Save(ctx, store.CollectionAdminSettings, records)
}

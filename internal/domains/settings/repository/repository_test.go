package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yuliitezarygml/tg-bor-arend/pkg/store"
	storemock "github.com/yuliitezarygml/tg-bor-arend/pkg/store/mock"
)

func TestRepository_Get(t *testing.T) {
	tests := []struct {
		name       string
		collection store.Collection
		expected   Settings
	}{
		{
			name:       "missing collection returns defaults",
			collection: store.Collection{},
			expected:   Defaults(),
		},
		{
			name: "missing record returns defaults",
			collection: store.Collection{
				"unrelated": json.RawMessage(`{}`),
			},
			expected: Defaults(),
		},
		{
			name: "partial record keeps defaults for absent fields",
			collection: store.Collection{
				"settings": json.RawMessage(`{"notification_frequency":1}`),
			},
			expected: Settings{
				MaxRentalHours:               24,
				ReminderHours:                23,
				NotificationFrequency:        1,
				PushNotificationsEnabled:     true,
				CriticalNotificationsEnabled: true,
			},
		},
		{
			name: "full record overrides everything",
			collection: store.Collection{
				"settings": json.RawMessage(`{"max_rental_hours":12,"reminder_hours":11,"notification_frequency":2,"push_notifications_enabled":false,"critical_notifications_enabled":false}`),
			},
			expected: Settings{
				MaxRentalHours:               12,
				ReminderHours:                11,
				NotificationFrequency:        2,
				PushNotificationsEnabled:     false,
				CriticalNotificationsEnabled: false,
			},
		},
		{
			name: "non-positive max rental hours is repaired",
			collection: store.Collection{
				"settings": json.RawMessage(`{"max_rental_hours":0,"notification_frequency":5,"push_notifications_enabled":true,"critical_notifications_enabled":true}`),
			},
			expected: Settings{
				MaxRentalHours:               24,
				ReminderHours:                0,
				NotificationFrequency:        5,
				PushNotificationsEnabled:     true,
				CriticalNotificationsEnabled: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := storemock.NewMockStore(ctrl)
			mockStore.EXPECT().Load(gomock.Any(), store.CollectionAdminSettings).Return(tt.collection, nil)

			got, err := New(mockStore).Get(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRepository_Get_MalformedRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storemock.NewMockStore(ctrl)
	mockStore.EXPECT().Load(gomock.Any(), store.CollectionAdminSettings).Return(store.Collection{
		"settings": json.RawMessage(`{"max_rental_hours":"lots"}`),
	}, nil)

	_, err := New(mockStore).Get(context.Background())

	assert.ErrorContains(t, err, "decode settings")
}

func TestRepository_Save_PreservesOtherRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	other := json.RawMessage(`{"theme":"dark"}`)

	mockStore := storemock.NewMockStore(ctrl)
	mockStore.EXPECT().Load(gomock.Any(), store.CollectionAdminSettings).Return(store.Collection{"ui": other}, nil)

	var saved store.Collection

	mockStore.EXPECT().Save(gomock.Any(), store.CollectionAdminSettings, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, c store.Collection) error {
			saved = c

			return nil
		})

	require.NoError(t, New(mockStore).Save(context.Background(), Defaults()))

	assert.Equal(t, other, saved["ui"])

	var got Settings
	require.NoError(t, json.Unmarshal(saved["settings"], &got))
	assert.Equal(t, Defaults(), got)
}

func TestSettings_TickInterval(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		expected time.Duration
	}{
		{name: "configured frequency", minutes: 2, expected: 2 * time.Minute},
		{name: "zero falls back to default", minutes: 0, expected: 5 * time.Minute},
		{name: "negative falls back to default", minutes: -3, expected: 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Settings{NotificationFrequency: tt.minutes}

			assert.Equal(t, tt.expected, s.TickInterval())
		})
	}
}

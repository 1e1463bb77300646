package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/dto"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/repository"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/store"
)

func newTestService(t *testing.T) SettingsService {
	t.Helper()

	st, err := store.NewFile(t.TempDir(), logger.New("error"))
	require.NoError(t, err)

	return New(repository.New(st), logger.New("error"))
}

func TestSettingsService_Get_Defaults(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.SettingsFromEntity(repository.Defaults()), got)
}

func TestSettingsService_Update_PatchesOnlySuppliedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	frequency := 2
	push := false

	got, err := svc.Update(ctx, dto.UpdateSettingsRequest{
		NotificationFrequency:    &frequency,
		PushNotificationsEnabled: &push,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, got.NotificationFrequency)
	assert.False(t, got.PushNotificationsEnabled)
	// Untouched fields keep their previous values.
	assert.Equal(t, float64(24), got.MaxRentalHours)
	assert.True(t, got.CriticalNotificationsEnabled)

	// The patch persists across reads.
	got, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NotificationFrequency)
	assert.False(t, got.PushNotificationsEnabled)
}

func TestSettingsService_Update_EmptyPatchIsNoop(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.Update(context.Background(), dto.UpdateSettingsRequest{})

	require.NoError(t, err)
	assert.Equal(t, dto.SettingsFromEntity(repository.Defaults()), got)
}

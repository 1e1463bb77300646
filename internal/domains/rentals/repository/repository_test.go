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

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}

func TestRepository_GetActive_SeparatesMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	active := Rental{ID: "r1", Status: StatusActive, StartTime: time.Now()}
	completed := Rental{ID: "r2", Status: StatusCompleted, StartTime: time.Now()}

	mockStore := storemock.NewMockStore(ctrl)
	mockStore.EXPECT().Load(gomock.Any(), store.CollectionRentals).Return(store.Collection{
		"r1":  raw(t, active),
		"r2":  raw(t, completed),
		"bad": json.RawMessage(`{"start_time":123}`),
	}, nil)

	got, malformed, err := New(mockStore).GetActive(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got["r1"].ID)
	require.Len(t, malformed, 1)
	assert.Contains(t, malformed, "bad")
}

func TestRepository_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storemock.NewMockStore(ctrl)
	mockStore.EXPECT().Load(gomock.Any(), store.CollectionRentals).Return(store.Collection{}, nil)

	_, err := New(mockStore).Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storemock.NewMockStore(ctrl)
	mockStore.EXPECT().Load(gomock.Any(), store.CollectionRentals).Return(store.Collection{}, nil)

	err := New(mockStore).Update(context.Background(), Rental{ID: "ghost"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetActiveByConsole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storemock.NewMockStore(ctrl)
	mockStore.EXPECT().Load(gomock.Any(), store.CollectionRentals).Return(store.Collection{
		"r1": raw(t, Rental{ID: "r1", ConsoleID: "c1", Status: StatusActive}),
		"r2": raw(t, Rental{ID: "r2", ConsoleID: "c1", Status: StatusCompleted}),
	}, nil).Times(2)

	repo := New(mockStore)

	rental, found, err := repo.GetActiveByConsole(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "r1", rental.ID)

	_, found, err = repo.GetActiveByConsole(context.Background(), "c2")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRequestRepository_PurgeTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -30)

	oldApproved := RentalRequest{ID: "q1", Status: RequestStatusApproved, CreatedAt: cutoff.AddDate(0, 0, -1)}
	oldPending := RentalRequest{ID: "q2", Status: RequestStatusPending, CreatedAt: cutoff.AddDate(0, 0, -1)}
	freshRejected := RentalRequest{ID: "q3", Status: RequestStatusRejected, CreatedAt: now}

	mockStore := storemock.NewMockStore(ctrl)
	mockStore.EXPECT().Load(gomock.Any(), store.CollectionRentalRequests).Return(store.Collection{
		"q1": raw(t, oldApproved),
		"q2": raw(t, oldPending),
		"q3": raw(t, freshRejected),
	}, nil)

	var saved store.Collection

	mockStore.EXPECT().Save(gomock.Any(), store.CollectionRentalRequests, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, c store.Collection) error {
			saved = c

			return nil
		})

	removed, err := NewRequests(mockStore).PurgeTerminal(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NotContains(t, saved, "q1")
	// Pending requests are never purged regardless of age.
	assert.Contains(t, saved, "q2")
	assert.Contains(t, saved, "q3")
}

func TestRequestRepository_PurgeTerminal_NothingToRemove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storemock.NewMockStore(ctrl)
	mockStore.EXPECT().Load(gomock.Any(), store.CollectionRentalRequests).Return(store.Collection{
		"q1": raw(t, RentalRequest{ID: "q1", Status: RequestStatusPending, CreatedAt: time.Now()}),
	}, nil)

	// No save when nothing was removed.
	removed, err := NewRequests(mockStore).PurgeTerminal(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRentalRequest_Terminal(t *testing.T) {
	assert.False(t, RentalRequest{Status: RequestStatusPending}.Terminal())
	assert.True(t, RentalRequest{Status: RequestStatusApproved}.Terminal())
	assert.True(t, RentalRequest{Status: RequestStatusRejected}.Terminal())
	assert.True(t, RentalRequest{Status: RequestStatusCancelled}.Terminal())
}

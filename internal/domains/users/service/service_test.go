package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/dto"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/repository"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/failure"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/store"
)

func newTestService(t *testing.T) (UserService, *repository.Repository) {
	t.Helper()

	st, err := store.NewFile(t.TempDir(), logger.New("error"))
	require.NoError(t, err)

	repo := repository.New(st)

	return New(repo, logger.New("error")), repo
}

func TestUserService_Register_FirstContact(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Register(context.Background(), dto.RegisterUserRequest{
		ID:        "12345",
		FirstName: "Ion",
		FullName:  "Ion Popescu",
	})

	require.NoError(t, err)
	assert.Equal(t, "12345", got.ID)
	assert.Equal(t, "Ion Popescu", got.FullName)
	assert.Zero(t, got.TotalSpent)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUserService_Register_RepeatContactKeepsStats(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, repository.User{
		ID: "12345", FirstName: "Ion", TotalSpent: 750,
	}))

	got, err := svc.Register(ctx, dto.RegisterUserRequest{
		ID:          "12345",
		PhoneNumber: "+37360000000",
	})

	require.NoError(t, err)
	assert.Equal(t, "+37360000000", got.PhoneNumber)
	// Profile refresh never resets what the user already spent.
	assert.Equal(t, 750, got.TotalSpent)
	assert.Equal(t, "Ion", got.FirstName)
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "ghost")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestUserService_GetAll_SortedByID(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, repository.User{ID: "2"}))
	require.NoError(t, repo.Upsert(ctx, repository.User{ID: "1"}))
	require.NoError(t, repo.Upsert(ctx, repository.User{ID: "3"}))

	got, err := svc.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[2].ID)
}

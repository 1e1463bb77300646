package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	consolerepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/repository"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/repository"
	userrepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/repository"
)

func TestIsExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		status   string
		maxHours float64
		want     bool
	}{
		{
			name:     "just under the limit",
			start:    now.Add(-23*time.Hour - 59*time.Minute),
			status:   repository.StatusActive,
			maxHours: 24,
			want:     false,
		},
		{
			name:     "just over the limit",
			start:    now.Add(-24*time.Hour - time.Minute),
			status:   repository.StatusActive,
			maxHours: 24,
			want:     true,
		},
		{
			name:     "exactly at the limit",
			start:    now.Add(-24 * time.Hour),
			status:   repository.StatusActive,
			maxHours: 24,
			want:     true,
		},
		{
			name:     "completed rental never expires",
			start:    now.Add(-48 * time.Hour),
			status:   repository.StatusCompleted,
			maxHours: 24,
			want:     false,
		},
		{
			name:     "shortened limit",
			start:    now.Add(-3 * time.Hour),
			status:   repository.StatusActive,
			maxHours: 2,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := repository.Rental{StartTime: tt.start, Status: tt.status}

			assert.Equal(t, tt.want, IsExpired(r, now, tt.maxHours))
		})
	}
}

func TestBilledCost(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		elapsed     time.Duration
		price       int
		wantCost    int
		wantBilled  int
	}{
		{name: "minimum one hour", elapsed: 12 * time.Minute, price: 150, wantCost: 150, wantBilled: 1},
		{name: "partial hours round down", elapsed: 2*time.Hour + 59*time.Minute, price: 150, wantCost: 300, wantBilled: 2},
		{name: "whole hours", elapsed: 25 * time.Hour, price: 150, wantCost: 3750, wantBilled: 25},
		{name: "zero price fallback", elapsed: 5 * time.Hour, price: 0, wantCost: 0, wantBilled: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, billed := BilledCost(now.Add(-tt.elapsed), tt.price, now)

			assert.Equal(t, tt.wantCost, cost)
			assert.Equal(t, tt.wantBilled, billed)
		})
	}
}

func TestExpireRental(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	rental := repository.Rental{
		ID:        "r1",
		UserID:    "u1",
		ConsoleID: "c1",
		StartTime: now.Add(-25 * time.Hour),
		Status:    repository.StatusActive,
	}
	console := consolerepo.Console{
		ID:          "c1",
		Name:        "PlayStation 5",
		RentalPrice: 150,
		Status:      consolerepo.StatusRented,
	}
	user := userrepo.User{ID: "u1", TotalSpent: 500}

	updatedRental, updatedConsole, updatedUser := ExpireRental(rental, console, user, now)

	assert.Equal(t, repository.StatusCompleted, updatedRental.Status)
	assert.Equal(t, repository.EndedBySystemTimeout, updatedRental.EndedBy)
	if assert.NotNil(t, updatedRental.EndTime) {
		assert.Equal(t, now, *updatedRental.EndTime)
	}
	assert.Equal(t, 3750, updatedRental.TotalCost)

	assert.Equal(t, consolerepo.StatusAvailable, updatedConsole.Status)
	assert.Equal(t, 500+3750, updatedUser.TotalSpent)

	// Inputs stay untouched so callers keep the pre-state for messages.
	assert.Equal(t, repository.StatusActive, rental.Status)
	assert.Equal(t, consolerepo.StatusRented, console.Status)
	assert.Equal(t, 500, user.TotalSpent)
}

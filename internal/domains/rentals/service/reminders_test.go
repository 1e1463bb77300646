package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/repository"
)

func TestStageReminder_Windows(t *testing.T) {
	tests := []struct {
		name      string
		remaining float64
		wantTier  string
		wantFired bool
	}{
		{name: "well before any window", remaining: 5.0, wantFired: false},
		{name: "two hour window upper edge", remaining: 2.0, wantTier: "2_hours", wantFired: true},
		{name: "two hour window", remaining: 1.7, wantTier: "2_hours", wantFired: true},
		{name: "gap between 2h and 1h windows", remaining: 1.2, wantFired: false},
		{name: "one hour window", remaining: 0.9, wantTier: "1_hour", wantFired: true},
		{name: "thirty minute window", remaining: 0.4, wantTier: "30_minutes", wantFired: true},
		{name: "ten minute window", remaining: 0.15, wantTier: "10_minutes", wantFired: true},
		{name: "below all windows", remaining: 0.05, wantFired: false},
		{name: "overdue", remaining: -1.0, wantFired: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := repository.Rental{ID: "r1", Status: repository.StatusActive}

			tier, _, fired := StageReminder(r, tt.remaining, true)

			assert.Equal(t, tt.wantFired, fired)
			if tt.wantFired {
				assert.Equal(t, tt.wantTier, tier.Name)
			}
		})
	}
}

func TestStageReminder_ExactlyOneFlagSet(t *testing.T) {
	r := repository.Rental{ID: "r1", Status: repository.StatusActive}

	// Inside the 1-hour window: the 2-hour window has already passed and the
	// lower tiers have not been reached yet.
	_, updated, fired := StageReminder(r, 0.9, true)

	assert.True(t, fired)
	assert.False(t, updated.Reminder2hSent)
	assert.True(t, updated.Reminder1hSent)
	assert.False(t, updated.Reminder30mSent)
	assert.False(t, updated.Reminder10mSent)
}

func TestStageReminder_Idempotent(t *testing.T) {
	r := repository.Rental{ID: "r1", Status: repository.StatusActive, Reminder1hSent: true}

	_, updated, fired := StageReminder(r, 0.8, true)

	assert.False(t, fired)
	assert.Equal(t, r, updated)
}

func TestStageReminder_MissedWindowsNeverFireLate(t *testing.T) {
	// A scheduler that was down through the 2h and 1h windows observes the
	// rental inside the 30m window: only that tier fires.
	r := repository.Rental{ID: "r1", Status: repository.StatusActive}

	tier, updated, fired := StageReminder(r, 0.3, true)

	assert.True(t, fired)
	assert.Equal(t, "30_minutes", tier.Name)
	assert.False(t, updated.Reminder2hSent)
	assert.False(t, updated.Reminder1hSent)
	assert.True(t, updated.Reminder30mSent)
}

func TestStageReminder_CriticalGate(t *testing.T) {
	r := repository.Rental{ID: "r1", Status: repository.StatusActive}

	t.Run("disabled critical notifications suppress the tier", func(t *testing.T) {
		_, updated, fired := StageReminder(r, 0.15, false)

		assert.False(t, fired)
		// The flag stays unset, so the window can still fire later if the
		// admin re-enables critical notifications.
		assert.False(t, updated.Reminder10mSent)
	})

	t.Run("only the critical tier is gated", func(t *testing.T) {
		_, updated, fired := StageReminder(r, 0.4, false)

		assert.True(t, fired)
		assert.True(t, updated.Reminder30mSent)
	})
}

func TestTierMessages(t *testing.T) {
	var critical, high, info Tier

	for _, tier := range reminderTiers {
		switch tier.Urgency {
		case urgencyCritical:
			critical = tier
		case urgencyHigh:
			high = tier
		case urgencyInfo:
			info = tier
		}
	}

	t.Run("critical sends two messages", func(t *testing.T) {
		msgs := critical.Messages("PlayStation 5", 450, "r1")

		assert.Len(t, msgs, 2)
		assert.Equal(t, criticalAlertHeader, msgs[0])
		assert.Contains(t, msgs[1], "PlayStation 5")
		assert.Contains(t, msgs[1], "450")
		assert.Contains(t, msgs[1], "/end r1")
	})

	t.Run("high carries the live cost", func(t *testing.T) {
		msgs := high.Messages("PlayStation 5", 300, "r1")

		assert.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "300")
	})

	t.Run("info has no cost line", func(t *testing.T) {
		msgs := info.Messages("PlayStation 5", 300, "r1")

		assert.Len(t, msgs, 1)
		assert.NotContains(t, msgs[0], "Current cost")
	})
}

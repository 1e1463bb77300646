package service

import (
	"math"
	"time"

	consolerepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/repository"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/repository"
	userrepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/repository"
)

// Lifecycle decisions are pure functions of the rental record and a supplied
// clock. The scheduler and the manual end-rental path share them so billing
// cannot drift between the two.

// ElapsedHours is the wall-clock rental duration in fractional hours.
func ElapsedHours(start, now time.Time) float64 {
	return now.Sub(start).Hours()
}

// IsExpired reports whether an active rental has run past the admin limit.
func IsExpired(r repository.Rental, now time.Time, maxHours float64) bool {
	return r.Active() && ElapsedHours(r.StartTime, now) >= maxHours
}

// BilledCost charges whole elapsed hours with a one hour minimum: partial
// hours round down, but a rental is never billed for less than one hour.
func BilledCost(start time.Time, pricePerHour int, now time.Time) (cost, billedHours int) {
	billedHours = int(math.Floor(ElapsedHours(start, now)))
	if billedHours < 1 {
		billedHours = 1
	}

	return billedHours * pricePerHour, billedHours
}

// ExpireRental produces the post-expiry state of the rental, its console and
// its user. Inputs are taken by value, so callers keep the pre-state for
// notification text.
func ExpireRental(r repository.Rental, c consolerepo.Console, u userrepo.User, now time.Time) (repository.Rental, consolerepo.Console, userrepo.User) {
	cost, _ := BilledCost(r.StartTime, c.RentalPrice, now)

	end := now
	r.EndTime = &end
	r.Status = repository.StatusCompleted
	r.TotalCost = cost
	r.EndedBy = repository.EndedBySystemTimeout

	c.Status = consolerepo.StatusAvailable

	u.TotalSpent += cost

	return r, c, u
}

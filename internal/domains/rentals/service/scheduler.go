package service

import (
	"context"
	"sync"
	"time"

	consolerepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/repository"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/repository"
	settingsrepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/repository"
	userrepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/repository"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/notifier"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/store"
)

const schedulerIdentifier = "scheduler - %s"

// Scheduler runs the rental expiration loop: every tick it re-reads the admin
// settings, sweeps the active rentals, auto-ends the overdue ones with a
// billing calculation and stages the one-shot reminder tiers.
//
// The collection store gives no cross-writer guarantees: a manual end-rental
// racing this loop within one tick window is last-write-wins. A crash between
// a dispatched notification and the batched save can repeat that one send
// after restart.
type Scheduler struct {
	rentals  *repository.Repository
	consoles *consolerepo.Repository
	users    *userrepo.Repository
	settings *settingsrepo.Repository
	notifier notifier.Notifier
	log      logger.Interface
	now      func() time.Time
	newTimer func(time.Duration) *time.Timer

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

func NewScheduler(
	rentals *repository.Repository,
	consoles *consolerepo.Repository,
	users *userrepo.Repository,
	settings *settingsrepo.Repository,
	n notifier.Notifier,
	l logger.Interface,
) *Scheduler {
	return &Scheduler{
		rentals:  rentals,
		consoles: consoles,
		users:    users,
		settings: settings,
		notifier: n,
		log:      l,
		now:      time.Now,
		newTimer: time.NewTimer,
	}
}

// Start launches the background loop. Calling Start while the loop is already
// running is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(s.stop, s.done)

	s.log.Info(schedulerIdentifier, "started")
}

// Stop signals the loop to exit and blocks until it has. An in-flight tick
// finishes; a sleeping loop wakes immediately.
func (s *Scheduler) Stop() {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()

		return
	}

	s.running = false
	close(s.stop)
	done := s.done

	s.mu.Unlock()

	<-done

	s.log.Info(schedulerIdentifier, "stopped")
}

func (s *Scheduler) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		ctx := context.Background()

		if err := s.Tick(ctx); err != nil {
			s.log.Error(schedulerIdentifier, "tick failed, retrying next cycle: %v", err)
		}

		// The sleep interval is re-read every cycle, so an admin change to
		// the notification frequency applies from the next sleep on.
		interval := settingsrepo.Defaults().TickInterval()
		if settings, err := s.settings.Get(ctx); err == nil {
			interval = settings.TickInterval()
		}

		timer := s.newTimer(interval)
		select {
		case <-stop:
			timer.Stop()

			return
		case <-timer.C:
		}
	}
}

// Tick runs one check-and-notify cycle: fresh settings, load the three
// collections, evaluate every active rental, then persist all three in one
// batched write iff anything mutated.
func (s *Scheduler) Tick(ctx context.Context) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}

	rentals, err := s.rentals.LoadRaw(ctx)
	if err != nil {
		return err
	}

	consoles, err := s.consoles.LoadRaw(ctx)
	if err != nil {
		return err
	}

	users, err := s.users.LoadRaw(ctx)
	if err != nil {
		return err
	}

	now := s.now()
	mutated := false

	for id, raw := range rentals {
		rental, err := repository.Decode(raw)
		if err != nil {
			// One malformed record must not abort the rest of the batch.
			s.log.Error(schedulerIdentifier, "skipping rental "+id+": %v", err)

			continue
		}

		if !rental.Active() {
			continue
		}

		if IsExpired(rental, now, settings.MaxRentalHours) {
			if s.expire(ctx, rental, rentals, consoles, users, now) {
				mutated = true
			}

			continue
		}

		if !settings.PushNotificationsEnabled {
			continue
		}

		remaining := settings.MaxRentalHours - ElapsedHours(rental.StartTime, now)

		tier, updated, fired := StageReminder(rental, remaining, settings.CriticalNotificationsEnabled)
		if !fired {
			continue
		}

		if s.stageDispatch(ctx, tier, updated, consoles, now, rentals) {
			mutated = true
		}
	}

	if !mutated {
		return nil
	}

	// One batched save per collection per tick. A failed save is logged and
	// the records are simply re-evaluated on the next successful tick.
	if err := s.rentals.SaveRaw(ctx, rentals); err != nil {
		return err
	}

	if err := s.consoles.SaveRaw(ctx, consoles); err != nil {
		return err
	}

	if err := s.users.SaveRaw(ctx, users); err != nil {
		return err
	}

	return nil
}

// expire applies the lifecycle transition to one overdue rental inside the
// in-memory collections and dispatches the auto-end notifications.
func (s *Scheduler) expire(ctx context.Context, rental repository.Rental, rentals, consoles, users store.Collection, now time.Time) bool {
	console, consoleFound := s.lookupConsole(consoles, rental.ConsoleID)
	user, userFound := s.lookupUser(users, rental.UserID)

	updatedRental, updatedConsole, updatedUser := ExpireRental(rental, console, user, now)
	cost, billedHours := BilledCost(rental.StartTime, console.RentalPrice, now)

	raw, err := repository.Encode(updatedRental)
	if err != nil {
		s.log.Error(schedulerIdentifier, "%v", err)

		return false
	}

	rentals[rental.ID] = raw

	if consoleFound {
		if raw, err := consolerepo.Encode(updatedConsole); err == nil {
			consoles[console.ID] = raw
		}
	}

	if userFound {
		if raw, err := userrepo.Encode(updatedUser); err == nil {
			users[user.ID] = raw
		}
	}

	s.log.Info(schedulerIdentifier, "auto-ended rental "+rental.ID+" (time limit exceeded)")

	// Fire-and-forget: a failed send never blocks persistence or the rest of
	// the batch.
	if err := s.notifier.SendToUser(ctx, rental.UserID, autoEndUserMessage(console.Name, billedHours, cost)); err != nil {
		s.log.Error(schedulerIdentifier, "auto-end user notification: %v", err)
	}

	if err := s.notifier.SendToAdmin(ctx, autoEndAdminMessage(user, console, billedHours, cost)); err != nil {
		s.log.Error(schedulerIdentifier, "auto-end admin notification: %v", err)
	}

	return true
}

// stageDispatch sends a fired reminder tier and records the one-shot flag in
// the in-memory rentals collection so the batched save persists it.
func (s *Scheduler) stageDispatch(ctx context.Context, tier Tier, rental repository.Rental, consoles store.Collection, now time.Time, rentals store.Collection) bool {
	console, _ := s.lookupConsole(consoles, rental.ConsoleID)

	currentCost, _ := BilledCost(rental.StartTime, console.RentalPrice, now)

	raw, err := repository.Encode(rental)
	if err != nil {
		s.log.Error(schedulerIdentifier, "%v", err)

		return false
	}

	rentals[rental.ID] = raw

	for _, text := range tier.Messages(console.Name, currentCost, rental.ID) {
		if err := s.notifier.SendToUser(ctx, rental.UserID, text); err != nil {
			s.log.Error(schedulerIdentifier, "reminder notification: %v", err)

			break
		}
	}

	s.log.Info(schedulerIdentifier, "reminder "+tier.Name+" sent for rental "+rental.ID)

	return true
}

// lookupConsole resolves a rental's console, substituting a display fallback
// with zero price when the reference dangles.
func (s *Scheduler) lookupConsole(consoles store.Collection, id string) (consolerepo.Console, bool) {
	raw, ok := consoles[id]
	if !ok {
		s.log.Warn(schedulerIdentifier, "console "+id+" not found, using fallback")

		return consolerepo.Console{ID: id, Name: "Unknown console", Status: consolerepo.StatusRented}, false
	}

	console, err := consolerepo.Decode(raw)
	if err != nil {
		s.log.Error(schedulerIdentifier, "console "+id+": %v", err)

		return consolerepo.Console{ID: id, Name: "Unknown console", Status: consolerepo.StatusRented}, false
	}

	return console, true
}

func (s *Scheduler) lookupUser(users store.Collection, id string) (userrepo.User, bool) {
	raw, ok := users[id]
	if !ok {
		s.log.Warn(schedulerIdentifier, "user "+id+" not found, using fallback")

		return userrepo.User{ID: id}, false
	}

	user, err := userrepo.Decode(raw)
	if err != nil {
		s.log.Error(schedulerIdentifier, "user "+id+": %v", err)

		return userrepo.User{ID: id}, false
	}

	return user, true
}

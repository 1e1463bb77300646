package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yuliitezarygml/tg-bor-arend/pkg/store"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"

	EndedByUser          = "user"
	EndedByAdmin         = "admin"
	EndedBySystemTimeout = "system_timeout"
)

var ErrNotFound = errors.New("rental not found")

type Rental struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	ConsoleID     string     `json:"console_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Status        string     `json:"status"`
	TotalCost     int        `json:"total_cost"`
	EndedBy       string     `json:"ended_by,omitempty"`
	SelectedHours int        `json:"selected_hours,omitempty"`

	// One-shot reminder flags. Set at most once, never cleared; each gates a
	// single notification tier for this rental's lifetime.
	Reminder2hSent  bool `json:"reminder_2h_sent,omitempty"`
	Reminder1hSent  bool `json:"reminder_1h_sent,omitempty"`
	Reminder30mSent bool `json:"reminder_30m_sent,omitempty"`
	Reminder10mSent bool `json:"reminder_10m_sent,omitempty"`
}

func (r Rental) Active() bool {
	return r.Status == StatusActive
}

type Repository struct {
	store store.Store
}

func New(s store.Store) *Repository {
	return &Repository{store: s}
}

func Decode(raw json.RawMessage) (Rental, error) {
	var r Rental
	if err := json.Unmarshal(raw, &r); err != nil {
		return Rental{}, fmt.Errorf("decode rental: %w", err)
	}

	return r, nil
}

func Encode(r Rental) (json.RawMessage, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode rental %s: %w", r.ID, err)
	}

	return raw, nil
}

// LoadRaw returns the rentals collection undecoded. The scheduler decodes
// record by record so one malformed document cannot poison a whole tick.
func (r *Repository) LoadRaw(ctx context.Context) (store.Collection, error) {
	return r.store.Load(ctx, store.CollectionRentals)
}

func (r *Repository) SaveRaw(ctx context.Context, records store.Collection) error {
	return r.store.Save(ctx, store.CollectionRentals, records)
}

func (r *Repository) Get(ctx context.Context, id string) (Rental, error) {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return Rental{}, err
	}

	raw, ok := records[id]
	if !ok {
		return Rental{}, ErrNotFound
	}

	return Decode(raw)
}

func (r *Repository) Create(ctx context.Context, rental Rental) error {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return err
	}

	raw, err := Encode(rental)
	if err != nil {
		return err
	}

	records[rental.ID] = raw

	return r.SaveRaw(ctx, records)
}

func (r *Repository) Update(ctx context.Context, rental Rental) error {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return err
	}

	if _, ok := records[rental.ID]; !ok {
		return ErrNotFound
	}

	raw, err := Encode(rental)
	if err != nil {
		return err
	}

	records[rental.ID] = raw

	return r.SaveRaw(ctx, records)
}

// GetActive returns the decodable active rentals. Malformed records are
// reported through the returned map of decode errors keyed by record id.
func (r *Repository) GetActive(ctx context.Context) (map[string]Rental, map[string]error, error) {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return nil, nil, err
	}

	active := make(map[string]Rental)
	malformed := make(map[string]error)

	for id, raw := range records {
		rental, err := Decode(raw)
		if err != nil {
			malformed[id] = err

			continue
		}

		if rental.Active() {
			active[id] = rental
		}
	}

	return active, malformed, nil
}

// GetActiveByUser lists a user's running rentals.
func (r *Repository) GetActiveByUser(ctx context.Context, userID string) ([]Rental, error) {
	active, _, err := r.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	var out []Rental
	for _, rental := range active {
		if rental.UserID == userID {
			out = append(out, rental)
		}
	}

	return out, nil
}

// GetActiveByConsole returns the single active rental holding a console, if any.
func (r *Repository) GetActiveByConsole(ctx context.Context, consoleID string) (Rental, bool, error) {
	active, _, err := r.GetActive(ctx)
	if err != nil {
		return Rental{}, false, err
	}

	for _, rental := range active {
		if rental.ConsoleID == consoleID {
			return rental, true, nil
		}
	}

	return Rental{}, false, nil
}

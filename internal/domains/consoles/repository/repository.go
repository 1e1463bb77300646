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
	StatusAvailable = "available"
	StatusRented    = "rented"
)

var ErrNotFound = errors.New("console not found")

type Console struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Model       string    `json:"model"`
	Games       []string  `json:"games,omitempty"`
	RentalPrice int       `json:"rental_price"`
	SalePrice   int       `json:"sale_price,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Repository struct {
	store store.Store
}

func New(s store.Store) *Repository {
	return &Repository{store: s}
}

// Decode parses one raw console record.
func Decode(raw json.RawMessage) (Console, error) {
	var c Console
	if err := json.Unmarshal(raw, &c); err != nil {
		return Console{}, fmt.Errorf("decode console: %w", err)
	}

	return c, nil
}

// Encode serializes a console back into its collection document.
func Encode(c Console) (json.RawMessage, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode console %s: %w", c.ID, err)
	}

	return raw, nil
}

// LoadRaw returns the consoles collection without decoding, for callers that
// mutate a few records and write the whole set back.
func (r *Repository) LoadRaw(ctx context.Context) (store.Collection, error) {
	return r.store.Load(ctx, store.CollectionConsoles)
}

func (r *Repository) SaveRaw(ctx context.Context, records store.Collection) error {
	return r.store.Save(ctx, store.CollectionConsoles, records)
}

func (r *Repository) GetAll(ctx context.Context) (map[string]Console, error) {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return nil, err
	}

	consoles := make(map[string]Console, len(records))
	for id, raw := range records {
		c, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("console %s: %w", id, err)
		}

		consoles[id] = c
	}

	return consoles, nil
}

func (r *Repository) Get(ctx context.Context, id string) (Console, error) {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return Console{}, err
	}

	raw, ok := records[id]
	if !ok {
		return Console{}, ErrNotFound
	}

	return Decode(raw)
}

func (r *Repository) Create(ctx context.Context, c Console) error {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return err
	}

	raw, err := Encode(c)
	if err != nil {
		return err
	}

	records[c.ID] = raw

	return r.SaveRaw(ctx, records)
}

func (r *Repository) Update(ctx context.Context, c Console) error {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return err
	}

	if _, ok := records[c.ID]; !ok {
		return ErrNotFound
	}

	raw, err := Encode(c)
	if err != nil {
		return err
	}

	records[c.ID] = raw

	return r.SaveRaw(ctx, records)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return err
	}

	if _, ok := records[id]; !ok {
		return ErrNotFound
	}

	delete(records, id)

	return r.SaveRaw(ctx, records)
}

// SetStatus flips a console's availability flag in place.
func (r *Repository) SetStatus(ctx context.Context, id, status string) error {
	c, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	c.Status = status

	return r.Update(ctx, c)
}

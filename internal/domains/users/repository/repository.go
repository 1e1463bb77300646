package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yuliitezarygml/tg-bor-arend/pkg/store"
)

var ErrNotFound = errors.New("user not found")

// User is keyed by Telegram chat id, carried as a string.
type User struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name,omitempty"`
	FullName    string    `json:"full_name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	TotalSpent  int       `json:"total_spent"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayName prefers the full name, falling back per the bot's registration
// data shape.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}

	if u.FirstName != "" {
		return u.FirstName
	}

	return "Unknown user"
}

type Repository struct {
	store store.Store
}

func New(s store.Store) *Repository {
	return &Repository{store: s}
}

func Decode(raw json.RawMessage) (User, error) {
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}

	return u, nil
}

func Encode(u User) (json.RawMessage, error) {
	raw, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("encode user %s: %w", u.ID, err)
	}

	return raw, nil
}

func (r *Repository) LoadRaw(ctx context.Context) (store.Collection, error) {
	return r.store.Load(ctx, store.CollectionUsers)
}

func (r *Repository) SaveRaw(ctx context.Context, records store.Collection) error {
	return r.store.Save(ctx, store.CollectionUsers, records)
}

func (r *Repository) GetAll(ctx context.Context) (map[string]User, error) {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return nil, err
	}

	users := make(map[string]User, len(records))
	for id, raw := range records {
		u, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", id, err)
		}

		users[id] = u
	}

	return users, nil
}

func (r *Repository) Get(ctx context.Context, id string) (User, error) {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return User{}, err
	}

	raw, ok := records[id]
	if !ok {
		return User{}, ErrNotFound
	}

	return Decode(raw)
}

// Upsert creates or replaces a user record.
func (r *Repository) Upsert(ctx context.Context, u User) error {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return err
	}

	raw, err := Encode(u)
	if err != nil {
		return err
	}

	records[u.ID] = raw

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

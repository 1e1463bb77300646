package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yuliitezarygml/tg-bor-arend/pkg/store"
)

const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusCancelled = "cancelled"
)

// RentalRequest is a user's ask to rent a console, pending admin approval.
type RentalRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ConsoleID string    `json:"console_id"`
	Hours     int       `json:"hours"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (rr RentalRequest) Terminal() bool {
	switch rr.Status {
	case RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled:
		return true
	}

	return false
}

type RequestRepository struct {
	store store.Store
}

func NewRequests(s store.Store) *RequestRepository {
	return &RequestRepository{store: s}
}

func (r *RequestRepository) LoadRaw(ctx context.Context) (store.Collection, error) {
	return r.store.Load(ctx, store.CollectionRentalRequests)
}

func (r *RequestRepository) SaveRaw(ctx context.Context, records store.Collection) error {
	return r.store.Save(ctx, store.CollectionRentalRequests, records)
}

func (r *RequestRepository) GetAll(ctx context.Context) (map[string]RentalRequest, error) {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return nil, err
	}

	requests := make(map[string]RentalRequest, len(records))
	for id, raw := range records {
		var rr RentalRequest
		if err := json.Unmarshal(raw, &rr); err != nil {
			return nil, fmt.Errorf("decode rental request %s: %w", id, err)
		}

		requests[id] = rr
	}

	return requests, nil
}

func (r *RequestRepository) Put(ctx context.Context, rr RentalRequest) error {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(rr)
	if err != nil {
		return fmt.Errorf("encode rental request %s: %w", rr.ID, err)
	}

	records[rr.ID] = raw

	return r.SaveRaw(ctx, records)
}

// PurgeTerminal drops terminal requests older than the retention window and
// returns how many were removed.
func (r *RequestRepository) PurgeTerminal(ctx context.Context, olderThan time.Time) (int, error) {
	records, err := r.LoadRaw(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for id, raw := range records {
		var rr RentalRequest
		if err := json.Unmarshal(raw, &rr); err != nil {
			continue
		}

		if rr.Terminal() && rr.CreatedAt.Before(olderThan) {
			delete(records, id)
			removed++
		}
	}

	if removed == 0 {
		return 0, nil
	}

	return removed, r.SaveRaw(ctx, records)
}

// Package store provides the collection store the rental domains persist
// through: whole collections of JSON records keyed by id, loaded and saved as
// a unit with last-writer-wins semantics.
package store

import (
	"context"
	"encoding/json"
)

//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mock/store_mock.go -package=mock github.com/yuliitezarygml/tg-bor-arend/pkg/store Store

// Collection names used across the service.
const (
	CollectionConsoles       = "consoles"
	CollectionUsers          = "users"
	CollectionRentals        = "rentals"
	CollectionRentalRequests = "rental_requests"
	CollectionAdminSettings  = "admin_settings"
)

// Collection maps record id to the raw record document. Decoding into typed
// entities happens in the repositories, not here.
type Collection = map[string]json.RawMessage

type Store interface {
	// Load returns the named collection. A collection that does not exist yet
	// loads as an empty map, not an error.
	Load(ctx context.Context, collection string) (Collection, error)
	// Save replaces the named collection wholesale.
	Save(ctx context.Context, collection string, records Collection) error
}

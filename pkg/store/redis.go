package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

const redisKeyPrefix = "collections:"

// redisStore keeps each collection as a Redis hash: field = record id,
// value = JSON document.
type redisStore struct {
	client *redis.Client
	log    logger.Interface
}

func NewRedis(client *redis.Client, log logger.Interface) Store {
	return &redisStore{
		client: client,
		log:    log,
	}
}

func (s *redisStore) Load(ctx context.Context, collection string) (Collection, error) {
	values, err := s.client.HGetAll(ctx, redisKeyPrefix+collection).Result()
	if err != nil {
		s.log.Error("store - redis - load %s: %v", collection, err)

		return nil, fmt.Errorf("store: load %s: %w", collection, err)
	}

	records := make(Collection, len(values))
	for id, raw := range values {
		records[id] = json.RawMessage(raw)
	}

	return records, nil
}

func (s *redisStore) Save(ctx context.Context, collection string, records Collection) error {
	key := redisKeyPrefix + collection

	// Del + HSet in one transaction so readers never observe a half-written
	// collection.
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)

	if len(records) > 0 {
		values := make(map[string]interface{}, len(records))
		for id, raw := range records {
			values[id] = string(raw)
		}

		pipe.HSet(ctx, key, values)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error("store - redis - save %s: %v", collection, err)

		return fmt.Errorf("store: save %s: %w", collection, err)
	}

	return nil
}

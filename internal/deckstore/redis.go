package deckstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/notescan/config"
	"github.com/mohammad-safakhou/notescan/models"
)

const deckKeyPrefix = "deck:"

// RedisBackend stores decks as JSON blobs with a TTL, for deployments where
// the API runs as more than one replica behind the extension.
type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBackend(ctx context.Context, cfg config.RedisConfig) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:    cfg.Pass,
		DB:          cfg.DB,
		DialTimeout: cfg.Timeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed (%s:%s): %w", cfg.Host, cfg.Port, err)
	}
	return &RedisBackend{client: client, ttl: cfg.TTL}, nil
}

func (b *RedisBackend) Save(ctx context.Context, deck *models.SlideDeck) error {
	data, err := json.Marshal(deck)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, deckKeyPrefix+deck.ID, data, b.ttl).Err()
}

func (b *RedisBackend) Get(ctx context.Context, id string) (*models.SlideDeck, error) {
	data, err := b.client.Get(ctx, deckKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrDeckNotFound
	}
	if err != nil {
		return nil, err
	}
	var deck models.SlideDeck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

func (b *RedisBackend) Remove(ctx context.Context, id string) error {
	return b.client.Del(ctx, deckKeyPrefix+id).Err()
}

package repository

import (
	"context"
	"encoding/json"
	"time"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const cardCacheKeyPrefix = "catalog:cards:"

// CardRepository reads listing cards, caching each listing in Redis when a
// client is configured.
type CardRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	TTL   time.Duration
}

func NewCardRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *CardRepository {
	return &CardRepository{DB: db, Redis: rdb, TTL: ttl}
}

// GetCards returns the listing's cards in their original order.
func (r *CardRepository) GetCards(ctx context.Context, kind model.CardKind) ([]model.ContentCard, error) {
	if cards, ok := r.cached(ctx, kind); ok {
		return cards, nil
	}

	var cards []model.ContentCard
	err := r.DB.WithContext(ctx).
		Where("kind = ?", kind).
		Order("position asc, id asc").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}

	r.store(ctx, kind, cards)
	return cards, nil
}

// Invalidate drops the cached listings, e.g. after a reseed.
func (r *CardRepository) Invalidate(ctx context.Context) error {
	if r.Redis == nil {
		return nil
	}
	return r.Redis.Del(ctx,
		cardCacheKeyPrefix+string(model.CardKindCategory),
		cardCacheKeyPrefix+string(model.CardKindResource),
	).Err()
}

func (r *CardRepository) cached(ctx context.Context, kind model.CardKind) ([]model.ContentCard, bool) {
	if r.Redis == nil {
		return nil, false
	}
	raw, err := r.Redis.Get(ctx, cardCacheKeyPrefix+string(kind)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("card cache read failed", zap.String("kind", string(kind)), zap.Error(err))
		}
		return nil, false
	}
	var cards []model.ContentCard
	if err := json.Unmarshal(raw, &cards); err != nil {
		logger.Log.Warn("card cache entry unreadable", zap.String("kind", string(kind)), zap.Error(err))
		return nil, false
	}
	return cards, true
}

func (r *CardRepository) store(ctx context.Context, kind model.CardKind, cards []model.ContentCard) {
	if r.Redis == nil {
		return
	}
	raw, err := json.Marshal(cards)
	if err != nil {
		return
	}
	if err := r.Redis.Set(ctx, cardCacheKeyPrefix+string(kind), raw, r.TTL).Err(); err != nil {
		logger.Log.Warn("card cache write failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

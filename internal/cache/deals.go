package cache

import (
	"context"
	"encoding/json"
	"time"

	"normanbakes_back_end/internal/database"
	"normanbakes_back_end/internal/models"
	"normanbakes_back_end/internal/store"
)

const (
	dealsKey      = "seasonal_deals:active"
	DealsCacheTTL = 5 * time.Minute
)

// GetActiveDeals serves active seasonal deals through Redis when it is
// available, falling back to the store otherwise.
func GetActiveDeals(ctx context.Context, s store.OrderStore) ([]models.SeasonalDeal, error) {
	if database.Redis != nil {
		data, err := database.Redis.Get(ctx, dealsKey).Result()
		if err == nil {
			var deals []models.SeasonalDeal
			if json.Unmarshal([]byte(data), &deals) == nil {
				return deals, nil
			}
		}
	}

	deals, err := s.GetActiveSeasonalDeals(ctx)
	if err != nil {
		return nil, err
	}

	if database.Redis != nil {
		if data, err := json.Marshal(deals); err == nil {
			database.Redis.Set(ctx, dealsKey, data, DealsCacheTTL)
		}
	}

	return deals, nil
}

// CreateDeal stores a new deal and drops the cached listing so the deal
// shows up on the next read instead of after the TTL.
func CreateDeal(ctx context.Context, s store.OrderStore, deal models.SeasonalDeal) (models.SeasonalDeal, error) {
	created, err := s.CreateSeasonalDeal(ctx, deal)
	if err != nil {
		return models.SeasonalDeal{}, err
	}
	InvalidateDeals(ctx)
	return created, nil
}

// InvalidateDeals drops the cached list after a deal changes.
func InvalidateDeals(ctx context.Context) {
	if database.Redis != nil {
		database.Redis.Del(ctx, dealsKey)
	}
}

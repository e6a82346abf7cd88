package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"normanbakes_back_end/internal/models"
)

// MemoryStore keeps orders in process memory. It backs tests and the
// degraded no-database boot mode; the capacity check and insert share one
// mutex so the reserve-if-available guarantee holds here too.
type MemoryStore struct {
	mu        sync.Mutex
	orders    map[int64]models.Order
	deals     map[int64]models.SeasonalDeal
	nextOrder int64
	nextDeal  int64
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		orders:    make(map[int64]models.Order),
		deals:     make(map[int64]models.SeasonalDeal),
		nextOrder: 1,
		nextDeal:  1,
	}
}

func (s *MemoryStore) CreateOrder(_ context.Context, order models.Order, maxPerDate int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, o := range s.orders {
		if o.CollectionDate == order.CollectionDate {
			count++
		}
	}
	if count >= maxPerDate {
		return models.Order{}, ErrDateFull
	}

	order.ID = s.nextOrder
	s.nextOrder++
	order.PaymentStatus = models.PaymentStatusPending
	order.StripePaymentIntentID = ""
	order.CreatedAt = time.Now().UTC()

	s.orders[order.ID] = order
	return order, nil
}

func (s *MemoryStore) GetOrder(_ context.Context, id int64) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	return order, nil
}

func (s *MemoryStore) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].ID > orders[j].ID
	})
	return orders, nil
}

func (s *MemoryStore) CountForDate(_ context.Context, date string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, o := range s.orders {
		if o.CollectionDate == date {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) MarkPaid(_ context.Context, id int64, paymentIntentID string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}

	order.PaymentStatus = models.PaymentStatusPaid
	if order.StripePaymentIntentID == "" {
		order.StripePaymentIntentID = paymentIntentID
	}
	s.orders[id] = order
	return order, nil
}

func (s *MemoryStore) GetActiveSeasonalDeals(_ context.Context) ([]models.SeasonalDeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deals []models.SeasonalDeal
	for _, d := range s.deals {
		if d.IsActive {
			deals = append(deals, d)
		}
	}
	sort.Slice(deals, func(i, j int) bool {
		return deals[i].ID > deals[j].ID
	})
	return deals, nil
}

func (s *MemoryStore) CreateSeasonalDeal(_ context.Context, deal models.SeasonalDeal) (models.SeasonalDeal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal.ID = s.nextDeal
	s.nextDeal++
	deal.CreatedAt = time.Now().UTC()

	s.deals[deal.ID] = deal
	return deal, nil
}

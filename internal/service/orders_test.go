package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"normanbakes_back_end/internal/availability"
	"normanbakes_back_end/internal/models"
	"normanbakes_back_end/internal/notify"
	"normanbakes_back_end/internal/pricing"
	"normanbakes_back_end/internal/store"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notify.Kind
}

func (n *recordingNotifier) Notify(kind notify.Kind, _ models.Order) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, kind)
	return true
}

func (n *recordingNotifier) count(kind notify.Kind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, k := range n.calls {
		if k == kind {
			c++
		}
	}
	return c
}

func fixedCalendar() *availability.Calendar {
	return &availability.Calendar{
		Ranges: []availability.BlackoutRange{
			{
				Start:  time.Date(2025, time.July, 12, 0, 0, 0, 0, time.UTC),
				End:    time.Date(2025, time.July, 20, 0, 0, 0, 0, time.UTC),
				Reason: "fully booked",
			},
		},
		FirstYear: 2025,
		LastYear:  2025,
		Now: func() time.Time {
			return time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
		},
	}
}

func newOrderService(n notify.Notifier) (*OrderService, *store.MemoryStore) {
	mem := store.NewMemory()
	return &OrderService{
		Store:      mem,
		Calendar:   fixedCalendar(),
		Policy:     pricing.DepositPolicy{Mode: pricing.PolicyFull},
		MaxPerDate: 2,
		Notifier:   n,
	}, mem
}

func validRequest() OrderRequest {
	return OrderRequest{
		CustomerName:   "A. Smith",
		CustomerEmail:  "a@example.com",
		CustomerPhone:  "0123",
		CollectionDate: "2025-09-01",
		ProductType:    "brownie-tower",
		ProductDetails: "chocolate, gold drip",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _ := newOrderService(notifier)

	req := validRequest()
	req.Extras = []string{"strawberries"}

	order, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, int64(4500), order.TotalPence, "server-side price: £40 product + £5 extra")
	assert.Equal(t, int64(4500), order.DepositPence)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Empty(t, order.StripePaymentIntentID)
	assert.Equal(t, 1, notifier.count(notify.KindNewOrder))
}

func TestPlaceOrder_DepositOnlyProduct(t *testing.T) {
	svc, _ := newOrderService(nil)

	req := validRequest()
	req.ProductType = "other-cake"

	order, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, order.DepositOnly)
	assert.Equal(t, int64(2000), order.TotalPence)
	assert.Equal(t, int64(2000), order.DepositPence)
}

func TestPlaceOrder_ValidationErrors(t *testing.T) {
	svc, mem := newOrderService(nil)

	tests := []struct {
		name   string
		mutate func(*OrderRequest)
		field  string
	}{
		{"missing name", func(r *OrderRequest) { r.CustomerName = " " }, "customerName"},
		{"missing email", func(r *OrderRequest) { r.CustomerEmail = "" }, "customerEmail"},
		{"malformed email", func(r *OrderRequest) { r.CustomerEmail = "not-an-email" }, "customerEmail"},
		{"missing phone", func(r *OrderRequest) { r.CustomerPhone = "" }, "customerPhone"},
		{"missing date", func(r *OrderRequest) { r.CollectionDate = "" }, "collectionDate"},
		{"missing product", func(r *OrderRequest) { r.ProductType = "" }, "productType"},
		{"unknown product", func(r *OrderRequest) { r.ProductType = "wedding-cake" }, "productType"},
		{"missing details", func(r *OrderRequest) { r.ProductDetails = "" }, "productDetails"},
		{"unknown extra", func(r *OrderRequest) { r.Extras = []string{"sparklers"} }, "extras"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.PlaceOrder(context.Background(), req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, tt.field)
		})
	}

	// No partial persistence on any failure.
	orders, err := mem.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrder_MalformedDate(t *testing.T) {
	svc, _ := newOrderService(nil)

	req := validRequest()
	req.CollectionDate = "01/09/2025"

	_, err := svc.PlaceOrder(context.Background(), req)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "collectionDate")
}

func TestPlaceOrder_BlackoutDateRejected(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, mem := newOrderService(notifier)

	req := validRequest()
	req.CollectionDate = "2025-07-12" // boundary of the blackout range

	_, err := svc.PlaceOrder(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateUnavailable)

	orders, err := mem.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders, "rejected orders must not be persisted")
	assert.Empty(t, notifier.calls)
}

func TestPlaceOrder_FullDateRejected(t *testing.T) {
	svc, _ := newOrderService(nil)
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, validRequest())
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, validRequest())
	assert.ErrorIs(t, err, ErrDateUnavailable)
}

func TestPlaceOrder_ConcurrentSingleSlot(t *testing.T) {
	svc, mem := newOrderService(nil)
	svc.MaxPerDate = 1
	ctx := context.Background()

	const workers = 6
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		successes   int
		unavailable int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlaceOrder(ctx, validRequest())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrDateUnavailable):
				unavailable++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, unavailable)

	orders, err := mem.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCheckDate(t *testing.T) {
	svc, _ := newOrderService(nil)
	ctx := context.Background()

	available, count, err := svc.CheckDate(ctx, "2025-09-01")
	require.NoError(t, err)
	assert.True(t, available)
	assert.Zero(t, count)

	_, err = svc.PlaceOrder(ctx, validRequest())
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, validRequest())
	require.NoError(t, err)

	available, count, err = svc.CheckDate(ctx, "2025-09-01")
	require.NoError(t, err)
	assert.False(t, available, "date at capacity is unavailable even without a blackout")
	assert.Equal(t, 2, count)

	available, _, err = svc.CheckDate(ctx, "2025-07-15")
	require.NoError(t, err)
	assert.False(t, available, "blacked-out date is unavailable")

	_, _, err = svc.CheckDate(ctx, "next tuesday")
	assert.ErrorIs(t, err, availability.ErrInvalidDate)
}

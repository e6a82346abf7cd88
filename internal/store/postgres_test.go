package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"normanbakes_back_end/internal/models"
	"normanbakes_back_end/internal/store"
)

type postgresStoreSuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	store     *store.PostgresStore
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(postgresStoreSuite))
}

// before all tests in the suite
func (suite *postgresStoreSuite) SetupSuite() {
	ctx := suite.T().Context()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("normanbakes"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	suite.NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.store = store.NewPostgres(suite.pool)
	suite.NoError(suite.store.EnsureSchema(ctx))
}

// after all tests in the suite
func (suite *postgresStoreSuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *postgresStoreSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE orders, seasonal_deals")
	suite.NoError(err)
}

func sampleOrder(date string) models.Order {
	return models.Order{
		CustomerName:   "A. Smith",
		CustomerEmail:  "a@example.com",
		CustomerPhone:  "0123",
		CollectionDate: date,
		ProductType:    "brownie-tower",
		ProductDetails: "chocolate",
		Extras:         []string{"strawberries"},
		TotalPence:     4500,
		DepositPence:   4500,
	}
}

func (suite *postgresStoreSuite) TestCreateAndGetOrder() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	created, err := suite.store.CreateOrder(ctx, sampleOrder("2025-09-01"), 2)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.PaymentStatusPending, created.PaymentStatus)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := suite.store.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "2025-09-01", got.CollectionDate)
	assert.Equal(t, []string{"strawberries"}, got.Extras)
	assert.Equal(t, int64(4500), got.TotalPence)
	assert.Empty(t, got.StripePaymentIntentID)

	_, err = suite.store.GetOrder(ctx, 999999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func (suite *postgresStoreSuite) TestCapacityCap() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	_, err := suite.store.CreateOrder(ctx, sampleOrder("2025-09-01"), 2)
	require.NoError(t, err)
	_, err = suite.store.CreateOrder(ctx, sampleOrder("2025-09-01"), 2)
	require.NoError(t, err)

	_, err = suite.store.CreateOrder(ctx, sampleOrder("2025-09-01"), 2)
	assert.ErrorIs(t, err, store.ErrDateFull)

	// Another date is unaffected.
	_, err = suite.store.CreateOrder(ctx, sampleOrder("2025-09-02"), 2)
	assert.NoError(t, err)

	count, err := suite.store.CountForDate(ctx, "2025-09-01")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func (suite *postgresStoreSuite) TestConcurrentCreateSingleSlot() {
	defer suite.deleteAll()

	t := suite.T()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		fulls     int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.store.CreateOrder(context.Background(), sampleOrder("2025-10-01"), 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, store.ErrDateFull):
				fulls++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes, "exactly one submission may take the last slot")
	assert.Equal(t, workers-1, fulls)

	count, err := suite.store.CountForDate(context.Background(), "2025-10-01")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func (suite *postgresStoreSuite) TestMarkPaidIdempotent() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	created, err := suite.store.CreateOrder(ctx, sampleOrder("2025-09-01"), 2)
	require.NoError(t, err)

	paid, err := suite.store.MarkPaid(ctx, created.ID, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, "pi_123", paid.StripePaymentIntentID)

	// Second call is a no-op, not an error, and keeps the first reference.
	again, err := suite.store.MarkPaid(ctx, created.ID, "pi_456")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, again.PaymentStatus)
	assert.Equal(t, "pi_123", again.StripePaymentIntentID)

	_, err = suite.store.MarkPaid(ctx, 999999, "pi_123")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func (suite *postgresStoreSuite) TestListOrdersMostRecentFirst() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	first, err := suite.store.CreateOrder(ctx, sampleOrder("2025-09-01"), 2)
	require.NoError(t, err)
	second, err := suite.store.CreateOrder(ctx, sampleOrder("2025-09-02"), 2)
	require.NoError(t, err)

	orders, err := suite.store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func (suite *postgresStoreSuite) TestSeasonalDeals() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	active, err := suite.store.CreateSeasonalDeal(ctx, models.SeasonalDeal{Title: "Easter", Description: "10% off", IsActive: true})
	require.NoError(t, err)
	_, err = suite.store.CreateSeasonalDeal(ctx, models.SeasonalDeal{Title: "Expired", Description: "old", IsActive: false})
	require.NoError(t, err)

	deals, err := suite.store.GetActiveSeasonalDeals(ctx)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, active.ID, deals[0].ID)
}

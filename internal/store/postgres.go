package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"normanbakes_back_end/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id                       BIGSERIAL PRIMARY KEY,
	customer_name            TEXT NOT NULL,
	customer_email           TEXT NOT NULL,
	customer_phone           TEXT NOT NULL,
	collection_date          TEXT NOT NULL,
	product_type             TEXT NOT NULL,
	product_details          TEXT NOT NULL,
	special_requirements     TEXT NOT NULL DEFAULT '',
	extras                   TEXT[] NOT NULL DEFAULT '{}',
	total_pence              BIGINT NOT NULL,
	deposit_pence            BIGINT NOT NULL,
	deposit_only             BOOLEAN NOT NULL DEFAULT FALSE,
	payment_status           TEXT NOT NULL DEFAULT 'pending',
	stripe_payment_intent_id TEXT,
	created_at               TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS orders_collection_date_idx ON orders (collection_date);

CREATE TABLE IF NOT EXISTS seasonal_deals (
	id          BIGSERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	discount    TEXT NOT NULL DEFAULT '',
	valid_until TEXT NOT NULL DEFAULT '',
	is_active   BOOLEAN NOT NULL DEFAULT TRUE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const orderColumns = `id, customer_name, customer_email, customer_phone, collection_date,
	product_type, product_details, special_requirements, extras,
	total_pence, deposit_pence, deposit_only, payment_status,
	stripe_payment_intent_id, created_at`

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the tables on first boot.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("pool.Exec schema: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction with rollback on error.
func (s *PostgresStore) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (txErr error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}
	return nil
}

// CreateOrder takes a per-date advisory lock inside the transaction, so the
// capacity count and the insert form one serialized reserve-if-available
// step across concurrent requests.
func (s *PostgresStore) CreateOrder(ctx context.Context, order models.Order, maxPerDate int) (models.Order, error) {
	created := order

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, order.CollectionDate); err != nil {
			return fmt.Errorf("advisory lock: %w", err)
		}

		var count int
		if err := tx.QueryRow(ctx,
			`SELECT count(*) FROM orders WHERE collection_date = $1`, order.CollectionDate).Scan(&count); err != nil {
			return fmt.Errorf("count for date: %w", err)
		}
		if count >= maxPerDate {
			return ErrDateFull
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO orders (customer_name, customer_email, customer_phone, collection_date,
				product_type, product_details, special_requirements, extras,
				total_pence, deposit_pence, deposit_only, payment_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'pending')
			RETURNING id, payment_status, created_at`,
			order.CustomerName, order.CustomerEmail, order.CustomerPhone, order.CollectionDate,
			order.ProductType, order.ProductDetails, order.SpecialRequirements, order.Extras,
			order.TotalPence, order.DepositPence, order.DepositOnly)
		if err := row.Scan(&created.ID, &created.PaymentStatus, &created.CreatedAt); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	created.StripePaymentIntentID = ""
	return created, nil
}

func (s *PostgresStore) GetOrder(ctx context.Context, id int64) (models.Order, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *PostgresStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *PostgresStore) CountForDate(ctx context.Context, date string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM orders WHERE collection_date = $1`, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count for date: %w", err)
	}
	return count, nil
}

// MarkPaid keeps the first recorded intent id on repeat calls, so a second
// confirm is a no-op rather than an error.
func (s *PostgresStore) MarkPaid(ctx context.Context, id int64, paymentIntentID string) (models.Order, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE orders
		SET payment_status = 'paid',
		    stripe_payment_intent_id = COALESCE(stripe_payment_intent_id, $2)
		WHERE id = $1
		RETURNING `+orderColumns, id, paymentIntentID)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, fmt.Errorf("mark paid: %w", err)
	}
	return order, nil
}

func (s *PostgresStore) GetActiveSeasonalDeals(ctx context.Context) ([]models.SeasonalDeal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, description, discount, valid_until, is_active, created_at
		FROM seasonal_deals WHERE is_active ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	var deals []models.SeasonalDeal
	for rows.Next() {
		var d models.SeasonalDeal
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Discount, &d.ValidUntil, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	return deals, nil
}

func (s *PostgresStore) CreateSeasonalDeal(ctx context.Context, deal models.SeasonalDeal) (models.SeasonalDeal, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO seasonal_deals (title, description, discount, valid_until, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		deal.Title, deal.Description, deal.Discount, deal.ValidUntil, deal.IsActive)
	if err := row.Scan(&deal.ID, &deal.CreatedAt); err != nil {
		return models.SeasonalDeal{}, fmt.Errorf("insert deal: %w", err)
	}
	return deal, nil
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var (
		o        models.Order
		intentID *string
	)
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CollectionDate,
		&o.ProductType, &o.ProductDetails, &o.SpecialRequirements, &o.Extras,
		&o.TotalPence, &o.DepositPence, &o.DepositOnly, &o.PaymentStatus,
		&intentID, &o.CreatedAt)
	if err != nil {
		return models.Order{}, err
	}
	if intentID != nil {
		o.StripePaymentIntentID = *intentID
	}
	return o, nil
}

package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

var (
	Pool  *pgxpool.Pool
	Redis *redis.Client
)

// Connect brings up Postgres and Redis. Postgres is optional at boot:
// without DATABASE_URL the caller falls back to the in-memory store. Redis
// is always optional, the deals cache and rate limiting just switch off.
func Connect() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectPostgres(ctx)
	connectRedis(ctx)
}

func connectPostgres(ctx context.Context) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("⚠️ DATABASE_URL not set, orders will live in memory only")
		return
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("❌ Postgres configuration error: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("❌ Postgres connection error: %v", err)
	}

	Pool = pool
	log.Println("✅ Connected to Postgres")
}

func connectRedis(ctx context.Context) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		log.Println("⚠️ REDIS_HOST not set, cache and rate limiting disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unreachable (%v), cache and rate limiting disabled", err)
		return
	}

	Redis = client
	log.Println("✅ Connected to Redis")
}

// Close releases both connections; safe to call when either is absent.
func Close() {
	if Pool != nil {
		Pool.Close()
		log.Println("🔌 Postgres pool closed")
	}
	if Redis != nil {
		if err := Redis.Close(); err == nil {
			log.Println("🔌 Redis connection closed")
		}
	}
}

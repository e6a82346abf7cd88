package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"normanbakes_back_end/internal/availability"
	"normanbakes_back_end/internal/config"
	"normanbakes_back_end/internal/database"
	"normanbakes_back_end/internal/handlers"
	"normanbakes_back_end/internal/notify"
	"normanbakes_back_end/internal/pricing"
	"normanbakes_back_end/internal/routes"
	"normanbakes_back_end/internal/service"
	"normanbakes_back_end/internal/store"
)

func main() {
	config.Load()

	var gateway service.PaymentGateway
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		stripe.Key = key
		gateway = &service.StripeGateway{}
		log.Println("✅ Stripe initialised")
	} else {
		log.Println("⚠️ STRIPE_SECRET_KEY not set, payment endpoints will answer 503")
	}

	database.Connect()
	defer database.Close()

	orderStore := buildStore()

	orders := &service.OrderService{
		Store:      orderStore,
		Calendar:   availability.Default(),
		Policy:     pricing.PolicyFromEnv(),
		MaxPerDate: maxOrdersPerDate(),
		Notifier:   notify.NewFromEnv(),
	}
	payments := &service.PaymentService{
		Store:    orderStore,
		Gateway:  gateway,
		Notifier: orders.Notifier,
	}

	r := gin.Default()
	r.Use(cors.Default())
	routes.RegisterRoutes(r, handlers.NewAPI(orders, payments, orderStore))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Norman Bakes server listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}

func buildStore() store.OrderStore {
	if database.Pool == nil {
		log.Println("⚠️ Using in-memory order store, orders will not survive a restart")
		return store.NewMemory()
	}

	pg := store.NewPostgres(database.Pool)
	if err := pg.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("❌ Schema initialisation failed: %v", err)
	}
	return pg
}

func maxOrdersPerDate() int {
	if v, err := strconv.Atoi(os.Getenv("MAX_ORDERS_PER_DATE")); err == nil && v > 0 {
		return v
	}
	return 2
}

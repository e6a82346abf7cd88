package handlers

import (
	"normanbakes_back_end/internal/service"
	"normanbakes_back_end/internal/store"
)

// API bundles the services behind the HTTP surface.
type API struct {
	Orders   *service.OrderService
	Payments *service.PaymentService
	Store    store.OrderStore
}

func NewAPI(orders *service.OrderService, payments *service.PaymentService, s store.OrderStore) *API {
	return &API{Orders: orders, Payments: payments, Store: s}
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/middleware"
	"github.com/freshcutsco/meat-delivery-platform/internal/errors"
	"github.com/freshcutsco/meat-delivery-platform/internal/metrics"
	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	repository "github.com/freshcutsco/meat-delivery-platform/internal/repositories"
	"github.com/freshcutsco/meat-delivery-platform/pkg/email"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type orderService struct {
	orders    repository.OrderRepository
	carts     CartService
	delivery  DeliveryService
	email     email.Service
	sanitizer *bluemonday.Policy
}

// NewOrderService wires checkout. emailService may be nil when no sender is
// configured; confirmations are then skipped.
func NewOrderService(orders repository.OrderRepository, carts CartService,
	delivery DeliveryService, emailService email.Service) OrderService {

	return &orderService{
		orders:    orders,
		carts:     carts,
		delivery:  delivery,
		email:     emailService,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Checkout snapshots the current cart into an order. Prices are captured at
// this moment; the cart is cleared only after the order is durably appended.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	summary, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if summary.ItemCount == 0 {
		return nil, errors.BadRequestError("Cannot checkout with an empty cart")
	}

	address := s.sanitizer.Sanitize(req.Address)

	assessment, err := s.delivery.CheckAddress(ctx, &models.CheckAddressRequest{Address: address})
	if err != nil {
		return nil, err
	}

	if !assessment.Eligible {
		return nil, errors.OutOfServiceAreaError(assessment.Message)
	}

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Lines:         summary.Lines,
		ItemCount:     summary.ItemCount,
		TotalPrice:    summary.TotalPrice,
		TotalDiscount: summary.TotalDiscount,
		Address:       address,
		Email:         req.Email,
		Status:        models.OrderStatusPlaced,
		CreatedAt:     time.Now(),
	}

	if err := s.orders.Append(ctx, order); err != nil {
		return nil, errors.StorageError("Failed to save order").WithError(err)
	}

	if _, err := s.carts.Clear(ctx, userID); err != nil {
		// the order is already placed, so a stuck cart is not fatal
		logger.Error("Failed to clear cart after checkout",
			slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
	}

	s.sendConfirmation(ctx, order)
	metrics.OrderPlaced()

	logger.Info("Order placed", slog.String("orderId", order.ID.String()),
		slog.Int("items", order.ItemCount), slog.Float64("total", order.TotalPrice))

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {

	orders, err := s.orders.List(ctx, userID)
	if err != nil {
		return nil, errors.StorageError("Failed to load orders").WithError(err)
	}

	return orders, nil
}

// sendConfirmation is best effort; a failed email never fails the checkout.
func (s *orderService) sendConfirmation(ctx context.Context, order *models.Order) {

	if s.email == nil || order.Email == "" {
		return
	}

	msg := &email.Message{
		To:      order.Email,
		Subject: fmt.Sprintf("Your FreshCuts order %s is confirmed", order.ID),
		Content: fmt.Sprintf("Thanks for your order of %d items totalling ₹%.2f. It will be delivered to: %s",
			order.ItemCount, order.TotalPrice, order.Address),
	}

	if err := s.email.Send(ctx, msg); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to send order confirmation",
			slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
	}
}

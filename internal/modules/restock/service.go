package restock

import (
	"context"
	"time"

	"github.com/envoyhq/envoy-backend/internal/apperr"
	"go.uber.org/zap"
)

// RequestOrderRequest carries the payload of a stock replenishment request.
type RequestOrderRequest struct {
	ProductID int64  `json:"product_id"`
	VendorID  *int64 `json:"vendor_id"`
	Quantity  int    `json:"quantity"`
}

// DeliverRequest carries the optional notes of a delivery confirmation.
type DeliverRequest struct {
	Notes *string `json:"notes"`
}

// Service defines the restock workflow operations.
type Service interface {
	RequestOrder(ctx context.Context, requesterID int64, req *RequestOrderRequest) (*Order, error)
	ListOpenOrders(ctx context.Context) ([]*Order, error)
	ListDeliveries(ctx context.Context) ([]*Delivery, error)
	Deliver(ctx context.Context, restockID int64, req *DeliverRequest) (*Delivery, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new restock service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) RequestOrder(ctx context.Context, requesterID int64, req *RequestOrderRequest) (*Order, error) {
	if req.ProductID <= 0 {
		return nil, apperr.New(apperr.Invalid, "product_id is required")
	}
	if req.Quantity <= 0 {
		return nil, apperr.New(apperr.Invalid, "quantity must be greater than zero")
	}

	exists, err := s.repo.ProductExists(ctx, req.ProductID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to create restock order", err)
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}

	order := &Order{
		ProductID:   req.ProductID,
		VendorID:    req.VendorID,
		Quantity:    req.Quantity,
		Status:      StatusPending,
		RequestedBy: requesterID,
	}
	if req.VendorID != nil {
		leadTime, err := s.repo.VendorLeadTime(ctx, req.ProductID, *req.VendorID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Store, "failed to create restock order", err)
		}
		if leadTime != nil {
			eta := time.Now().AddDate(0, 0, *leadTime)
			order.ExpectedDelivery = &eta
		}
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to create restock order", err)
	}
	s.logger.Info("restock order created",
		zap.Int64("restock_id", order.ID),
		zap.Int64("product_id", order.ProductID),
		zap.Int("quantity", order.Quantity))
	return order, nil
}

func (s *service) ListOpenOrders(ctx context.Context) ([]*Order, error) {
	orders, err := s.repo.ListOpenOrders(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to load restock orders", err)
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) ListDeliveries(ctx context.Context) ([]*Delivery, error) {
	deliveries, err := s.repo.ListDeliveries(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to load deliveries", err)
	}
	if deliveries == nil {
		deliveries = []*Delivery{}
	}
	return deliveries, nil
}

func (s *service) Deliver(ctx context.Context, restockID int64, req *DeliverRequest) (*Delivery, error) {
	if restockID <= 0 {
		return nil, apperr.New(apperr.Invalid, "invalid restock id")
	}
	delivery, err := s.repo.Deliver(ctx, restockID, req.Notes)
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.Store, "failed to confirm delivery", err)
	}
	s.logger.Info("restock delivery confirmed",
		zap.Int64("restock_id", restockID),
		zap.Int64("delivery_id", delivery.ID),
		zap.Int("quantity_received", delivery.QuantityReceived))
	return delivery, nil
}

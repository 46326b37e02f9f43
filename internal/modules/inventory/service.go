package inventory

import (
	"context"

	"github.com/envoyhq/envoy-backend/internal/apperr"
)

// SetVendorLinkRequest carries the vendor link payload for one product.
type SetVendorLinkRequest struct {
	VendorID     int64    `json:"vendor_id"`
	SupplyPrice  *float64 `json:"supply_price"`
	LeadTimeDays *int     `json:"lead_time_days"`
	Preferred    bool     `json:"preferred"`
}

// Service defines inventory business logic.
type Service interface {
	ListInventory(ctx context.Context) ([]*Row, error)
	SetVendorLink(ctx context.Context, productID int64, req *SetVendorLinkRequest) (*VendorLink, error)
}

type service struct {
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListInventory(ctx context.Context) ([]*Row, error) {
	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to load inventory", err)
	}
	if rows == nil {
		rows = []*Row{}
	}
	return rows, nil
}

func (s *service) SetVendorLink(ctx context.Context, productID int64, req *SetVendorLinkRequest) (*VendorLink, error) {
	if productID <= 0 {
		return nil, apperr.New(apperr.Invalid, "invalid product id")
	}
	if req.VendorID <= 0 {
		return nil, apperr.New(apperr.Invalid, "vendor_id is required")
	}
	if req.SupplyPrice != nil && *req.SupplyPrice < 0 {
		return nil, apperr.New(apperr.Invalid, "supply_price cannot be negative")
	}
	if req.LeadTimeDays != nil && *req.LeadTimeDays < 0 {
		return nil, apperr.New(apperr.Invalid, "lead_time_days cannot be negative")
	}

	link := &VendorLink{
		ProductID:    productID,
		VendorID:     req.VendorID,
		SupplyPrice:  req.SupplyPrice,
		LeadTimeDays: req.LeadTimeDays,
		Preferred:    req.Preferred,
	}
	if err := s.repo.UpsertVendorLink(ctx, link); err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.Store, "failed to save vendor link", err)
	}
	return link, nil
}

package restock

import (
	"context"
	"testing"
	"time"

	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProduct struct {
	name  string
	stock int
}

type fakeRepo struct {
	products   map[int64]*fakeProduct
	leadTimes  map[[2]int64]int
	orders     map[int64]*Order
	deliveries []*Delivery
	nextID     int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:  map[int64]*fakeProduct{},
		leadTimes: map[[2]int64]int{},
		orders:    map[int64]*Order{},
	}
}

func (f *fakeRepo) CreateOrder(ctx context.Context, order *Order) error {
	f.nextID++
	order.ID = f.nextID
	order.RequestedAt = time.Now()
	order.UpdatedAt = order.RequestedAt
	order.ProductName = f.products[order.ProductID].name
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeRepo) ListOpenOrders(ctx context.Context) ([]*Order, error) {
	var out []*Order
	for _, o := range f.orders {
		if o.Status != StatusCompleted {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListDeliveries(ctx context.Context) ([]*Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeRepo) ProductExists(ctx context.Context, productID int64) (bool, error) {
	_, ok := f.products[productID]
	return ok, nil
}

func (f *fakeRepo) VendorLeadTime(ctx context.Context, productID, vendorID int64) (*int, error) {
	if days, ok := f.leadTimes[[2]int64{productID, vendorID}]; ok {
		return &days, nil
	}
	return nil, nil
}

func (f *fakeRepo) Deliver(ctx context.Context, restockID int64, notes *string) (*Delivery, error) {
	o, ok := f.orders[restockID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "restock order not found")
	}
	if o.Status.Terminal() {
		return nil, apperr.Newf(apperr.Conflict, "restock order already %s", o.Status)
	}
	f.products[o.ProductID].stock += o.Quantity
	o.Status = StatusCompleted
	d := &Delivery{
		ID:               int64(len(f.deliveries) + 1),
		RestockID:        restockID,
		ProductID:        o.ProductID,
		ProductName:      f.products[o.ProductID].name,
		QuantityReceived: o.Quantity,
		ReceivedAt:       time.Now(),
		Notes:            notes,
	}
	f.deliveries = append(f.deliveries, d)
	return d, nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, zap.NewNop())
}

func TestRequestOrderValidation(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.RequestOrder(context.Background(), 1, &RequestOrderRequest{Quantity: 5})
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))

	_, err = svc.RequestOrder(context.Background(), 1, &RequestOrderRequest{ProductID: 1})
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))

	_, err = svc.RequestOrder(context.Background(), 1, &RequestOrderRequest{ProductID: 1, Quantity: -2})
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
}

func TestRequestOrderUnknownProduct(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.RequestOrder(context.Background(), 1, &RequestOrderRequest{ProductID: 9, Quantity: 5})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestRequestOrderStartsPending(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = &fakeProduct{name: "Beans", stock: 3}
	svc := newTestService(repo)

	order, err := svc.RequestOrder(context.Background(), 7, &RequestOrderRequest{ProductID: 1, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, int64(7), order.RequestedBy)
	assert.Nil(t, order.ExpectedDelivery)
}

func TestRequestOrderEstimatesDelivery(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = &fakeProduct{name: "Beans"}
	repo.leadTimes[[2]int64{1, 4}] = 10
	svc := newTestService(repo)

	vendorID := int64(4)
	order, err := svc.RequestOrder(context.Background(), 7, &RequestOrderRequest{
		ProductID: 1, VendorID: &vendorID, Quantity: 5,
	})
	require.NoError(t, err)
	require.NotNil(t, order.ExpectedDelivery)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 10), *order.ExpectedDelivery, time.Minute)
}

func TestDeliverHappyPath(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = &fakeProduct{name: "Beans", stock: 3}
	svc := newTestService(repo)

	order, err := svc.RequestOrder(context.Background(), 7, &RequestOrderRequest{ProductID: 1, Quantity: 5})
	require.NoError(t, err)

	notes := "pallet arrived intact"
	d, err := svc.Deliver(context.Background(), order.ID, &DeliverRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 5, d.QuantityReceived)
	assert.Equal(t, order.ID, d.RestockID)
	assert.Equal(t, 8, repo.products[1].stock)
	assert.Equal(t, StatusCompleted, repo.orders[order.ID].Status)
}

func TestDeliverTwiceConflicts(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = &fakeProduct{name: "Beans", stock: 0}
	svc := newTestService(repo)

	order, err := svc.RequestOrder(context.Background(), 7, &RequestOrderRequest{ProductID: 1, Quantity: 5})
	require.NoError(t, err)

	_, err = svc.Deliver(context.Background(), order.ID, &DeliverRequest{})
	require.NoError(t, err)

	_, err = svc.Deliver(context.Background(), order.ID, &DeliverRequest{})
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	// Stock is incremented exactly once.
	assert.Equal(t, 5, repo.products[1].stock)
}

func TestDeliverUnknownOrder(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Deliver(context.Background(), 42, &DeliverRequest{})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCompletedOrdersLeaveTheOpenList(t *testing.T) {
	repo := newFakeRepo()
	repo.products[1] = &fakeProduct{name: "Beans"}
	svc := newTestService(repo)

	order, err := svc.RequestOrder(context.Background(), 7, &RequestOrderRequest{ProductID: 1, Quantity: 5})
	require.NoError(t, err)

	open, err := svc.ListOpenOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, open, 1)

	_, err = svc.Deliver(context.Background(), order.ID, &DeliverRequest{})
	require.NoError(t, err)

	open, err = svc.ListOpenOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, open)

	deliveries, err := svc.ListDeliveries(context.Background())
	require.NoError(t, err)
	assert.Len(t, deliveries, 1)
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCompleted.Terminal())
}

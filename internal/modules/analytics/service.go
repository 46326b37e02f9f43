package analytics

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/envoyhq/envoy-backend/internal/apperr"
)

// Metric selects what the stock-by-category breakdown measures.
const (
	MetricUnits = "units"
	MetricValue = "value"
)

// Service defines the read-only aggregation operations.
type Service interface {
	// SalesForDay sums order totals for the local calendar day named by
	// date ("2006-01-02"); an empty date means today.
	SalesForDay(ctx context.Context, date string) (float64, error)
	// MonthlyRevenue buckets every order's total into twelve values
	// indexed by month, January first.
	MonthlyRevenue(ctx context.Context) ([]float64, error)
	// InventoryWorth sums price*stock over active products.
	InventoryWorth(ctx context.Context) (float64, error)
	// StockByCategory breaks active stock down per category, sorted
	// descending by the chosen metric.
	StockByCategory(ctx context.Context, metric string) ([]*CategoryBucket, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new analytics service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) SalesForDay(ctx context.Context, date string) (float64, error) {
	day := s.now()
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return 0, apperr.New(apperr.Invalid, "date must be YYYY-MM-DD")
		}
		day = parsed
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 1)

	total, err := s.repo.SumSalesBetween(ctx, from, to)
	if err != nil {
		return 0, apperr.Wrap(apperr.Store, "failed to compute daily sales", err)
	}
	return total, nil
}

func (s *service) MonthlyRevenue(ctx context.Context) ([]float64, error) {
	orders, err := s.repo.ListOrderTotals(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to compute monthly revenue", err)
	}
	totals := make([]float64, 12)
	for _, o := range orders {
		if o.Total == nil || !isFinite(*o.Total) {
			continue
		}
		totals[int(o.OrderDate.Month())-1] += *o.Total
	}
	return totals, nil
}

func (s *service) InventoryWorth(ctx context.Context) (float64, error) {
	products, err := s.repo.ListActiveProductStats(ctx)
	if err != nil {
		return 0, apperr.Wrap(apperr.Store, "failed to compute inventory worth", err)
	}
	var worth float64
	for _, p := range products {
		line := p.Price * float64(p.Stock)
		if !isFinite(line) {
			continue
		}
		worth += line
	}
	return worth, nil
}

func (s *service) StockByCategory(ctx context.Context, metric string) ([]*CategoryBucket, error) {
	switch metric {
	case "", MetricUnits:
		metric = MetricUnits
	case MetricValue:
	default:
		return nil, apperr.New(apperr.Invalid, "metric must be units or value")
	}

	// The two reads are independent, so issue them together and join the
	// results once both land.
	var (
		wg         sync.WaitGroup
		products   []*ProductStat
		categories []*Category
		prodErr    error
		catErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		products, prodErr = s.repo.ListActiveProductStats(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, catErr = s.repo.ListCategories(ctx)
	}()
	wg.Wait()
	if prodErr != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to compute stock by category", prodErr)
	}
	if catErr != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to compute stock by category", catErr)
	}

	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	buckets := map[string]float64{}
	for _, p := range products {
		label := "Uncategorized"
		if p.CategoryID != nil {
			if name, ok := names[*p.CategoryID]; ok {
				label = name
			}
		}
		switch metric {
		case MetricValue:
			line := p.Price * float64(p.Stock)
			if !isFinite(line) {
				continue
			}
			buckets[label] += line
		default:
			buckets[label] += float64(p.Stock)
		}
	}

	result := make([]*CategoryBucket, 0, len(buckets))
	for label, value := range buckets {
		result = append(result, &CategoryBucket{Label: label, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Label < result[j].Label
	})
	return result, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

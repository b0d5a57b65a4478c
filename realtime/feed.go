package realtime

import (
	"fmt"
	"log"
	"sync"

	"github.com/sartoria/sartoria-api/models"
)

// Notice is a transient toast-style message surfaced on the admin dashboard.
type Notice struct {
	Kind    string `json:"kind"` // "new_order" or "new_customer"
	Message string `json:"message"`
}

// RevenueFunc recomputes this month's revenue. Injected so the feed stays
// testable without a database.
type RevenueFunc func() (float64, error)

// DashboardFeed is the admin dashboard view-model fed by the change stream.
// Merge rules are last-event-wins per row; no sequence reconciliation.
type DashboardFeed struct {
	mu             sync.Mutex
	limit          int
	recent         []models.Order
	customerCount  int
	monthlyRevenue float64
	revenueFn      RevenueFunc
	notices        []Notice
}

// NewDashboardFeed creates a feed keeping at most limit recent orders.
func NewDashboardFeed(limit int, revenueFn RevenueFunc) *DashboardFeed {
	return &DashboardFeed{limit: limit, revenueFn: revenueFn}
}

// Seed installs the initial REST-fetched state before events are applied.
func (f *DashboardFeed) Seed(orders []models.Order, customerCount int, monthlyRevenue float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(orders) > f.limit {
		orders = orders[:f.limit]
	}
	f.recent = append([]models.Order(nil), orders...)
	f.customerCount = customerCount
	f.monthlyRevenue = monthlyRevenue
}

// Apply merges one change event into the feed state.
func (f *DashboardFeed) Apply(evt ChangeEvent) {
	switch evt.Table {
	case TableOrders:
		f.applyOrders(evt)
	case TableProfiles:
		f.applyProfiles(evt)
	}
}

func (f *DashboardFeed) applyOrders(evt ChangeEvent) {
	f.mu.Lock()
	switch evt.Type {
	case EventInsert:
		if order, ok := orderPayload(evt.New); ok {
			f.recent = append([]models.Order{order}, f.recent...)
			if len(f.recent) > f.limit {
				f.recent = f.recent[:f.limit]
			}
			f.notices = append(f.notices, Notice{
				Kind:    "new_order",
				Message: fmt.Sprintf("New order %s received", order.OrderNumber),
			})
		}
	case EventUpdate:
		if order, ok := orderPayload(evt.New); ok {
			// Replace in place; no re-sort.
			for i := range f.recent {
				if f.recent[i].ID == order.ID {
					f.recent[i] = order
					break
				}
			}
		}
	case EventDelete:
		if order, ok := orderPayload(evt.Old); ok {
			for i := range f.recent {
				if f.recent[i].ID == order.ID {
					f.recent = append(f.recent[:i], f.recent[i+1:]...)
					break
				}
			}
		}
	}
	f.mu.Unlock()

	// Any orders change re-aggregates this month's revenue independently.
	f.recomputeRevenue()
}

func (f *DashboardFeed) applyProfiles(evt ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch evt.Type {
	case EventInsert:
		f.customerCount++
		f.notices = append(f.notices, Notice{
			Kind:    "new_customer",
			Message: "New customer registered",
		})
	case EventDelete:
		if f.customerCount > 0 {
			f.customerCount--
		}
	case EventUpdate:
		// Accepted without special handling.
	}
}

func (f *DashboardFeed) recomputeRevenue() {
	if f.revenueFn == nil {
		return
	}
	revenue, err := f.revenueFn()
	if err != nil {
		log.Printf("realtime: monthly revenue recompute failed: %v", err)
		return
	}
	f.mu.Lock()
	f.monthlyRevenue = revenue
	f.mu.Unlock()
}

// RecentOrders returns a copy of the current recent-orders list.
func (f *DashboardFeed) RecentOrders() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Order(nil), f.recent...)
}

// CustomerCount returns the current customer counter.
func (f *DashboardFeed) CustomerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.customerCount
}

// MonthlyRevenue returns the last aggregated monthly revenue.
func (f *DashboardFeed) MonthlyRevenue() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.monthlyRevenue
}

// DrainNotices returns pending notices and clears the queue.
func (f *DashboardFeed) DrainNotices() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	notices := f.notices
	f.notices = nil
	return notices
}

// orderPayload normalizes an event payload to an Order value.
func orderPayload(v any) (models.Order, bool) {
	switch order := v.(type) {
	case models.Order:
		return order, true
	case *models.Order:
		if order != nil {
			return *order, true
		}
	}
	return models.Order{}, false
}

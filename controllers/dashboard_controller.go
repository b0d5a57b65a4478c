package controllers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sartoria/sartoria-api/config"
	"github.com/sartoria/sartoria-api/models"
	"github.com/sartoria/sartoria-api/realtime"
	"github.com/sartoria/sartoria-api/services"
)

var dashboardUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from the admin SPA origin; auth happens via the
	// bearer token, not the Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GetDashboardStats handles GET /api/v1/admin/dashboard - the one-shot
// summary for clients that do not hold a websocket open
func GetDashboardStats(c *gin.Context) {
	stats, err := services.GetDashboardStats(config.GetDB(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to assemble dashboard stats",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// wsClient wraps a websocket connection with a write mutex. Gorilla allows
// only one concurrent writer per connection.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// dashboardFrame is one websocket message: the merged dashboard state after
// applying the triggering event, plus the notices that event raised. The
// first frame of a connection has no event and carries the seeded state.
type dashboardFrame struct {
	Event          *realtime.ChangeEvent `json:"event,omitempty"`
	RecentOrders   []models.Order        `json:"recent_orders"`
	CustomerCount  int                   `json:"customer_count"`
	MonthlyRevenue float64               `json:"monthly_revenue"`
	Notices        []realtime.Notice     `json:"notices,omitempty"`
}

func frameFrom(feed *realtime.DashboardFeed, evt *realtime.ChangeEvent) dashboardFrame {
	return dashboardFrame{
		Event:          evt,
		RecentOrders:   feed.RecentOrders(),
		CustomerCount:  feed.CustomerCount(),
		MonthlyRevenue: feed.MonthlyRevenue(),
		Notices:        feed.DrainNotices(),
	}
}

// StreamDashboard handles GET /api/v1/admin/dashboard/ws. The connection is
// seeded with the current stats, then every order and customer-profile change
// is merged into the view-model and the updated state pushed to the client.
// Both subscriptions are released on exit.
func StreamDashboard(c *gin.Context) {
	db := config.GetDB()
	stats, err := services.GetDashboardStats(db, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to assemble dashboard stats",
			},
		})
		return
	}

	conn, err := dashboardUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("dashboard: websocket upgrade failed: %v", err)
		return
	}

	feed := realtime.NewDashboardFeed(services.RecentOrdersLimit, func() (float64, error) {
		return services.QueryMonthlyRevenue(db, time.Now())
	})
	feed.Seed(stats.RecentOrders, int(stats.TotalCustomers), stats.MonthlyRevenue)

	client := &wsClient{conn: conn}
	hub := realtime.GetHub()

	orders, cancelOrders := hub.Subscribe(realtime.TableOrders)
	profiles, cancelProfiles := hub.Subscribe(realtime.TableProfiles)

	done := make(chan struct{})

	// Read pump: we expect no client messages, but reading is the only way
	// to notice the peer closing the socket.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer func() {
			cancelOrders()
			cancelProfiles()
			if err := conn.Close(); err != nil {
				log.Printf("dashboard: websocket close: %v", err)
			}
		}()

		if err := client.writeJSON(frameFrom(feed, nil)); err != nil {
			return
		}

		for {
			select {
			case <-done:
				return
			case evt, ok := <-orders:
				if !ok {
					return
				}
				feed.Apply(evt)
				if err := client.writeJSON(frameFrom(feed, &evt)); err != nil {
					return
				}
			case evt, ok := <-profiles:
				if !ok {
					return
				}
				feed.Apply(evt)
				if err := client.writeJSON(frameFrom(feed, &evt)); err != nil {
					return
				}
			}
		}
	}()
}

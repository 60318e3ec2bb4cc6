package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"gymdesk_echo/internal/services"
	"gymdesk_echo/internal/subscription"
)

// DashboardHandler serves the stats summary and the upcoming renewals
// queue. Both are computed from the live in-memory snapshot; the stats
// summary is additionally cached in Redis for a short interval.
type DashboardHandler struct {
	snapshot *services.SnapshotStore
	cache    *services.RedisCache
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(snapshot *services.SnapshotStore, cache *services.RedisCache) *DashboardHandler {
	return &DashboardHandler{snapshot: snapshot, cache: cache}
}

// Stats returns the dashboard summary counts and month-to-date revenue
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := services.GetOrSet(h.cache, ctx, services.StatsCacheKey, time.Minute, func() (subscription.DashboardStats, error) {
		return subscription.ComputeStats(h.snapshot.Snapshot(), time.Now()), nil
	})
	if err != nil {
		return &services.StoreError{Op: "compute stats", Err: err}
	}
	return c.JSON(http.StatusOK, stats)
}

// UpcomingRenewals returns members whose subscriptions end within the
// lookahead window, soonest first. Defaults to 7 days.
func (h *DashboardHandler) UpcomingRenewals(c echo.Context) error {
	days := 7
	if daysStr := c.QueryParam("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid days, expected a non-negative integer")
		}
		days = parsed
	}

	members := subscription.UpcomingRenewals(h.snapshot.Snapshot(), days, time.Now())
	return c.JSON(http.StatusOK, members)
}

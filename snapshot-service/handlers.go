package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"office-dashboard/dashboard"
	"office-dashboard/logging"
	"office-dashboard/shared"
)

// API serves views derived from the latest stored snapshot.
type API struct {
	store     Store
	refresher *Refresher
	logger    *zap.Logger
}

// NewAPI builds the HTTP API. refresher may be nil to disable POST /api/refresh.
func NewAPI(store Store, refresher *Refresher, logger *zap.Logger) *API {
	return &API{store: store, refresher: refresher, logger: logging.OrNop(logger)}
}

// Routes registers every endpoint on router.
func (a *API) Routes(router gin.IRouter) {
	router.GET(shared.APIEndpointHealth, a.handleHealth)
	router.GET(shared.APIEndpointSnapshot, a.handleGetSnapshot)
	router.GET(shared.APIEndpointSeating, a.handleGetSeating)
	router.GET(shared.APIEndpointSeatingZone, a.handleGetZone)
	router.GET(shared.APIEndpointCharts, a.handleListCharts)
	router.GET(shared.APIEndpointChart, a.handleGetChart)
	if a.refresher != nil {
		router.POST(shared.APIEndpointRefresh, a.handleRefresh)
	}
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// loadSnapshot writes the error response itself and reports whether the
// handler may continue.
func (a *API) loadSnapshot(c *gin.Context) (shared.Snapshot, bool) {
	snap, err := a.store.Load(c.Request.Context())
	if errors.Is(err, ErrNoSnapshot) {
		c.JSON(http.StatusServiceUnavailable, shared.ErrorResponse{Error: ErrNoSnapshot.Error()})
		return shared.Snapshot{}, false
	}
	if err != nil {
		a.logger.Error("failed to load snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, shared.ErrorResponse{Error: "Failed to load snapshot"})
		return shared.Snapshot{}, false
	}
	return snap, true
}

func (a *API) handleGetSnapshot(c *gin.Context) {
	snap, ok := a.loadSnapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dashboard.BuildSnapshotSummary(snap))
}

func (a *API) handleGetSeating(c *gin.Context) {
	snap, ok := a.loadSnapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dashboard.BuildSeatingView(snap))
}

func (a *API) handleGetZone(c *gin.Context) {
	snap, ok := a.loadSnapshot(c)
	if !ok {
		return
	}

	zoneID := c.Param("zoneID")
	detail, found := dashboard.BuildZoneDetail(snap, zoneID)
	if !found {
		c.JSON(http.StatusNotFound, shared.ErrorResponse{Error: "unknown zone " + zoneID})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (a *API) handleListCharts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"charts": dashboard.ChartNames()})
}

func (a *API) handleGetChart(c *gin.Context) {
	name := c.Param("name")
	if !dashboard.HasChart(name) {
		c.JSON(http.StatusNotFound, shared.ErrorResponse{Error: "unknown chart " + name})
		return
	}

	snap, ok := a.loadSnapshot(c)
	if !ok {
		return
	}

	view, _ := dashboard.BuildChart(snap, name, c.Query("kind"), c.Query("title"))
	logging.Diagnostics(a.logger, "charts", view.Diagnostics)
	c.JSON(http.StatusOK, view)
}

func (a *API) handleRefresh(c *gin.Context) {
	snap, err := a.refresher.Refresh(c.Request.Context())
	if errors.Is(err, ErrStaleSnapshot) {
		c.JSON(http.StatusConflict, shared.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		a.logger.Error("manual refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, shared.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dashboard.BuildSnapshotSummary(snap))
}

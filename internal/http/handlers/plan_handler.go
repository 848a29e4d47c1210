// README: Planning handlers; POST /plan drafts and stores a trip, GET /api/trips/:id reads it back.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripdraft/internal/http/middleware"
	"tripdraft/internal/modules/itinerary"
	"tripdraft/internal/modules/trip"
	"tripdraft/internal/types"
)

// Planner is the trip service surface the handlers use.
type Planner interface {
	Plan(ctx context.Context, prefs itinerary.Preferences, ownerUID string) (trip.PlanResult, error)
	Get(ctx context.Context, id types.ID) (*trip.Record, error)
}

type PlanHandler struct {
	planner Planner
	logger  *slog.Logger
}

func NewPlanHandler(planner Planner, logger *slog.Logger) *PlanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanHandler{planner: planner, logger: logger}
}

// Plan handles POST /plan.
func (h *PlanHandler) Plan(c *gin.Context) {
	var req trip.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	prefs, err := req.Preferences()
	if err != nil {
		writeTripError(c, err)
		return
	}

	res, err := h.planner.Plan(c.Request.Context(), prefs, middleware.CallerUID(c))
	if err != nil {
		h.logger.Error("plan failed", "destination", prefs.Destination, "error", err)
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// Get handles GET /api/trips/:id. With auth on, only the owner may read.
func (h *PlanHandler) Get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing trip id")
		return
	}

	rec, err := h.planner.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeTripError(c, err)
		return
	}
	if uid := middleware.CallerUID(c); uid != "" && rec.OwnerUID != "" && rec.OwnerUID != uid {
		writeTripError(c, trip.ErrNotFound)
		return
	}
	writeJSON(c, http.StatusOK, rec)
}

// internal/controller/stats_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/unclebandit/mailflow-backend/internal/middleware"
	"github.com/unclebandit/mailflow-backend/internal/service"
)

type StatsController struct {
	StatsService *service.StatsService
}

func (c *StatsController) HomeStats(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	stats, err := c.StatsService.HomeStats(actor.ID, actor.IsManager())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

package handlers

import (
	"net/http"

	"kegama-backend/internal/services"
	"kegama-backend/pkg/utils"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Report handles GET /api/admin/analytics?filter=daily|weekly|monthly|yearly.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.analytics.Report(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

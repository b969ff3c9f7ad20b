package handlers

import (
	"net/http"
	"strconv"

	"kegama-backend/internal/services"
	"kegama-backend/internal/timeutil"
	"kegama-backend/pkg/utils"
)

type CalendarHandler struct {
	calendar *services.CalendarService
}

func NewCalendarHandler(calendar *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// Month handles GET /api/admin/calendar?year=&month=, defaulting to the
// current month.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	now := timeutil.Now()
	year, month := now.Year(), int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2000 || n > 2100 {
			utils.Error(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			utils.Error(w, http.StatusBadRequest, "Invalid month")
			return
		}
		month = n
	}

	cal, err := h.calendar.Month(r.Context(), year, month)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load calendar")
		return
	}
	utils.JSON(w, http.StatusOK, cal)
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"kegama-backend/internal/middleware"
	"kegama-backend/internal/services"
	"kegama-backend/internal/timeutil"
	"kegama-backend/pkg/utils"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GuestFolio handles GET /api/admin/guests/{id}/pdf.
func (h *ReportHandler) GuestFolio(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	data, err := h.reports.GuestFolio(r.Context(), id, middleware.ClientIP(r))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Guest not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to render folio")
		return
	}
	servePDF(w, fmt.Sprintf("folio-%s.pdf", id), data)
}

// Revenue handles GET /api/admin/reports/revenue.pdf.
func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.RevenueReport(r.Context(), middleware.ClientIP(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to render revenue report")
		return
	}
	servePDF(w, "revenue.pdf", data)
}

// Timeline handles GET /api/admin/reports/timeline.pdf?year=&month=.
func (h *ReportHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	now := timeutil.Now()
	year, month := now.Year(), int(now.Month())
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
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

	data, err := h.reports.TimelineReport(r.Context(), year, month, middleware.ClientIP(r))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to render timeline")
		return
	}
	servePDF(w, fmt.Sprintf("timeline-%d-%02d.pdf", year, month), data)
}

func servePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

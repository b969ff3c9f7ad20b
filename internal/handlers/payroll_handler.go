package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"kegama-backend/internal/models"
	"kegama-backend/internal/services"
	"kegama-backend/pkg/utils"
)

type PayrollHandler struct {
	payroll *services.PayrollService
}

func NewPayrollHandler(payroll *services.PayrollService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll}
}

// ListEmployees handles GET /api/payroll/employees.
func (h *PayrollHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.payroll.ListEmployees(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load employees")
		return
	}
	if employees == nil {
		employees = []*models.Employee{}
	}
	utils.JSON(w, http.StatusOK, employees)
}

// CreateEmployee handles POST /api/payroll/employees.
func (h *PayrollHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.EmployeeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	e, err := h.payroll.CreateEmployee(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeFields) {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}
	utils.JSON(w, http.StatusCreated, e)
}

// DeleteEmployee handles DELETE /api/payroll/employees/{id}.
func (h *PayrollHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.payroll.DeleteEmployee(r.Context(), mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Employee not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to delete employee")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// LatestPayslip handles GET /api/payroll/employees/{id}/payslip.
func (h *PayrollHandler) LatestPayslip(w http.ResponseWriter, r *http.Request) {
	view, err := h.payroll.LatestPayslip(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Employee not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to load payslip")
		return
	}
	utils.JSON(w, http.StatusOK, view)
}

// SavePayslip handles POST /api/payroll/payslips.
func (h *PayrollHandler) SavePayslip(w http.ResponseWriter, r *http.Request) {
	var req models.PayslipUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.payroll.SavePayslip(r.Context(), &req)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			utils.Error(w, http.StatusNotFound, "Employee not found")
		case errors.As(err, &vErr):
			utils.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Missing or invalid fields",
				"missing": vErr.Missing,
			})
		default:
			utils.Error(w, http.StatusInternalServerError, "Failed to save payslip")
		}
		return
	}
	utils.JSON(w, http.StatusOK, view)
}

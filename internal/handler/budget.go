package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adventuresync/server/internal/service"
)

// BudgetHandler handles monthly budget HTTP requests.
type BudgetHandler struct {
	budgets *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgets *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

// HandleGet returns the caller's budget for the requested period,
// defaulting to the current month and year.
// GET /api/v1/budget?month=&year=
func (h *BudgetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	now := time.Now().UTC()
	month, year := int(now.Month()), now.Year()

	q := r.URL.Query()
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month.")
			return
		}
		month = n
	}
	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year.")
			return
		}
		year = n
	}

	budget, err := h.budgets.GetForPeriod(r.Context(), user.ID, month, year)
	if err != nil {
		respondError(w, err, "get budget")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"budget": toBudgetDTO(budget)})
}

type createBudgetRequest struct {
	MonthlyBudget   string `json:"monthlyBudget" validate:"required"`
	ActivitiesSpent string `json:"activitiesSpent"`
	EquipmentSpent  string `json:"equipmentSpent"`
	TransportSpent  string `json:"transportSpent"`
	Month           int    `json:"month" validate:"required,min=1,max=12"`
	Year            int    `json:"year" validate:"required,min=2000"`
}

// HandleCreate stores a budget record for the caller.
// POST /api/v1/budget
func (h *BudgetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req createBudgetRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := checkRequest(req); err != nil {
		respondError(w, err, "validate budget request")
		return
	}

	params := service.CreateBudgetParams{Month: req.Month, Year: req.Year}
	var err error
	if params.MonthlyBudget, err = parseAmount(req.MonthlyBudget); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid monthlyBudget.")
		return
	}
	if params.ActivitiesSpent, err = parseAmount(req.ActivitiesSpent); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid activitiesSpent.")
		return
	}
	if params.EquipmentSpent, err = parseAmount(req.EquipmentSpent); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid equipmentSpent.")
		return
	}
	if params.TransportSpent, err = parseAmount(req.TransportSpent); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transportSpent.")
		return
	}

	budget, err := h.budgets.Create(r.Context(), user.ID, params)
	if err != nil {
		respondError(w, err, "create budget")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"budget": toBudgetDTO(budget)})
}

// parseAmount reads a decimal money string, treating "" as zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

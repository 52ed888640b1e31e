package settlement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/akasem/divvy/internal/expense"
	"github.com/akasem/divvy/internal/money"
	"github.com/akasem/divvy/internal/user"
	"github.com/akasem/divvy/internal/validate"
	"github.com/akasem/divvy/pkg/middleware"
	"github.com/akasem/divvy/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service     *Service
	userService *user.Service
	validator   *validator.Validate
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service, userService *user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
		validator:   validator.New(),
	}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/groups/{groupId}", h.GetSettlements)
	r.Get("/groups/{groupId}/balances", h.GetBalances)
	r.Get("/groups/{groupId}/steps", h.GetSteps)
	r.Post("/groups/{groupId}/record", h.Record)

	return r
}

// GetBalances handles GET /settlements/groups/{groupId}/balances
// @Summary      Get group balances
// @Description  Get each member's net balance in the group's main currency
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]MemberBalanceResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /settlements/groups/{groupId}/balances [get]
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.Balances(r.Context(), groupID)
	if err != nil {
		respondComputeError(w, err)
		return
	}

	responses := make([]MemberBalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = b.ToResponse()
	}
	response.JSON(w, http.StatusOK, responses)
}

// GetSettlements handles GET /settlements/groups/{groupId}
// @Summary      Get settlement recommendations
// @Description  Get the group's recommended transfers. The simplify query
// @Description  parameter overrides the caller's stored preference.
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        simplify query bool false "Use greedy minimal-transfer netting"
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /settlements/groups/{groupId} [get]
func (h *Handler) GetSettlements(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	simplified := h.preferSimplified(r)

	settlements, err := h.service.Settlements(r.Context(), groupID, simplified)
	if err != nil {
		respondComputeError(w, err)
		return
	}

	responses := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		responses[i] = s.ToResponse()
	}
	response.JSON(w, http.StatusOK, responses)
}

// GetSteps handles GET /settlements/groups/{groupId}/steps
// @Summary      Get the simplification trace
// @Description  Get the replayable step-by-step trace from pairwise debts to
// @Description  the simplified settlement list, for UI animation
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]StepResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /settlements/groups/{groupId}/steps [get]
func (h *Handler) GetSteps(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	steps, err := h.service.SimplificationSteps(r.Context(), groupID)
	if err != nil {
		respondComputeError(w, err)
		return
	}

	responses := make([]StepResponse, len(steps))
	for i, s := range steps {
		responses[i] = s.ToResponse()
	}
	response.JSON(w, http.StatusOK, responses)
}

// Record handles POST /settlements/groups/{groupId}/record
// @Summary      Record a settlement
// @Description  Materialize a computed settlement as a transfer in the ledger
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        request body RecordSettlementRequest true "Settlement to record"
// @Success      201 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Router       /settlements/groups/{groupId}/record [post]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	var req RecordSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	amount, err := money.FromString(req.Amount)
	if err != nil {
		response.BadRequest(w, "Invalid amount")
		return
	}

	entry, err := h.service.Record(r.Context(), groupID, req.PayerID, req.PayeeID, amount)
	if err != nil {
		if errors.Is(err, ErrCannotSettleSelf) || errors.Is(err, ErrNothingToSettle) {
			response.BadRequest(w, err.Error())
			return
		}
		respondComputeError(w, err)
		return
	}

	entryResp := entry.Expense.ToResponse()
	entryResp.Shares = make([]*expense.ShareResponse, len(entry.Shares))
	for i, s := range entry.Shares {
		entryResp.Shares[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusCreated, entryResp)
}

// preferSimplified resolves which solver the caller wants: an explicit
// simplify query parameter wins, otherwise the user's stored preference.
func (h *Handler) preferSimplified(r *http.Request) bool {
	if raw := r.URL.Query().Get("simplify"); raw != "" {
		simplified, err := strconv.ParseBool(raw)
		if err == nil {
			return simplified
		}
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return true
	}
	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		return true
	}
	return u.PreferSimplified
}

// respondComputeError maps validation failures to 400 with their stable code
// and everything else to 500.
func respondComputeError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		response.ValidationError(w, verr)
		return
	}
	response.InternalError(w, "Failed to compute settlements")
}

package activity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akasem/divvy/pkg/middleware"
	"github.com/akasem/divvy/pkg/response"
)

// Handler handles HTTP requests for the activity feed
type Handler struct {
	service *Service
}

// NewHandler creates a new activity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for activity endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/unread-count", h.GetUnreadCount)
	r.Post("/{id}/read", h.MarkAsRead)
	r.Post("/read-all", h.MarkAllAsRead)

	return r
}

// EntryResponse represents the response for a feed entry
type EntryResponse struct {
	ID                int64   `json:"id"`
	Message           string  `json:"message"`
	IsRead            bool    `json:"is_read"`
	RelatedEntityType *string `json:"related_entity_type,omitempty"`
	RelatedEntityID   *int64  `json:"related_entity_id,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// toResponse converts an Entry to an EntryResponse
func toResponse(e *Entry) *EntryResponse {
	return &EntryResponse{
		ID:                e.ID,
		Message:           e.Message,
		IsRead:            e.IsRead,
		RelatedEntityType: e.RelatedEntityType,
		RelatedEntityID:   e.RelatedEntityID,
		CreatedAt:         e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// List handles GET /activity
// @Summary      List activity feed
// @Description  Get the caller's activity feed, newest first
// @Tags         activity
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Param        unread_only query bool false "Only unread entries"
// @Success      200 {object} response.APIResponse{data=[]EntryResponse}
// @Router       /activity [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	entries, total, err := h.service.ListByRecipientID(r.Context(), userID, page, perPage, unreadOnly)
	if err != nil {
		response.InternalError(w, "Failed to list activity")
		return
	}

	entryResponses := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		entryResponses[i] = toResponse(e)
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, entryResponses, meta)
}

// GetUnreadCount handles GET /activity/unread-count
// @Summary      Get unread count
// @Description  Get the number of unread feed entries for the caller
// @Tags         activity
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Router       /activity/unread-count [get]
func (h *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1
	}

	count, err := h.service.GetUnreadCount(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to get unread count")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

// MarkAsRead handles POST /activity/{id}/read
// @Summary      Mark entry as read
// @Tags         activity
// @Produce      json
// @Param        id path int true "Entry ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /activity/{id}/read [post]
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid entry ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1
	}

	if err := h.service.MarkAsRead(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNotRecipient) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to mark entry as read")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Entry marked as read"})
}

// MarkAllAsRead handles POST /activity/read-all
// @Summary      Mark all entries as read
// @Tags         activity
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Router       /activity/read-all [post]
func (h *Handler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1
	}

	if err := h.service.MarkAllAsRead(r.Context(), userID); err != nil {
		response.InternalError(w, "Failed to mark all entries as read")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "All entries marked as read"})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/crucial707/itadmin/internal/middleware"
	"github.com/crucial707/itadmin/internal/models"
	"github.com/crucial707/itadmin/internal/repo"
)

const (
	defaultAnalyticsLimit = 10
	maxAnalyticsLimit     = 100
)

type AnalyticsHandler struct {
	Repo *repo.AnalyticsRepo
}

// ListEvents returns a page of events, newest first (?eventType=).
func (h *AnalyticsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, defaultAnalyticsLimit, maxAnalyticsLimit)
	eventType := r.URL.Query().Get("eventType")

	total, err := h.Repo.Count(r.Context(), eventType)
	if err != nil {
		storeError(w, r, err)
		return
	}
	events, err := h.Repo.List(r.Context(), eventType, limit, offset(page, limit))
	if err != nil {
		storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Page[models.AnalyticsEvent]{
		Data:       events,
		Pagination: newPagination(page, limit, total),
	})
}

// CreateEvent records an event. Missing userId, ipAddress and userAgent are
// taken from the request.
func (h *AnalyticsHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input struct {
		EventType string          `json:"eventType" validate:"required,max=100"`
		EventData json.RawMessage `json:"eventData"`
		UserID    *models.FlexID  `json:"userId"`
		IPAddress *string         `json:"ipAddress" validate:"omitnil,max=64"`
		UserAgent *string         `json:"userAgent" validate:"omitnil,max=512"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	input.EventType = strings.TrimSpace(input.EventType)
	if fields := validationFields(input); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	userID := idValue(input.UserID)
	if userID == nil {
		userID = middleware.ActorID(r.Context())
	}
	ip := input.IPAddress
	if ip == nil {
		ip = nonEmpty(middleware.ClientIP(r))
	}
	ua := input.UserAgent
	if ua == nil {
		ua = nonEmpty(r.UserAgent())
	}

	e, err := h.Repo.Create(r.Context(), models.AnalyticsEvent{
		EventType: input.EventType,
		EventData: nullableJSON(input.EventData),
		UserID:    userID,
		IPAddress: ip,
		UserAgent: ua,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

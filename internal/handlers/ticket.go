package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/crucial707/itadmin/internal/middleware"
	"github.com/crucial707/itadmin/internal/models"
	"github.com/crucial707/itadmin/internal/repo"
)

const (
	defaultTicketLimit = 10
	maxTicketLimit     = 100
)

type TicketHandler struct {
	Repo  *repo.TicketRepo
	Users *repo.UserRepo
}

// ListTickets returns a page of tickets filtered by status, priority and category.
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, defaultTicketLimit, maxTicketLimit)
	q := r.URL.Query()
	filter := models.TicketFilter{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Category: q.Get("category"),
	}

	total, err := h.Repo.Count(r.Context(), filter)
	if err != nil {
		storeError(w, r, err)
		return
	}
	tickets, err := h.Repo.List(r.Context(), filter, limit, offset(page, limit))
	if err != nil {
		storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Page[models.Ticket]{
		Data:       tickets,
		Pagination: newPagination(page, limit, total),
	})
}

// CreateTicket opens a ticket. The creator is the body's creatorId, else the
// acting user, else the oldest user on record.
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string         `json:"title" validate:"required,max=255"`
		Description *string        `json:"description"`
		Priority    string         `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
		Category    string         `json:"category" validate:"required,max=100"`
		Tags        []string       `json:"tags" validate:"max=20,dive,required,max=50"`
		CreatorID   *models.FlexID `json:"creatorId"`
		AssigneeID  *models.FlexID `json:"assigneeId"`
		AssetID     *models.FlexID `json:"assetId"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	if fields := validationFields(input); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	creator := idValue(input.CreatorID)
	if creator == nil {
		creator = middleware.ActorID(r.Context())
	}
	if creator == nil {
		id, err := h.Users.FirstID(r.Context())
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "no users exist to own the ticket; run the seed command first", http.StatusBadRequest)
			return
		}
		if err != nil {
			storeError(w, r, err)
			return
		}
		creator = &id
	}

	ticket, err := h.Repo.Create(r.Context(), models.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Category:    input.Category,
		Tags:        input.Tags,
		CreatorID:   *creator,
		AssigneeID:  idValue(input.AssigneeID),
		AssetID:     idValue(input.AssetID),
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

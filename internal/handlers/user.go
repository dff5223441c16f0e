package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/itadmin/internal/metrics"
	"github.com/crucial707/itadmin/internal/models"
	"github.com/crucial707/itadmin/internal/repo"
)

const (
	defaultUserLimit = 100
	maxUserLimit     = 500
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo *repo.UserRepo
	Now  func() time.Time
}

// ==========================
// Create User (role defaults to user)
// ==========================
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email      string  `json:"email" validate:"required,email,max=255"`
		Name       *string `json:"name" validate:"omitnil,max=255"`
		Role       string  `json:"role" validate:"omitempty,oneof=user technician manager admin"`
		Department *string `json:"department" validate:"omitnil,max=255"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Email = strings.TrimSpace(input.Email)
	if fields := validationFields(input); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.Repo.Create(r.Context(), models.User{
		Email:      input.Email,
		Name:       input.Name,
		Role:       input.Role,
		Department: input.Department,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// List Users (?search, page, limit)
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, defaultUserLimit, maxUserLimit)
	search := r.URL.Query().Get("search")

	total, err := h.Repo.Count(r.Context(), search)
	if err != nil {
		storeError(w, r, err)
		return
	}
	users, err := h.Repo.List(r.Context(), search, limit, offset(page, limit))
	if err != nil {
		storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Page[models.User]{
		Data:       users,
		Pagination: newPagination(page, limit, total),
	})
}

// ==========================
// Export Users
// ==========================
func (h *UserHandler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.ListAll(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	setCSVHeaders(w, "users", now())
	cw := csv.NewWriter(w)
	cw.Write([]string{"ID", "Name", "Email", "Role", "Created At", "Updated At"})
	for _, u := range users {
		cw.Write([]string{
			strconv.Itoa(u.ID),
			deref(u.Name),
			u.Email,
			u.Role,
			csvDate(&u.CreatedAt),
			csvDate(&u.UpdatedAt),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logError(r, "user export", err)
		return
	}
	metrics.AddExportedRows("users", len(users))
}

package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/crucial707/itadmin/internal/repo"
	"github.com/go-chi/chi/v5"
)

const defaultSettingType = "string"

type SettingHandler struct {
	Repo *repo.SettingRepo
}

type settingInput struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value" validate:"required"`
	Type  string `json:"type" validate:"max=50"`
}

func (h *SettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Repo.List(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpsertSetting creates the setting or replaces an existing one with the same key.
func (h *SettingHandler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	var input settingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Key = strings.TrimSpace(input.Key)
	if fields := validationFields(input); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	st, err := h.Repo.Upsert(r.Context(), input.Key, input.Value, settingType(input.Type))
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *SettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key, ok := settingKey(w, r)
	if !ok {
		return
	}
	st, err := h.Repo.Get(r.Context(), key)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *SettingHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key, ok := settingKey(w, r)
	if !ok {
		return
	}
	var input settingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Key = key
	if fields := validationFields(input); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	st, err := h.Repo.Update(r.Context(), key, input.Value, settingType(input.Type))
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *SettingHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key, ok := settingKey(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Delete(r.Context(), key); err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Setting deleted successfully"})
}

func settingKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil || strings.TrimSpace(key) == "" {
		JSONError(w, "invalid setting key", http.StatusBadRequest)
		return "", false
	}
	return key, true
}

func settingType(t string) string {
	if t = strings.TrimSpace(t); t == "" {
		return defaultSettingType
	}
	return t
}

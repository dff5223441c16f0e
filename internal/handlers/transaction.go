package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crucial707/itadmin/internal/metrics"
	"github.com/crucial707/itadmin/internal/middleware"
	"github.com/crucial707/itadmin/internal/models"
	"github.com/crucial707/itadmin/internal/repo"
)

const (
	defaultTransactionLimit = 20
	maxTransactionLimit     = 100
)

// TransactionHandler exposes the asset transaction history.
type TransactionHandler struct {
	Repo *repo.TransactionRepo
}

// ListTransactions returns transactions newest first, optionally for one asset (?assetId=).
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, defaultTransactionLimit, maxTransactionLimit)

	var assetID *int
	if s := r.URL.Query().Get("assetId"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			JSONError(w, "invalid assetId", http.StatusBadRequest)
			return
		}
		assetID = &n
	}

	total, err := h.Repo.Count(r.Context(), assetID)
	if err != nil {
		storeError(w, r, err)
		return
	}
	txns, err := h.Repo.List(r.Context(), assetID, limit, offset(page, limit))
	if err != nil {
		storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Page[models.AssetTransaction]{
		Data:       txns,
		Pagination: newPagination(page, limit, total),
	})
}

// CreateTransaction records a transaction supplied by the client verbatim.
// userId defaults to the acting user.
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AssetID  models.FlexID            `json:"assetId"`
		Action   models.TransactionAction `json:"action"`
		OldValue json.RawMessage          `json:"oldValue"`
		NewValue json.RawMessage          `json:"newValue"`
		UserID   *models.FlexID           `json:"userId"`
		Notes    *string                  `json:"notes"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	fields := make(map[string]string)
	if input.AssetID <= 0 {
		fields["assetId"] = "required"
	}
	if input.Action == "" {
		fields["action"] = "required"
	} else if !input.Action.Valid() {
		fields["action"] = "must be one of " + joinActions()
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	userID := idValue(input.UserID)
	if userID == nil {
		userID = middleware.ActorID(r.Context())
	}

	txn, err := h.Repo.Create(r.Context(), models.AssetTransaction{
		AssetID:  int(input.AssetID),
		Action:   input.Action,
		OldValue: nullableJSON(input.OldValue),
		NewValue: nullableJSON(input.NewValue),
		UserID:   userID,
		Notes:    input.Notes,
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	metrics.IncTransactions(string(txn.Action))
	writeJSON(w, http.StatusCreated, txn)
}

var falsyJSON = [][]byte{[]byte("null"), []byte("false"), []byte("0"), []byte(`""`)}

// nullableJSON stores falsy JSON values as SQL NULL.
func nullableJSON(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	for _, f := range falsyJSON {
		if bytes.Equal(raw, f) {
			return nil
		}
	}
	return raw
}

func joinActions() string {
	var b bytes.Buffer
	for i, a := range models.TransactionActions {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(a))
	}
	return b.String()
}

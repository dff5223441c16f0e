package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/itadmin/internal/metrics"
	"github.com/crucial707/itadmin/internal/middleware"
	"github.com/crucial707/itadmin/internal/models"
	"github.com/crucial707/itadmin/internal/repo"
	"github.com/crucial707/itadmin/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	defaultAssetLimit = 10
	maxAssetLimit     = 100
)

type AssetHandler struct {
	Repo    *repo.AssetRepo
	Service *service.AssetService
	// Now stamps export filenames; nil means time.Now.
	Now func() time.Time
}

//
// ==========================
// List Assets
// ==========================
//

// ListAssets returns a page of assets filtered by status, type and search.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, defaultAssetLimit, maxAssetLimit)
	filter := assetFilter(r)

	total, err := h.Repo.Count(r.Context(), filter)
	if err != nil {
		storeError(w, r, err)
		return
	}
	assets, err := h.Repo.List(r.Context(), filter, limit, offset(page, limit))
	if err != nil {
		storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Page[models.Asset]{
		Data:       assets,
		Pagination: newPagination(page, limit, total),
	})
}

func assetFilter(r *http.Request) models.AssetFilter {
	q := r.URL.Query()
	return models.AssetFilter{
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Search: q.Get("search"),
	}
}

//
// ==========================
// Create Asset
// ==========================
//

type createAssetInput struct {
	Name           string             `json:"name" validate:"required,max=255"`
	Type           models.AssetType   `json:"type" validate:"required,oneof=computer monitor printer server network_device software_license"`
	Model          *string            `json:"model"`
	SerialNumber   *string            `json:"serialNumber"`
	PurchaseOrder  *string            `json:"purchaseOrder"`
	PurchaseDate   *models.Date       `json:"purchaseDate"`
	WarrantyExpiry *models.Date       `json:"warrantyExpiry"`
	Location       *string            `json:"location"`
	Status         models.AssetStatus `json:"status" validate:"omitempty,oneof=active in_stock maintenance retired lost"`
	AssignedToID   *models.FlexID     `json:"assignedToId"`
}

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var input createAssetInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	if fields := validationFields(input); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	asset, err := h.Repo.Create(r.Context(), models.Asset{
		Name:           input.Name,
		Type:           input.Type,
		Model:          input.Model,
		SerialNumber:   input.SerialNumber,
		PurchaseOrder:  input.PurchaseOrder,
		PurchaseDate:   dateValue(input.PurchaseDate),
		WarrantyExpiry: dateValue(input.WarrantyExpiry),
		Location:       input.Location,
		Status:         input.Status,
		AssignedToID:   idValue(input.AssignedToID),
	})
	if err != nil {
		assetStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

//
// ==========================
// Get Asset By ID
// ==========================
//

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	asset, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

//
// ==========================
// Update Asset
// ==========================
//

// UpdateAsset applies a partial update. Keys absent from the body are left
// alone; present keys overwrite, including with null. Assignment, status and
// location changes are recorded as asset transactions.
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	var patch models.AssetPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if fields := patch.Validate(); fields != nil {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	asset, err := h.Service.Update(r.Context(), id, patch, middleware.ActorID(r.Context()))
	if err != nil {
		assetStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

//
// ==========================
// Delete Asset
// ==========================
//

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id, middleware.ActorID(r.Context())); err != nil {
		storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

//
// ==========================
// Export Assets
// ==========================
//

var assetCSVHeader = []string{
	"ID", "Name", "Type", "Model", "Serial Number", "Purchase Order", "Purchase Date",
	"Warranty Expiry", "Location", "Status", "Assigned To", "Created At", "Updated At",
}

// ExportAssets streams every asset matching the list filters as CSV.
func (h *AssetHandler) ExportAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Repo.ListAll(r.Context(), assetFilter(r))
	if err != nil {
		storeError(w, r, err)
		return
	}

	setCSVHeaders(w, "assets", h.now())
	cw := csv.NewWriter(w)
	cw.Write(assetCSVHeader)
	for _, a := range assets {
		cw.Write([]string{
			strconv.Itoa(a.ID),
			a.Name,
			string(a.Type),
			deref(a.Model),
			deref(a.SerialNumber),
			deref(a.PurchaseOrder),
			csvDate(a.PurchaseDate),
			csvDate(a.WarrantyExpiry),
			deref(a.Location),
			statusLabel(a.Status),
			assigneeLabel(a.AssignedToID),
			csvDate(&a.CreatedAt),
			csvDate(&a.UpdatedAt),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		logError(r, "asset export", err)
		return
	}
	metrics.AddExportedRows("assets", len(assets))
}

func (h *AssetHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// ====== Helpers ======

func assetID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// assetStoreError reports a dangling assignedToId as a field error. It is the
// only foreign key on assets.
func assetStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repo.ErrInvalidReference) {
		JSONValidationError(w, "validation failed",
			map[string]string{"assignedToId": "user does not exist"}, http.StatusBadRequest)
		return
	}
	storeError(w, r, err)
}

func setCSVHeaders(w http.ResponseWriter, resource string, now time.Time) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s_export_%s.csv"`, resource, now.UTC().Format(time.DateOnly)))
}

func statusLabel(s models.AssetStatus) string {
	if s == models.StatusInStock {
		return "In Stock"
	}
	return string(s)
}

func assigneeLabel(id *int) string {
	if id == nil {
		return "Unassigned"
	}
	return "User " + strconv.Itoa(*id)
}

func csvDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateValue(d *models.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func idValue(id *models.FlexID) *int {
	if id == nil || *id == 0 {
		return nil
	}
	n := int(*id)
	return &n
}

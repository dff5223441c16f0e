package repo

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/itadmin/internal/models"
	"github.com/lib/pq"
)

var assetCols = []string{
	"id", "name", "type", "model", "serial_number", "purchase_order", "purchase_date",
	"warranty_expiry", "location", "status", "assigned_to_id", "created_at", "updated_at",
}

func TestAssetRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO assets \(name, type, model, serial_number, purchase_order, purchase_date,\s+warranty_expiry, location, status, assigned_to_id\)`).
		WithArgs("Dell Latitude 5420", "computer", "Latitude 5420", nil, nil, nil, nil, "Floor 2", "active", nil).
		WillReturnRows(sqlmock.NewRows(assetCols).
			AddRow(42, "Dell Latitude 5420", "computer", "Latitude 5420", nil, nil, nil, nil, "Floor 2", "active", nil, now, now))

	model, location := "Latitude 5420", "Floor 2"
	repo := NewAssetRepo(db)
	asset, err := repo.Create(context.Background(), models.Asset{
		Name:     "Dell Latitude 5420",
		Type:     models.AssetTypeComputer,
		Model:    &model,
		Location: &location,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if asset.ID != 42 || asset.Status != models.StatusActive || asset.SerialNumber != nil {
		t.Errorf("unexpected asset: %+v", asset)
	}
	if asset.Model == nil || *asset.Model != "Latitude 5420" {
		t.Errorf("model = %v", asset.Model)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Create_MissingAssignee(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO assets`).
		WillReturnError(&pq.Error{Code: "23503"})

	assignee := 999
	repo := NewAssetRepo(db)
	_, err = repo.Create(context.Background(), models.Asset{Name: "x", Type: models.AssetTypeMonitor, AssignedToID: &assignee})
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}

func TestAssetRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	purchased := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE id = \$1$`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(assetCols).
			AddRow(1, "a1", "server", nil, "SN1", "PO-1", purchased, nil, nil, "maintenance", 3, now, now))

	repo := NewAssetRepo(db)
	asset, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if asset.Type != models.AssetTypeServer || asset.Status != models.StatusMaintenance {
		t.Errorf("unexpected enums: %+v", asset)
	}
	if asset.AssignedToID == nil || *asset.AssignedToID != 3 {
		t.Errorf("assignedToId = %v", asset.AssignedToID)
	}
	if asset.PurchaseDate == nil || !asset.PurchaseDate.Equal(purchased) || asset.WarrantyExpiry != nil {
		t.Errorf("unexpected dates: %v %v", asset.PurchaseDate, asset.WarrantyExpiry)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE id = \$1`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows(assetCols))

	repo := NewAssetRepo(db)
	_, err = repo.GetByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "asset not found" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAssetRepo_GetForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE id = \$1 FOR UPDATE`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(assetCols).
			AddRow(5, "a5", "printer", nil, nil, nil, nil, nil, nil, "active", nil, now, now))

	repo := NewAssetRepo(db)
	asset, err := repo.GetForUpdate(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetForUpdate: %v", err)
	}
	if asset.ID != 5 || asset.AssignedToID != nil {
		t.Errorf("unexpected asset: %+v", asset)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	assignee := 4
	mock.ExpectQuery(`UPDATE assets\s+SET name = \$1, (.+) updated_at = NOW\(\)\s+WHERE id = \$11`).
		WithArgs("a1", "computer", nil, nil, nil, nil, nil, nil, "active", 4, 1).
		WillReturnRows(sqlmock.NewRows(assetCols).
			AddRow(1, "a1", "computer", nil, nil, nil, nil, nil, nil, "active", 4, now, now))

	repo := NewAssetRepo(db)
	asset, err := repo.Update(context.Background(), models.Asset{
		ID: 1, Name: "a1", Type: models.AssetTypeComputer, Status: models.StatusActive, AssignedToID: &assignee,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if asset.AssignedToID == nil || *asset.AssignedToID != 4 {
		t.Errorf("unexpected asset: %+v", asset)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM assets WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM assets WHERE id = \$1`).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewAssetRepo(db)
	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(context.Background(), 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing row, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM assets WHERE assigned_to_id IS NULL AND type = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("monitor", 10, 20).
		WillReturnRows(sqlmock.NewRows(assetCols).
			AddRow(2, "n2", "monitor", nil, nil, nil, nil, nil, nil, "retired", nil, now, now).
			AddRow(1, "n1", "monitor", nil, nil, nil, nil, nil, nil, "active", nil, now, now))

	repo := NewAssetRepo(db)
	assets, err := repo.List(context.Background(), models.AssetFilter{Status: "in_stock", Type: "monitor"}, 10, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(assets) != 2 || assets[0].Name != "n2" || assets[1].Name != "n1" {
		t.Errorf("unexpected list: %+v", assets)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_ListEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM assets ORDER BY created_at DESC, id DESC$`).
		WillReturnRows(sqlmock.NewRows(assetCols))

	repo := NewAssetRepo(db)
	assets, err := repo.ListAll(context.Background(), models.AssetFilter{Status: "all", Type: "all"})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if assets == nil || len(assets) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", assets)
	}
}

func TestAssetRepo_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM assets WHERE status = \$1`).
		WithArgs("lost").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewAssetRepo(db)
	n, err := repo.Count(context.Background(), models.AssetFilter{Status: "lost"})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestAssetWhere(t *testing.T) {
	cases := []struct {
		name  string
		f     models.AssetFilter
		where string
		args  []any
	}{
		{"empty", models.AssetFilter{}, "", nil},
		{"all ignored", models.AssetFilter{Status: "all", Type: "all", Search: "   "}, "", nil},
		{"status", models.AssetFilter{Status: "retired"}, " WHERE status = $1", []any{"retired"}},
		{"in stock means unassigned", models.AssetFilter{Status: "in_stock"}, " WHERE assigned_to_id IS NULL", nil},
		{
			"search escapes wildcards",
			models.AssetFilter{Type: "server", Search: " 50%_off "},
			" WHERE type = $1 AND (name LIKE $2 OR model LIKE $2 OR serial_number LIKE $2 OR location LIKE $2 OR purchase_order LIKE $2)",
			[]any{"server", `%50\%\_off%`},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			where, args := assetWhere(tc.f)
			if where != tc.where {
				t.Errorf("where = %q, want %q", where, tc.where)
			}
			if !reflect.DeepEqual(args, tc.args) {
				t.Errorf("args = %#v, want %#v", args, tc.args)
			}
		})
	}
}

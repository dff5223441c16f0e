package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/crucial707/itadmin/internal/db"
	"github.com/crucial707/itadmin/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type AssetRepo struct {
	DB db.DBTX
}

func NewAssetRepo(db db.DBTX) *AssetRepo {
	return &AssetRepo{DB: db}
}

const assetColumns = `id, name, type, model, serial_number, purchase_order, purchase_date,
	warranty_expiry, location, status, assigned_to_id, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(s rowScanner) (models.Asset, error) {
	var a models.Asset
	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Type,
		&a.Model,
		&a.SerialNumber,
		&a.PurchaseOrder,
		&a.PurchaseDate,
		&a.WarrantyExpiry,
		&a.Location,
		&a.Status,
		&a.AssignedToID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// ========================
// CREATE ASSET
// ========================

func (r *AssetRepo) Create(ctx context.Context, a models.Asset) (models.Asset, error) {
	if a.Status == "" {
		a.Status = models.StatusActive
	}
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO assets (name, type, model, serial_number, purchase_order, purchase_date,
			warranty_expiry, location, status, assigned_to_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+assetColumns,
		a.Name, string(a.Type), a.Model, a.SerialNumber, a.PurchaseOrder, a.PurchaseDate,
		a.WarrantyExpiry, a.Location, string(a.Status), a.AssignedToID,
	)
	created, err := scanAsset(row)
	return created, classify("asset", err)
}

// ========================
// GET ASSET BY ID
// ========================

func (r *AssetRepo) GetByID(ctx context.Context, id int) (models.Asset, error) {
	a, err := scanAsset(r.DB.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	return a, classify("asset", err)
}

// GetForUpdate loads the asset and locks its row until the surrounding
// transaction ends. Only meaningful when the repo wraps a *sql.Tx.
func (r *AssetRepo) GetForUpdate(ctx context.Context, id int) (models.Asset, error) {
	a, err := scanAsset(r.DB.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id))
	return a, classify("asset", err)
}

// ========================
// UPDATE ASSET
// ========================

// Update overwrites every mutable column with the values in a.
func (r *AssetRepo) Update(ctx context.Context, a models.Asset) (models.Asset, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE assets
		 SET name = $1, type = $2, model = $3, serial_number = $4, purchase_order = $5,
			purchase_date = $6, warranty_expiry = $7, location = $8, status = $9,
			assigned_to_id = $10, updated_at = NOW()
		 WHERE id = $11
		 RETURNING `+assetColumns,
		a.Name, string(a.Type), a.Model, a.SerialNumber, a.PurchaseOrder,
		a.PurchaseDate, a.WarrantyExpiry, a.Location, string(a.Status),
		a.AssignedToID, a.ID,
	)
	updated, err := scanAsset(row)
	return updated, classify("asset", err)
}

// ========================
// DELETE ASSET
// ========================

func (r *AssetRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("asset %w", ErrNotFound)
	}
	return nil
}

// ========================
// LIST / COUNT / EXPORT
// ========================

// List returns one page of matching assets, newest first.
func (r *AssetRepo) List(ctx context.Context, f models.AssetFilter, limit, offset int) ([]models.Asset, error) {
	where, args := assetWhere(f)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM assets%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		assetColumns, where, len(args)-1, len(args))
	return r.query(ctx, query, args...)
}

// ListAll returns every matching asset, newest first.
func (r *AssetRepo) ListAll(ctx context.Context, f models.AssetFilter) ([]models.Asset, error) {
	where, args := assetWhere(f)
	return r.query(ctx, `SELECT `+assetColumns+` FROM assets`+where+` ORDER BY created_at DESC, id DESC`, args...)
}

func (r *AssetRepo) Count(ctx context.Context, f models.AssetFilter) (int, error) {
	where, args := assetWhere(f)
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets`+where, args...).Scan(&n)
	return n, err
}

func (r *AssetRepo) query(ctx context.Context, query string, args ...any) ([]models.Asset, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// assetWhere renders the filter as a WHERE clause with positional args.
func assetWhere(f models.AssetFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch status := strings.TrimSpace(f.Status); status {
	case "", "all":
	case string(models.StatusInStock):
		conds = append(conds, "assigned_to_id IS NULL")
	default:
		conds = append(conds, "status = "+arg(status))
	}

	if typ := strings.TrimSpace(f.Type); typ != "" && typ != "all" {
		conds = append(conds, "type = "+arg(typ))
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		p := arg("%" + escapeLike(search) + "%")
		conds = append(conds, fmt.Sprintf(
			"(name LIKE %[1]s OR model LIKE %[1]s OR serial_number LIKE %[1]s OR location LIKE %[1]s OR purchase_order LIKE %[1]s)", p))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

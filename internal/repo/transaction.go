package repo

import (
	"context"
	"fmt"

	"github.com/crucial707/itadmin/internal/db"
	"github.com/crucial707/itadmin/internal/models"
)

// TransactionRepo persists asset transactions. Rows are append-only.
type TransactionRepo struct {
	DB db.DBTX
}

func NewTransactionRepo(db db.DBTX) *TransactionRepo {
	return &TransactionRepo{DB: db}
}

const transactionColumns = `id, asset_id, action, old_value, new_value, user_id, notes, created_at`

// Create inserts t and returns the stored row.
func (r *TransactionRepo) Create(ctx context.Context, t models.AssetTransaction) (models.AssetTransaction, error) {
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO asset_transactions (asset_id, action, old_value, new_value, user_id, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+transactionColumns,
		t.AssetID, string(t.Action), jsonArg(t.OldValue), jsonArg(t.NewValue), t.UserID, t.Notes,
	)
	created, err := scanTransaction(row)
	return created, classify("transaction", err)
}

// List returns transactions newest first, optionally for a single asset.
func (r *TransactionRepo) List(ctx context.Context, assetID *int, limit, offset int) ([]models.AssetTransaction, error) {
	where, args := transactionWhere(assetID)
	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM asset_transactions%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
			transactionColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := []models.AssetTransaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func (r *TransactionRepo) Count(ctx context.Context, assetID *int) (int, error) {
	where, args := transactionWhere(assetID)
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM asset_transactions`+where, args...).Scan(&n)
	return n, err
}

func transactionWhere(assetID *int) (string, []any) {
	if assetID == nil {
		return "", nil
	}
	return " WHERE asset_id = $1", []any{*assetID}
}

func scanTransaction(s rowScanner) (models.AssetTransaction, error) {
	var (
		t              models.AssetTransaction
		oldVal, newVal []byte
	)
	err := s.Scan(&t.ID, &t.AssetID, &t.Action, &oldVal, &newVal, &t.UserID, &t.Notes, &t.CreatedAt)
	if err != nil {
		return t, err
	}
	t.OldValue = rawJSON(oldVal)
	t.NewValue = rawJSON(newVal)
	return t, nil
}

// jsonArg passes JSON as text so both drivers bind it to a JSONB column; nil stays NULL.
func jsonArg(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func rawJSON(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}

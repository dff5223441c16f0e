package repo

import (
	"context"
	"fmt"

	"github.com/crucial707/itadmin/internal/db"
	"github.com/crucial707/itadmin/internal/models"
)

// SettingRepo stores key/value application settings.
type SettingRepo struct {
	DB db.DBTX
}

func NewSettingRepo(db db.DBTX) *SettingRepo {
	return &SettingRepo{DB: db}
}

const settingColumns = `key, value, type, created_at, updated_at`

func scanSetting(s rowScanner) (models.Setting, error) {
	var st models.Setting
	err := s.Scan(&st.Key, &st.Value, &st.Type, &st.CreatedAt, &st.UpdatedAt)
	return st, err
}

// List returns all settings ordered by key.
func (r *SettingRepo) List(ctx context.Context) ([]models.Setting, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+settingColumns+` FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []models.Setting{}
	for rows.Next() {
		st, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

func (r *SettingRepo) Get(ctx context.Context, key string) (models.Setting, error) {
	st, err := scanSetting(r.DB.QueryRowContext(ctx, `SELECT `+settingColumns+` FROM settings WHERE key = $1`, key))
	return st, classify("setting", err)
}

// Upsert creates the setting or replaces its value and type.
func (r *SettingRepo) Upsert(ctx context.Context, key, value, typ string) (models.Setting, error) {
	st, err := scanSetting(r.DB.QueryRowContext(ctx,
		`INSERT INTO settings (key, value, type)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, type = EXCLUDED.type, updated_at = NOW()
		 RETURNING `+settingColumns,
		key, value, typ,
	))
	return st, classify("setting", err)
}

// Update changes an existing setting; ErrNotFound when the key is unknown.
func (r *SettingRepo) Update(ctx context.Context, key, value, typ string) (models.Setting, error) {
	st, err := scanSetting(r.DB.QueryRowContext(ctx,
		`UPDATE settings SET value = $1, type = $2, updated_at = NOW()
		 WHERE key = $3
		 RETURNING `+settingColumns,
		value, typ, key,
	))
	return st, classify("setting", err)
}

func (r *SettingRepo) Delete(ctx context.Context, key string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("setting %w", ErrNotFound)
	}
	return nil
}

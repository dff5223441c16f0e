// Package service holds write paths that span more than one repository.
package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crucial707/itadmin/internal/audit"
	"github.com/crucial707/itadmin/internal/db"
	"github.com/crucial707/itadmin/internal/metrics"
	"github.com/crucial707/itadmin/internal/models"
	"github.com/crucial707/itadmin/internal/repo"
)

// AssetService applies asset updates and deletions together with their audit rows.
type AssetService struct {
	DB *sql.DB
}

func NewAssetService(conn *sql.DB) *AssetService {
	return &AssetService{DB: conn}
}

// Update applies patch to asset id and records one transaction per tracked
// change. The asset row stays locked from read to commit, so the recorded
// old values are the ones actually replaced. actor may be nil.
func (s *AssetService) Update(ctx context.Context, id int, patch models.AssetPatch, actor *int) (models.Asset, error) {
	var (
		updated models.Asset
		changes []audit.Change
	)
	err := db.WithTx(ctx, s.DB, func(ctx context.Context, tx db.DBTX) error {
		assets := repo.NewAssetRepo(tx)
		before, err := assets.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		after, err := assets.Update(ctx, patch.Apply(before))
		if err != nil {
			return err
		}

		changes = audit.Diff(before, after)
		txns := repo.NewTransactionRepo(tx)
		for _, c := range changes {
			if _, err := txns.Create(ctx, c.Record(id, actor)); err != nil {
				return fmt.Errorf("record %s: %w", c.Action, err)
			}
		}
		updated = after
		return nil
	})
	if err != nil {
		return models.Asset{}, err
	}

	for _, c := range changes {
		metrics.IncTransactions(string(c.Action))
	}
	return updated, nil
}

// Delete writes the deleted transaction and then removes the asset, in one
// database transaction. A missing asset returns repo.ErrNotFound and leaves no
// audit row behind.
func (s *AssetService) Delete(ctx context.Context, id int, actor *int) error {
	err := db.WithTx(ctx, s.DB, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repo.NewTransactionRepo(tx).Create(ctx, audit.Deleted().Record(id, actor)); err != nil {
			return fmt.Errorf("record deleted: %w", err)
		}
		return repo.NewAssetRepo(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.IncTransactions(string(models.ActionDeleted))
	return nil
}

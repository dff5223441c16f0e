// Package seed loads the default administrator and optional demo data.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/crucial707/itadmin/internal/db"
	"github.com/crucial707/itadmin/internal/models"
	"github.com/crucial707/itadmin/internal/repo"
)

const (
	AdminEmail = "admin@company.com"
	AdminName  = "System Admin"
)

// Summary counts the rows a seed run inserted.
type Summary struct {
	Users   int
	Assets  int
	Tickets int
}

// Bootstrap creates the default administrator when no user exists, so that
// tickets always have an owner. It reports whether a user was created.
func Bootstrap(ctx context.Context, users *repo.UserRepo) (bool, error) {
	n, err := users.Count(ctx, "")
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	name := AdminName
	u, err := users.Create(ctx, models.User{Email: AdminEmail, Name: &name, Role: models.RoleAdmin})
	if err != nil {
		return false, fmt.Errorf("create default admin: %w", err)
	}
	slog.Info("default admin created", "user_id", u.ID, "email", u.Email)
	return true, nil
}

// Sample inserts the demo users, assets and tickets in one transaction.
// Running it twice fails on the duplicate user emails and inserts nothing.
func Sample(ctx context.Context, conn *sql.DB) (Summary, error) {
	var sum Summary
	err := db.WithTx(ctx, conn, func(ctx context.Context, tx db.DBTX) error {
		users := repo.NewUserRepo(tx)
		assets := repo.NewAssetRepo(tx)
		tickets := repo.NewTicketRepo(tx)

		userIDs := make([]int, len(sampleUsers))
		for i, u := range sampleUsers {
			created, err := users.Create(ctx, u)
			if err != nil {
				return fmt.Errorf("user %s: %w", u.Email, err)
			}
			userIDs[i] = created.ID
		}
		ref := func(idx int) *int {
			if idx < 0 {
				return nil
			}
			id := userIDs[idx]
			return &id
		}

		assetIDs := make([]int, len(sampleAssets))
		for i, s := range sampleAssets {
			a := s.asset
			a.AssignedToID = ref(s.owner)
			created, err := assets.Create(ctx, a)
			if err != nil {
				return fmt.Errorf("asset %s: %w", a.Name, err)
			}
			assetIDs[i] = created.ID
		}

		for _, s := range sampleTickets {
			t := s.ticket
			t.CreatorID = userIDs[s.creator]
			t.AssigneeID = ref(s.assignee)
			if s.asset >= 0 {
				id := assetIDs[s.asset]
				t.AssetID = &id
			}
			if _, err := tickets.Create(ctx, t); err != nil {
				return fmt.Errorf("ticket %q: %w", t.Title, err)
			}
		}

		sum = Summary{Users: len(userIDs), Assets: len(assetIDs), Tickets: len(sampleTickets)}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/crucial707/itadmin/internal/db"
	"github.com/crucial707/itadmin/internal/models"
	"github.com/lib/pq"
)

type TicketRepo struct {
	DB db.DBTX
}

func NewTicketRepo(db db.DBTX) *TicketRepo {
	return &TicketRepo{DB: db}
}

const ticketColumns = `id, title, description, status, priority, category, tags, creator_id,
	assignee_id, asset_id, resolved_at, created_at, updated_at`

func scanTicket(s rowScanner) (models.Ticket, error) {
	var t models.Ticket
	err := s.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.Category,
		pq.Array(&t.Tags),
		&t.CreatorID,
		&t.AssigneeID,
		&t.AssetID,
		&t.ResolvedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t, err
}

// Create inserts t. Unknown creator, assignee or asset ids yield ErrInvalidReference.
func (r *TicketRepo) Create(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	if t.Status == "" {
		t.Status = models.TicketOpen
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO tickets (title, description, status, priority, category, tags, creator_id, assignee_id, asset_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+ticketColumns,
		t.Title, t.Description, t.Status, t.Priority, t.Category, pq.Array(t.Tags),
		t.CreatorID, t.AssigneeID, t.AssetID,
	)
	created, err := scanTicket(row)
	return created, classify("ticket", err)
}

// List returns a page of tickets, newest first.
func (r *TicketRepo) List(ctx context.Context, f models.TicketFilter, limit, offset int) ([]models.Ticket, error) {
	where, args := ticketWhere(f)
	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM tickets%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
			ticketColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *TicketRepo) Count(ctx context.Context, f models.TicketFilter) (int, error) {
	where, args := ticketWhere(f)
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`+where, args...).Scan(&n)
	return n, err
}

func ticketWhere(f models.TicketFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	for _, c := range []struct{ col, val string }{
		{"status", f.Status},
		{"priority", f.Priority},
		{"category", f.Category},
	} {
		if v := strings.TrimSpace(c.val); v != "" {
			args = append(args, v)
			conds = append(conds, fmt.Sprintf("%s = $%d", c.col, len(args)))
		}
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/crucial707/itadmin/internal/db"
	"github.com/crucial707/itadmin/internal/models"
)

// AnalyticsRepo records client usage events.
type AnalyticsRepo struct {
	DB db.DBTX
}

func NewAnalyticsRepo(db db.DBTX) *AnalyticsRepo {
	return &AnalyticsRepo{DB: db}
}

const analyticsColumns = `id, event_type, event_data, user_id, ip_address, user_agent, timestamp`

func scanEvent(s rowScanner) (models.AnalyticsEvent, error) {
	var (
		e    models.AnalyticsEvent
		data []byte
	)
	if err := s.Scan(&e.ID, &e.EventType, &data, &e.UserID, &e.IPAddress, &e.UserAgent, &e.Timestamp); err != nil {
		return e, err
	}
	e.EventData = rawJSON(data)
	return e, nil
}

func (r *AnalyticsRepo) Create(ctx context.Context, e models.AnalyticsEvent) (models.AnalyticsEvent, error) {
	created, err := scanEvent(r.DB.QueryRowContext(ctx,
		`INSERT INTO analytics_events (event_type, event_data, user_id, ip_address, user_agent)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+analyticsColumns,
		e.EventType, jsonArg(e.EventData), e.UserID, e.IPAddress, e.UserAgent,
	))
	return created, classify("analytics event", err)
}

// List returns a page of events, newest first, optionally of one type.
func (r *AnalyticsRepo) List(ctx context.Context, eventType string, limit, offset int) ([]models.AnalyticsEvent, error) {
	where, args := analyticsWhere(eventType)
	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM analytics_events%s ORDER BY timestamp DESC, id DESC LIMIT $%d OFFSET $%d`,
			analyticsColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.AnalyticsEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *AnalyticsRepo) Count(ctx context.Context, eventType string) (int, error) {
	where, args := analyticsWhere(eventType)
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM analytics_events`+where, args...).Scan(&n)
	return n, err
}

func analyticsWhere(eventType string) (string, []any) {
	if eventType = strings.TrimSpace(eventType); eventType == "" {
		return "", nil
	}
	return " WHERE event_type = $1", []any{eventType}
}

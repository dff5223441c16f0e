package models

import (
	"encoding/json"
	"time"
)

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AnalyticsEvent is a free-form usage event posted by clients.
type AnalyticsEvent struct {
	ID        int             `json:"id"`
	EventType string          `json:"eventType"`
	EventData json.RawMessage `json:"eventData"`
	UserID    *int            `json:"userId"`
	IPAddress *string         `json:"ipAddress"`
	UserAgent *string         `json:"userAgent"`
	Timestamp time.Time       `json:"timestamp"`
}

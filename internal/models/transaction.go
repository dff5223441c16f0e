package models

import (
	"encoding/json"
	"time"
)

// TransactionAction names what an asset transaction records.
type TransactionAction string

const (
	ActionAssigned     TransactionAction = "assigned"
	ActionReturned     TransactionAction = "returned"
	ActionMaintenance  TransactionAction = "maintenance"
	ActionStatusChange TransactionAction = "status_change"
	ActionUpdated      TransactionAction = "updated"
	ActionDeleted      TransactionAction = "deleted"
	ActionCreated      TransactionAction = "created"
)

var TransactionActions = []TransactionAction{
	ActionAssigned,
	ActionReturned,
	ActionMaintenance,
	ActionStatusChange,
	ActionUpdated,
	ActionDeleted,
	ActionCreated,
}

func (a TransactionAction) Valid() bool {
	for _, v := range TransactionActions {
		if a == v {
			return true
		}
	}
	return false
}

// AssetTransaction is one append-only audit row about an asset.
// OldValue and NewValue hold a single-key JSON object for the field that changed.
type AssetTransaction struct {
	ID        int               `json:"id"`
	AssetID   int               `json:"assetId"`
	Action    TransactionAction `json:"action"`
	OldValue  json.RawMessage   `json:"oldValue"`
	NewValue  json.RawMessage   `json:"newValue"`
	UserID    *int              `json:"userId"`
	Notes     *string           `json:"notes"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Package audit derives asset transaction records from before/after snapshots.
package audit

import (
	"encoding/json"
	"fmt"

	"github.com/crucial707/itadmin/internal/models"
)

const (
	// Placeholder substitutes a null location in notes.
	Placeholder = "N/A"

	DeletedNote     = "Asset deleted from system"
	MaintenanceNote = "Asset sent for maintenance"
)

// Change is a pending transaction record not yet bound to an actor or persisted.
type Change struct {
	Action   models.TransactionAction
	OldValue json.RawMessage
	NewValue json.RawMessage
	Notes    string
}

// Diff compares two snapshots of the same asset and returns the transactions to
// record, ordered assignment, status, location. It emits between zero and four
// changes: a move into maintenance yields both status_change and maintenance.
func Diff(before, after models.Asset) []Change {
	var changes []Change

	if !equalInt(before.AssignedToID, after.AssignedToID) {
		old := field("assignedToId", before.AssignedToID)
		switch {
		case after.AssignedToID != nil:
			changes = append(changes, Change{
				Action:   models.ActionAssigned,
				OldValue: old,
				NewValue: field("assignedToId", after.AssignedToID),
				Notes:    fmt.Sprintf("Asset assigned to user %d", *after.AssignedToID),
			})
		case before.AssignedToID != nil:
			changes = append(changes, Change{
				Action:   models.ActionReturned,
				OldValue: old,
				NewValue: field("assignedToId", nil),
				Notes:    fmt.Sprintf("Asset returned from user %d", *before.AssignedToID),
			})
		}
	}

	if before.Status != after.Status {
		old := field("status", before.Status)
		changes = append(changes, Change{
			Action:   models.ActionStatusChange,
			OldValue: old,
			NewValue: field("status", after.Status),
			Notes:    fmt.Sprintf("Status changed from %s to %s", before.Status, after.Status),
		})
		if after.Status == models.StatusMaintenance {
			changes = append(changes, Change{
				Action:   models.ActionMaintenance,
				OldValue: old,
				NewValue: field("status", models.StatusMaintenance),
				Notes:    MaintenanceNote,
			})
		}
	}

	if !equalString(before.Location, after.Location) {
		changes = append(changes, Change{
			Action:   models.ActionUpdated,
			OldValue: field("location", before.Location),
			NewValue: field("location", after.Location),
			Notes:    fmt.Sprintf("Location changed from %s to %s", orPlaceholder(before.Location), orPlaceholder(after.Location)),
		})
	}

	return changes
}

// Deleted is the record written just before an asset row is removed.
func Deleted() Change {
	return Change{Action: models.ActionDeleted, Notes: DeletedNote}
}

// Record binds a change to an asset and an optional actor.
func (c Change) Record(assetID int, userID *int) models.AssetTransaction {
	notes := c.Notes
	return models.AssetTransaction{
		AssetID:  assetID,
		Action:   c.Action,
		OldValue: c.OldValue,
		NewValue: c.NewValue,
		UserID:   userID,
		Notes:    &notes,
	}
}

// field encodes a single-key object such as {"status":"active"}.
func field(key string, v any) json.RawMessage {
	b, err := json.Marshal(map[string]any{key: v})
	if err != nil {
		// Only ints, strings and their pointers reach here.
		panic(err)
	}
	return b
}

func orPlaceholder(s *string) string {
	if s == nil || *s == "" {
		return Placeholder
	}
	return *s
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

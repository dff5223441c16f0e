package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// blanker is implemented by value types whose falsy form means "clear the field".
type blanker interface {
	blank() bool
}

// Field distinguishes an absent JSON key from an explicit null.
//
// Set is true whenever the key appeared in the document. Value is nil for null
// and for falsy inputs of types implementing blanker (Date, FlexID).
type Field[T any] struct {
	Set   bool
	Value *T
}

// Present returns a set field holding v.
func Present[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Null returns a set field holding null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	f.Value = nil
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if z, ok := any(v).(blanker); ok && z.blank() {
		return nil
	}
	f.Value = &v
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

// IsZero reports an absent field, so `omitzero` drops it when encoding.
func (f Field[T]) IsZero() bool {
	return !f.Set
}

// Date accepts "YYYY-MM-DD" or RFC 3339 and normalizes to a UTC instant.
// The empty string decodes to the zero Date.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string")
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) blank() bool { return d.IsZero() }

// ParseDate parses a date-only or RFC 3339 string. Blank input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t.UTC(), nil
}

// FlexID is an identifier that may arrive as a JSON number or a numeric string.
// 0, "", and false decode to the zero FlexID, which a Field treats as null.
type FlexID int

func (id *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "false" {
		*id = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	if s == "" {
		*id = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*id = FlexID(n)
	return nil
}

func (id FlexID) blank() bool { return id == 0 }

// intPtr converts an optional FlexID to an optional int.
func (f Field[T]) intPtr() *int {
	if f.Value == nil {
		return nil
	}
	if id, ok := any(*f.Value).(FlexID); ok {
		n := int(id)
		return &n
	}
	return nil
}

// AssetPatch is a partial asset update. Absent fields leave the asset untouched;
// present fields overwrite it, including with null.
type AssetPatch struct {
	Name           Field[string]      `json:"name,omitzero"`
	Type           Field[AssetType]   `json:"type,omitzero"`
	Model          Field[string]      `json:"model,omitzero"`
	SerialNumber   Field[string]      `json:"serialNumber,omitzero"`
	PurchaseOrder  Field[string]      `json:"purchaseOrder,omitzero"`
	PurchaseDate   Field[Date]        `json:"purchaseDate,omitzero"`
	WarrantyExpiry Field[Date]        `json:"warrantyExpiry,omitzero"`
	Location       Field[string]      `json:"location,omitzero"`
	Status         Field[AssetStatus] `json:"status,omitzero"`
	AssignedToID   Field[FlexID]      `json:"assignedToId,omitzero"`
}

// Validate returns per-field problems, or nil when the patch can be applied.
func (p AssetPatch) Validate() map[string]string {
	fields := make(map[string]string)
	if p.Name.Set && (p.Name.Value == nil || strings.TrimSpace(*p.Name.Value) == "") {
		fields["name"] = "required"
	}
	if p.Type.Set && (p.Type.Value == nil || !p.Type.Value.Valid()) {
		fields["type"] = "must be one of " + joinValues(AssetTypes)
	}
	if p.Status.Set && (p.Status.Value == nil || !p.Status.Value.Valid()) {
		fields["status"] = "must be one of " + joinValues(AssetStatuses)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Apply returns a copy of a with every present field overwritten.
func (p AssetPatch) Apply(a Asset) Asset {
	if p.Name.Set && p.Name.Value != nil {
		a.Name = *p.Name.Value
	}
	if p.Type.Set && p.Type.Value != nil {
		a.Type = *p.Type.Value
	}
	if p.Model.Set {
		a.Model = p.Model.Value
	}
	if p.SerialNumber.Set {
		a.SerialNumber = p.SerialNumber.Value
	}
	if p.PurchaseOrder.Set {
		a.PurchaseOrder = p.PurchaseOrder.Value
	}
	if p.PurchaseDate.Set {
		a.PurchaseDate = datePtr(p.PurchaseDate.Value)
	}
	if p.WarrantyExpiry.Set {
		a.WarrantyExpiry = datePtr(p.WarrantyExpiry.Value)
	}
	if p.Location.Set {
		a.Location = p.Location.Value
	}
	if p.Status.Set && p.Status.Value != nil {
		a.Status = *p.Status.Value
	}
	if p.AssignedToID.Set {
		a.AssignedToID = p.AssignedToID.intPtr()
	}
	return a
}

func datePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func joinValues[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

package models

import "time"

// AssetType is the kind of equipment or license being tracked.
type AssetType string

const (
	AssetTypeComputer        AssetType = "computer"
	AssetTypeMonitor         AssetType = "monitor"
	AssetTypePrinter         AssetType = "printer"
	AssetTypeServer          AssetType = "server"
	AssetTypeNetworkDevice   AssetType = "network_device"
	AssetTypeSoftwareLicense AssetType = "software_license"
)

// AssetTypes lists every accepted asset type, in display order.
var AssetTypes = []AssetType{
	AssetTypeComputer,
	AssetTypeMonitor,
	AssetTypePrinter,
	AssetTypeServer,
	AssetTypeNetworkDevice,
	AssetTypeSoftwareLicense,
}

func (t AssetType) Valid() bool {
	for _, v := range AssetTypes {
		if t == v {
			return true
		}
	}
	return false
}

// AssetStatus is the stored lifecycle status of an asset.
type AssetStatus string

const (
	StatusActive      AssetStatus = "active"
	StatusInStock     AssetStatus = "in_stock"
	StatusMaintenance AssetStatus = "maintenance"
	StatusRetired     AssetStatus = "retired"
	StatusLost        AssetStatus = "lost"
)

var AssetStatuses = []AssetStatus{
	StatusActive,
	StatusInStock,
	StatusMaintenance,
	StatusRetired,
	StatusLost,
}

func (s AssetStatus) Valid() bool {
	for _, v := range AssetStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Asset struct {
	ID             int         `json:"id"`
	Name           string      `json:"name"`
	Type           AssetType   `json:"type"`
	Model          *string     `json:"model"`
	SerialNumber   *string     `json:"serialNumber"`
	PurchaseOrder  *string     `json:"purchaseOrder"`
	PurchaseDate   *time.Time  `json:"purchaseDate"`
	WarrantyExpiry *time.Time  `json:"warrantyExpiry"`
	Location       *string     `json:"location"`
	Status         AssetStatus `json:"status"`
	AssignedToID   *int        `json:"assignedToId"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// AssetFilter selects assets for listing and export.
//
// Status "in_stock" is not matched against the stored status: it selects
// every asset without an assignee, whatever its status column says.
type AssetFilter struct {
	Status string
	Type   string
	Search string
}

package seed

import (
	"time"

	"github.com/crucial707/itadmin/internal/models"
)

const (
	admin = iota
	john
	sarah
	mike
	alice
	bob

	none = -1
)

var sampleUsers = []models.User{
	{Email: "admin@company.com", Name: str("System Administrator"), Role: models.RoleAdmin},
	{Email: "john.technician@company.com", Name: str("John Smith"), Role: models.RoleTechnician},
	{Email: "sarah.technician@company.com", Name: str("Sarah Johnson"), Role: models.RoleTechnician},
	{Email: "mike.manager@company.com", Name: str("Mike Wilson"), Role: models.RoleManager},
	{Email: "alice.user@company.com", Name: str("Alice Brown"), Role: models.RoleUser},
	{Email: "bob.user@company.com", Name: str("Bob Davis"), Role: models.RoleUser},
}

type sampleAsset struct {
	asset models.Asset
	owner int
}

var sampleAssets = []sampleAsset{
	{asset("Dell Latitude 5420", models.AssetTypeComputer, "Latitude 5420", "DL5420-001", "2023-01-15", "2026-01-15", "Floor 1, Office 101", models.StatusActive), alice},
	{asset("HP EliteBook 840", models.AssetTypeComputer, "EliteBook 840 G8", "HP840-002", "2023-02-20", "2026-02-20", "Floor 1, Office 102", models.StatusActive), bob},
	{asset(`MacBook Pro 16"`, models.AssetTypeComputer, "MacBook Pro M1", "MBP16-003", "2023-03-10", "2026-03-10", "Floor 2, Office 201", models.StatusActive), john},
	{asset(`Dell 27" 4K Monitor`, models.AssetTypeMonitor, "U2720Q", "DELL27-004", "2023-01-15", "2026-01-15", "Floor 1, Office 101", models.StatusActive), alice},
	{asset(`LG 32" UltraWide Monitor`, models.AssetTypeMonitor, "32UL950-W", "LG32-005", "2023-02-20", "2026-02-20", "Floor 1, Office 102", models.StatusActive), bob},
	{asset("HP LaserJet Pro MFP", models.AssetTypePrinter, "M182nw", "HP182-006", "2023-03-01", "2025-03-01", "Floor 1, Printer Room", models.StatusActive), none},
	{asset("Brother MFC-L2710DW", models.AssetTypePrinter, "MFC-L2710DW", "BR2710-007", "2023-04-15", "2025-04-15", "Floor 2, Copy Room", models.StatusMaintenance), none},
	{asset("Dell PowerEdge R440", models.AssetTypeServer, "PowerEdge R440", "DER440-008", "2022-12-01", "2025-12-01", "Server Room", models.StatusActive), none},
	{asset("Cisco Catalyst 2960", models.AssetTypeNetworkDevice, "WS-C2960-24TT-L", "CISCO2960-009", "2022-11-15", "2025-11-15", "Network Closet", models.StatusActive), none},
	{asset("Microsoft Office 365 Pro Plus", models.AssetTypeSoftwareLicense, "Office 365 Pro Plus", "MS365-010", "2023-01-01", "2024-01-01", "Software Licenses", models.StatusActive), none},
	{asset("Adobe Creative Cloud", models.AssetTypeSoftwareLicense, "Creative Cloud All Apps", "ADOBE-011", "2023-02-01", "2024-02-01", "Software Licenses", models.StatusActive), john},
}

// sampleTicket indexes into sampleUsers and sampleAssets; none leaves the reference empty.
type sampleTicket struct {
	ticket   models.Ticket
	creator  int
	assignee int
	asset    int
}

var sampleTickets = []sampleTicket{
	{ticket("Computer not starting up", "My Dell laptop won't turn on. Tried multiple power outlets and the battery is charged.", models.TicketOpen, models.PriorityHigh, "hardware"), alice, none, 0},
	{ticket("Cannot access company email", "Getting authentication error when trying to log into Outlook. Password reset didn't help.", models.TicketInProgress, models.PriorityUrgent, "access"), bob, john, 1},
	{ticket("Printer out of toner", `The main office printer is showing "out of toner" error. Need replacement cartridge.`, models.TicketOpen, models.PriorityMedium, "hardware"), alice, none, 5},
	{ticket("Slow internet connection", "Internet speed has been very slow for the past few days. Pages take forever to load.", models.TicketOpen, models.PriorityMedium, "network"), bob, none, none},
	{ticket("Software installation request", "Need Adobe Photoshop installed on my workstation for design work.", models.TicketResolved, models.PriorityLow, "software"), john, sarah, 2},
	{ticket("Monitor flickering issue", "The external monitor connected to my laptop keeps flickering intermittently.", models.TicketInProgress, models.PriorityMedium, "hardware"), alice, john, 3},
	{ticket("VPN connection problems", "Unable to connect to company VPN from home office. Getting timeout errors.", models.TicketOpen, models.PriorityHigh, "network"), bob, none, none},
	{ticket("New employee setup", "Need to set up workstation, email, and access for new marketing hire.", models.TicketResolved, models.PriorityHigh, "access"), mike, john, none},
	{ticket("Server backup failure", "Automated backup job failed last night. Need to investigate and fix.", models.TicketInProgress, models.PriorityUrgent, "hardware"), admin, sarah, 6},
	{ticket("Microsoft Office activation", `Office applications showing "product not activated" error.`, models.TicketOpen, models.PriorityMedium, "software"), alice, none, 8},
}

func asset(name string, typ models.AssetType, model, serial, purchased, warranty, location string, status models.AssetStatus) models.Asset {
	return models.Asset{
		Name:           name,
		Type:           typ,
		Model:          str(model),
		SerialNumber:   str(serial),
		PurchaseDate:   day(purchased),
		WarrantyExpiry: day(warranty),
		Location:       str(location),
		Status:         status,
	}
}

func ticket(title, description, status, priority, category string) models.Ticket {
	return models.Ticket{
		Title:       title,
		Description: str(description),
		Status:      status,
		Priority:    priority,
		Category:    category,
	}
}

func str(s string) *string { return &s }

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

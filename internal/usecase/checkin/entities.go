package checkin

import "time"

type ScanInput struct {
	QRCodeValue string `json:"qr_code_value"`
	AdminID     string `json:"admin_id"`
	Notes       string `json:"notes,omitempty"`
}

type ScanResult struct {
	ApplicationID     string     `json:"application_id"`
	ReservationID     string     `json:"reservation_id"`
	DonorID           string     `json:"donor_id"`
	SlotNumber        int        `json:"slot_number"`
	ApplicationStatus string     `json:"application_status"`
	ReservationStatus string     `json:"reservation_status"`
	ScannedAt         *time.Time `json:"scanned_at,omitempty"`
	CheckedInAt       *time.Time `json:"checked_in_at,omitempty"`
	// AlreadyCompleted marks an idempotent repeat scan; no audit row was
	// written for it.
	AlreadyCompleted bool `json:"already_completed"`
}

type RefScanInput struct {
	QRCodeRef string `json:"qr_code_ref"`
	AdminID   string `json:"admin_id"`
}

type RefScanResult struct {
	Kind             string     `json:"kind"` // "stall-reservation" or "produce-donation"
	SubjectID        string     `json:"subject_id"`
	Status           string     `json:"status"`
	CheckedInAt      *time.Time `json:"checked_in_at,omitempty"`
	AlreadyCompleted bool       `json:"already_completed"`
}

type StatsDTO struct {
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}

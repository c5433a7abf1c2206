package stall

import "time"

type ReserveInput struct {
	ProgramID string `json:"program_id"`
	DonorID   string `json:"donor_id"`
}

type ApplicationDTO struct {
	ApplicationID     string     `json:"application_id"`
	QRCodeValue       string     `json:"qr_code_value"`
	QRCodeImageURL    string     `json:"qr_code_image_url"`
	ScheduledDate     time.Time  `json:"scheduled_date"`
	ApplicationStatus string     `json:"application_status"`
	QRCodeScannedAt   *time.Time `json:"qr_code_scanned_at,omitempty"`
}

type ReservationDTO struct {
	ReservationID string          `json:"reservation_id"`
	ProgramID     string          `json:"program_id"`
	DonorID       string          `json:"donor_id"`
	SlotNumber    int             `json:"slot_number"`
	Status        string          `json:"status"`
	QRCodeRef     string          `json:"qr_code_ref"`
	QRCodeURL     string          `json:"qr_code_url"`
	ReservedAt    time.Time       `json:"reserved_at"`
	CheckedInAt   *time.Time      `json:"checked_in_at,omitempty"`
	CanceledAt    *time.Time      `json:"canceled_at,omitempty"`
	Application   *ApplicationDTO `json:"application,omitempty"`
}

type SweepReport struct {
	CancelledReservations int `json:"cancelled_reservations"`
	ProgramsTouched       int `json:"programs_touched"`
}

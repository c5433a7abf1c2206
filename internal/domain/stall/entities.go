package stall

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound             = errors.New("reservation not found")
	ErrDuplicateReservation = errors.New("donor already has an active reservation for this program")
	ErrAlreadyCancelled     = errors.New("already cancelled")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationApproved  ReservationStatus = "APPROVED"
	ReservationCheckedIn ReservationStatus = "CHECKED_IN"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Active statuses occupy a slot and count against the capacity ledger.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationApproved || s == ReservationCheckedIn
}

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationCompleted ApplicationStatus = "COMPLETED"
	ApplicationCancelled ApplicationStatus = "CANCELLED"
)

// StallReservation is a donor's hold on one numbered stall slot at a
// program. Rows are never deleted; cancellation is a status transition.
type StallReservation struct {
	ID            uint64            `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ReservationID string            `gorm:"column:reservation_id;size:36;uniqueIndex:ux_reservations_reservation_id" json:"reservation_id"`
	ProgramID     uint64            `gorm:"column:program_id;not null;index:idx_reservations_program" json:"-"`
	DonorID       string            `gorm:"column:donor_id;size:36;not null;index:idx_reservations_donor" json:"donor_id"`
	SlotNumber    int               `gorm:"column:slot_number;not null" json:"slot_number"`
	Status        ReservationStatus `gorm:"column:status;size:16;not null;default:'PENDING';index" json:"status"`
	QRCodeRef     string            `gorm:"column:qr_code_ref;size:32;index:idx_reservations_qr_ref" json:"qr_code_ref"`
	QRCodeURL     string            `gorm:"column:qr_code_url;type:text" json:"qr_code_url"`
	ReservedAt    time.Time         `gorm:"column:reserved_at" json:"reserved_at"`
	CheckedInAt   *time.Time        `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CanceledAt    *time.Time        `gorm:"column:canceled_at" json:"canceled_at,omitempty"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt     gorm.DeletedAt    `gorm:"column:deleted_at;index" json:"-"`
}

func (StallReservation) TableName() string { return "stall_reservations" }

// StallApplication is the scannable artifact created with every
// reservation (1:1). Its QR value resolves back to exactly this row.
type StallApplication struct {
	ID                   uint64            `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID        string            `gorm:"column:application_id;size:36;uniqueIndex:ux_applications_application_id" json:"application_id"`
	StallReservationID   uint64            `gorm:"column:stall_reservation_id;not null;uniqueIndex:ux_applications_reservation" json:"-"`
	QRCodeValue          string            `gorm:"column:qr_code_value;size:32;not null;uniqueIndex:ux_applications_qr_value" json:"qr_code_value"`
	QRCodeImageURL       string            `gorm:"column:qr_code_image_url;type:text" json:"qr_code_image_url"`
	ScheduledDate        time.Time         `gorm:"column:scheduled_date" json:"scheduled_date"`
	ApplicationStatus    ApplicationStatus `gorm:"column:application_status;size:16;not null;default:'PENDING';index" json:"application_status"`
	QRCodeScannedAt      *time.Time        `gorm:"column:qr_code_scanned_at" json:"qr_code_scanned_at,omitempty"`
	QRCodeScannedByAdmin *string           `gorm:"column:qr_code_scanned_by_admin_id;size:36" json:"qr_code_scanned_by_admin_id,omitempty"`
	CreatedAt            time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt            gorm.DeletedAt    `gorm:"column:deleted_at;index" json:"-"`
}

func (StallApplication) TableName() string { return "stall_applications" }

// StallApplicationScan is the append-only audit trail: one row per scan
// that completed an application. Never updated, never deleted.
type StallApplicationScan struct {
	ID                 uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ScanID             string    `gorm:"column:scan_id;size:36;uniqueIndex:ux_scans_scan_id" json:"scan_id"`
	StallApplicationID uint64    `gorm:"column:stall_application_id;not null;index:idx_scans_application" json:"-"`
	ScannedByAdminID   *string   `gorm:"column:scanned_by_admin_id;size:36" json:"scanned_by_admin_id,omitempty"`
	Notes              string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	ScannedAt          time.Time `gorm:"column:scanned_at" json:"scanned_at"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (StallApplicationScan) TableName() string { return "stall_application_scans" }

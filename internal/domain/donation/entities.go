package donation

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("donation not found")
	ErrItemNotFound      = errors.New("donation item not found")
	ErrAlreadyCancelled  = errors.New("donation already cancelled")
	ErrInvalidTransition = errors.New("invalid donation transition")
	ErrValidation        = errors.New("invalid donation input")
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentVerified PaymentStatus = "VERIFIED"
	PaymentFailed   PaymentStatus = "FAILED"
)

type ItemStatus string

const (
	ItemPending  ItemStatus = "PENDING"
	ItemApproved ItemStatus = "APPROVED"
	ItemRejected ItemStatus = "REJECTED"
)

// Verdict is the donation-level outcome folded from item decisions. It
// stays null until no item is PENDING.
type Verdict string

const (
	VerdictCompletelyApproved Verdict = "COMPLETELY_APPROVED"
	VerdictExtremelyApproved  Verdict = "EXTREMELY_APPROVED"
	VerdictFairlyApproved     Verdict = "FAIRLY_APPROVED"
	VerdictBarelyApproved     Verdict = "BARELY_APPROVED"
	VerdictRejected           Verdict = "REJECTED"
	VerdictMixed              Verdict = "MIXED"
)

type Donation struct {
	ID               uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DonationID       string         `gorm:"column:donation_id;size:36;uniqueIndex:ux_donations_donation_id" json:"donation_id"`
	Status           Status         `gorm:"column:status;size:16;not null;default:'SCHEDULED';index" json:"status"`
	ScheduledDate    time.Time      `gorm:"column:scheduled_date" json:"scheduled_date"`
	DonorID          *string        `gorm:"column:donor_id;size:36;index:idx_donations_donor" json:"donor_id,omitempty"`
	DonationCenterID *string        `gorm:"column:donation_center_id;size:36" json:"donation_center_id,omitempty"`
	MonetaryAmount   *float64       `gorm:"column:monetary_amount;type:decimal(18,2)" json:"monetary_amount,omitempty"`
	PaymentMethod    *string        `gorm:"column:payment_method;size:32" json:"payment_method,omitempty"`
	PaymentReference *string        `gorm:"column:payment_reference;size:128" json:"payment_reference,omitempty"`
	PaymentStatus    *PaymentStatus `gorm:"column:payment_status;size:16" json:"payment_status,omitempty"`
	PaymentProvider  *string        `gorm:"column:payment_provider;size:32" json:"payment_provider,omitempty"`
	PaymentVerifiedAt *time.Time    `gorm:"column:payment_verified_at" json:"payment_verified_at,omitempty"`
	QRCodeRef        *string        `gorm:"column:qr_code_ref;size:32;index:idx_donations_qr_ref" json:"qr_code_ref,omitempty"`
	QRCodeImageURL   *string        `gorm:"column:qr_code_image_url;type:text" json:"qr_code_image_url,omitempty"`
	ApprovalVerdict  *Verdict       `gorm:"column:approval_verdict;size:32" json:"approval_verdict,omitempty"`
	CheckedInAt      *time.Time     `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	Items []DonationItem `gorm:"foreignKey:DonationID;references:ID" json:"items,omitempty"`
}

func (Donation) TableName() string { return "donations" }

type DonationItem struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ItemID     string         `gorm:"column:item_id;size:36;uniqueIndex:ux_donation_items_item_id" json:"item_id"`
	DonationID uint64         `gorm:"column:donation_id;not null;index:idx_donation_items_donation" json:"-"`
	Name       string         `gorm:"column:name;size:255;not null" json:"name"`
	Category   string         `gorm:"column:category;size:64" json:"category"`
	Quantity   float64        `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Unit       string         `gorm:"column:unit;size:32" json:"unit"`
	Status     ItemStatus     `gorm:"column:status;size:16;not null;default:'PENDING';index" json:"status"`
	ImageURL   *string        `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (DonationItem) TableName() string { return "donation_items" }

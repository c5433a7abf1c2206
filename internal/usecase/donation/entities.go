package donation

import (
	"time"

	donationDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/donation"
	"github.com/zoraEmon/food-o-nation-sub001/internal/payment"
)

type ItemInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	ImageURL string  `json:"image_url,omitempty"`
}

type CreateInput struct {
	DonorID          string      `json:"donor_id,omitempty"`
	DonationCenterID string      `json:"donation_center_id,omitempty"`
	ScheduledDate    time.Time   `json:"scheduled_date"`
	MonetaryAmount   float64     `json:"monetary_amount,omitempty"`
	PaymentMethod    string      `json:"payment_method,omitempty"`
	PaymentReference string      `json:"payment_reference,omitempty"`
	Items            []ItemInput `json:"items,omitempty"`
}

type ItemDTO struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Status   string  `json:"status"`
	ImageURL string  `json:"image_url,omitempty"`
}

type DonationDTO struct {
	DonationID       string     `json:"donation_id"`
	Status           string     `json:"status"`
	ScheduledDate    time.Time  `json:"scheduled_date"`
	DonorID          string     `json:"donor_id,omitempty"`
	DonationCenterID string     `json:"donation_center_id,omitempty"`
	MonetaryAmount   *float64   `json:"monetary_amount,omitempty"`
	PaymentMethod    string     `json:"payment_method,omitempty"`
	PaymentStatus    string     `json:"payment_status,omitempty"`
	PaymentProvider  string     `json:"payment_provider,omitempty"`
	PaymentVerifiedAt *time.Time `json:"payment_verified_at,omitempty"`
	QRCodeRef        string     `json:"qr_code_ref,omitempty"`
	QRCodeImageURL   string     `json:"qr_code_image_url,omitempty"`
	ApprovalVerdict  string     `json:"approval_verdict,omitempty"`
	Items            []ItemDTO  `json:"items,omitempty"`
}

type PaymentOutcome struct {
	DonationID string         `json:"donation_id"`
	Status     string         `json:"status"`
	Result     payment.Result `json:"result"`
}

// ItemDecision is the updateItemStatus response: the mutated item plus
// the donation verdict, which stays null until every item is decided.
type ItemDecision struct {
	Item    ItemDTO                 `json:"item"`
	Verdict *donationDomain.Verdict `json:"verdict"`
}

type UpdateItemInput struct {
	ItemID  string `json:"item_id"`
	Status  string `json:"status"`
	AdminID string `json:"admin_id"`
}

// Package donation owns the drop-off/monetary donation lifecycle:
// creation, payment verification against the external gateway, and the
// per-item approval flow that folds into a donation-level verdict.
package donation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	donationDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/donation"
	"github.com/zoraEmon/food-o-nation-sub001/internal/domain/uow"
	"github.com/zoraEmon/food-o-nation-sub001/internal/notify"
	"github.com/zoraEmon/food-o-nation-sub001/internal/payment"
	"github.com/zoraEmon/food-o-nation-sub001/internal/qr"

	"github.com/google/uuid"
)

// Gateway is the slice of the payment package this usecase consumes.
type Gateway interface {
	Verify(ctx context.Context, method string, amount float64, reference string) payment.Result
}

type Usecase struct {
	uow      uow.UnitOfWork
	gateway  Gateway
	qr       *qr.Service
	donors   notify.DonorLedger
	mailer   notify.Mailer
	activity notify.ActivityLog
}

func NewUsecase(tx uow.UnitOfWork, gw Gateway, qrSvc *qr.Service, donors notify.DonorLedger, mailer notify.Mailer, activity notify.ActivityLog) *Usecase {
	return &Usecase{uow: tx, gateway: gw, qr: qrSvc, donors: donors, mailer: mailer, activity: activity}
}

// Create registers a scheduled donation. Produce drop-offs get a QR
// reference minted up-front so the artifact exists before the donor
// leaves the page; monetary pledges stay SCHEDULED until verified.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*DonationDTO, error) {
	monetary := in.MonetaryAmount > 0
	if !monetary && len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: a donation needs items or a monetary amount", donationDomain.ErrValidation)
	}
	if in.MonetaryAmount < 0 {
		return nil, fmt.Errorf("%w: monetary amount must be positive", donationDomain.ErrValidation)
	}
	for _, it := range in.Items {
		if it.Name == "" || it.Quantity < 0 {
			return nil, fmt.Errorf("%w: item needs a name and a non-negative quantity", donationDomain.ErrValidation)
		}
	}

	d := &donationDomain.Donation{
		DonationID:    uuid.NewString(),
		Status:        donationDomain.StatusScheduled,
		ScheduledDate: in.ScheduledDate.UTC(),
	}
	if in.DonorID != "" {
		d.DonorID = &in.DonorID
	}
	if in.DonationCenterID != "" {
		d.DonationCenterID = &in.DonationCenterID
	}
	if monetary {
		amount := in.MonetaryAmount
		method := in.PaymentMethod
		ref := in.PaymentReference
		status := donationDomain.PaymentPending
		d.MonetaryAmount = &amount
		d.PaymentMethod = &method
		d.PaymentReference = &ref
		d.PaymentStatus = &status
	}

	if len(in.Items) > 0 {
		minted, err := u.qr.Mint(ctx, qr.Payload{
			Type:       qr.TypeProduceDonation,
			DonationID: d.DonationID,
			ProgramID:  in.DonationCenterID,
			DonorID:    in.DonorID,
		})
		if err != nil {
			return nil, err
		}
		d.QRCodeRef = &minted.Token
		d.QRCodeImageURL = &minted.ImageURL
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Donations.Create(ctx, d); err != nil {
			return err
		}
		for _, it := range in.Items {
			item := &donationDomain.DonationItem{
				ItemID:     uuid.NewString(),
				DonationID: d.ID,
				Name:       it.Name,
				Category:   it.Category,
				Quantity:   it.Quantity,
				Unit:       it.Unit,
				Status:     donationDomain.ItemPending,
			}
			if it.ImageURL != "" {
				img := it.ImageURL
				item.ImageURL = &img
			}
			if err := r.Items.Create(ctx, item); err != nil {
				return err
			}
			d.Items = append(d.Items, *item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.DonorID != "" {
		if err := u.mailer.Send(ctx, in.DonorID, "Donation scheduled",
			"Thank you! Your donation is scheduled for "+d.ScheduledDate.Format("2006-01-02")+"."); err != nil {
			log.Printf("donation mail failed: %v", err)
		}
	}
	return toDonationDTO(d), nil
}

// VerifyPayment runs the external verification for a monetary donation.
// The gateway call happens outside any transaction; the status write
// re-reads current state under lock afterwards. A failed verification
// never completes the donation — the failure reason is surfaced for the
// donor-facing message.
func (u *Usecase) VerifyPayment(ctx context.Context, donationID string) (*PaymentOutcome, error) {
	var method, reference string
	var amount float64
	var donorID string

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Donations.GetByDonationID(ctx, donationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return donationDomain.ErrNotFound
			}
			return err
		}
		if d.Status == donationDomain.StatusCancelled {
			return donationDomain.ErrAlreadyCancelled
		}
		if d.MonetaryAmount == nil || d.PaymentMethod == nil || d.PaymentReference == nil {
			return fmt.Errorf("%w: donation has no payment to verify", donationDomain.ErrValidation)
		}
		amount = *d.MonetaryAmount
		method = *d.PaymentMethod
		reference = *d.PaymentReference
		if d.DonorID != nil {
			donorID = *d.DonorID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// blocking external I/O; no lock is held across it
	result := u.gateway.Verify(ctx, method, amount, reference)

	out := &PaymentOutcome{DonationID: donationID, Result: result}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Donations.GetByDonationIDForUpdate(ctx, donationID)
		if err != nil {
			return err
		}
		if d.PaymentStatus != nil && *d.PaymentStatus == donationDomain.PaymentVerified {
			// a concurrent verification already landed; keep it
			out.Status = string(d.Status)
			out.Result = payment.Result{Success: true, Provider: stringOrEmpty(d.PaymentProvider), VerifiedAt: d.PaymentVerifiedAt}
			return nil
		}

		if result.Success {
			status := donationDomain.PaymentVerified
			provider := result.Provider
			d.PaymentStatus = &status
			d.PaymentProvider = &provider
			d.PaymentVerifiedAt = result.VerifiedAt
			d.Status = donationDomain.StatusCompleted
		} else {
			status := donationDomain.PaymentFailed
			d.PaymentStatus = &status
		}
		if err := r.Donations.Save(ctx, d); err != nil {
			return err
		}
		out.Status = string(d.Status)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Success && donorID != "" {
		u.rewardPayment(ctx, donorID, amount)
	}
	if !result.Success && donorID != "" {
		if err := u.mailer.Send(ctx, donorID, "Payment verification failed",
			"We could not verify your payment: "+result.FailureReason+". Your pledge has not been completed."); err != nil {
			log.Printf("failure mail failed: %v", err)
		}
	}
	return out, nil
}

// UpdateItemStatus records one admin decision and re-aggregates. The
// item write and the aggregation read share a transaction that locks
// the donation row, so two concurrent decisions serialize and each
// aggregation observes every committed decision plus its own.
func (u *Usecase) UpdateItemStatus(ctx context.Context, in UpdateItemInput) (*ItemDecision, error) {
	status := donationDomain.ItemStatus(in.Status)
	if status != donationDomain.ItemApproved && status != donationDomain.ItemRejected {
		return nil, fmt.Errorf("%w: item status must be APPROVED or REJECTED", donationDomain.ErrValidation)
	}

	var out *ItemDecision
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		item, err := r.Items.GetByItemIDForUpdate(ctx, in.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return donationDomain.ErrItemNotFound
			}
			return err
		}

		d, err := r.Donations.GetByIDForUpdate(ctx, item.DonationID)
		if err != nil {
			return err
		}
		if d.Status == donationDomain.StatusCancelled {
			return donationDomain.ErrInvalidTransition
		}

		item.Status = status
		if err := r.Items.Save(ctx, item); err != nil {
			return err
		}

		items, err := r.Items.ListByDonationID(ctx, d.ID)
		if err != nil {
			return err
		}
		verdict := Aggregate(items)
		if verdict != nil {
			// verdict and completion land in the same update
			d.ApprovalVerdict = verdict
			d.Status = donationDomain.StatusCompleted
			if err := r.Donations.Save(ctx, d); err != nil {
				return err
			}
		}

		out = &ItemDecision{Item: toItemDTO(item), Verdict: verdict}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := u.activity.Append(ctx, in.AdminID, "donation.item."+string(status), "item "+in.ItemID); err != nil {
		log.Printf("activity append failed: %v", err)
	}
	return out, nil
}

// Get returns a donation with its items.
func (u *Usecase) Get(ctx context.Context, donationID string) (*DonationDTO, error) {
	var dto *DonationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Donations.GetByDonationID(ctx, donationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return donationDomain.ErrNotFound
			}
			return err
		}
		dto = toDonationDTO(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) rewardPayment(ctx context.Context, donorID string, amount float64) {
	if err := u.donors.AddDonationTotal(ctx, donorID, amount); err != nil {
		log.Printf("donation total update failed: %v", err)
	}
	if err := u.donors.AwardPoints(ctx, donorID, int(amount)); err != nil {
		log.Printf("award points failed: %v", err)
	}
	if err := u.mailer.Send(ctx, donorID, "Payment verified",
		"Your monetary donation was verified. Thank you for your generosity!"); err != nil {
		log.Printf("verification mail failed: %v", err)
	}
	if err := u.activity.Append(ctx, donorID, "donation.payment.verified", fmt.Sprintf("amount %.2f", amount)); err != nil {
		log.Printf("activity append failed: %v", err)
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toItemDTO(it *donationDomain.DonationItem) ItemDTO {
	dto := ItemDTO{
		ItemID:   it.ItemID,
		Name:     it.Name,
		Category: it.Category,
		Quantity: it.Quantity,
		Unit:     it.Unit,
		Status:   string(it.Status),
	}
	if it.ImageURL != nil {
		dto.ImageURL = *it.ImageURL
	}
	return dto
}

func toDonationDTO(d *donationDomain.Donation) *DonationDTO {
	dto := &DonationDTO{
		DonationID:    d.DonationID,
		Status:        string(d.Status),
		ScheduledDate: d.ScheduledDate,
	}
	if d.DonorID != nil {
		dto.DonorID = *d.DonorID
	}
	if d.DonationCenterID != nil {
		dto.DonationCenterID = *d.DonationCenterID
	}
	dto.MonetaryAmount = d.MonetaryAmount
	if d.PaymentMethod != nil {
		dto.PaymentMethod = *d.PaymentMethod
	}
	if d.PaymentStatus != nil {
		dto.PaymentStatus = string(*d.PaymentStatus)
	}
	if d.PaymentProvider != nil {
		dto.PaymentProvider = *d.PaymentProvider
	}
	dto.PaymentVerifiedAt = d.PaymentVerifiedAt
	if d.QRCodeRef != nil {
		dto.QRCodeRef = *d.QRCodeRef
	}
	if d.QRCodeImageURL != nil {
		dto.QRCodeImageURL = *d.QRCodeImageURL
	}
	if d.ApprovalVerdict != nil {
		dto.ApprovalVerdict = string(*d.ApprovalVerdict)
	}
	for i := range d.Items {
		dto.Items = append(dto.Items, toItemDTO(&d.Items[i]))
	}
	return dto
}

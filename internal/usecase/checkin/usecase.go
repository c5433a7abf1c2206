// Package checkin drives the scan side of the commitment state machine:
// PENDING/APPROVED pairs complete on a valid scan, cancelled ones refuse
// it, and completed ones absorb repeat scans without a new audit row.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	donationDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/donation"
	stallDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/stall"
	"github.com/zoraEmon/food-o-nation-sub001/internal/domain/uow"
	"github.com/zoraEmon/food-o-nation-sub001/internal/notify"
	"github.com/zoraEmon/food-o-nation-sub001/internal/qr"

	"github.com/google/uuid"
)

// Points a donor earns for honoring a commitment in person.
const checkInPoints = 10

type Usecase struct {
	uow      uow.UnitOfWork
	donors   notify.DonorLedger
	mailer   notify.Mailer
	activity notify.ActivityLog
}

func NewUsecase(tx uow.UnitOfWork, donors notify.DonorLedger, mailer notify.Mailer, activity notify.ActivityLog) *Usecase {
	return &Usecase{uow: tx, donors: donors, mailer: mailer, activity: activity}
}

// ScanApplication resolves a presented QR value to its application and
// completes the pair. Duplicate scans (double-tap, retry-on-timeout)
// return the already-completed record instead of erroring.
func (u *Usecase) ScanApplication(ctx context.Context, in ScanInput) (*ScanResult, error) {
	if in.QRCodeValue == "" {
		return nil, fmt.Errorf("%w: empty qr code value", stallDomain.ErrNotFound)
	}

	var out *ScanResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		app, err := r.Applications.GetByQRCodeValue(ctx, in.QRCodeValue)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return stallDomain.ErrNotFound
			}
			return err
		}

		res, err := r.Reservations.GetByID(ctx, app.StallReservationID)
		if err != nil {
			return err
		}

		switch app.ApplicationStatus {
		case stallDomain.ApplicationCancelled:
			return stallDomain.ErrAlreadyCancelled
		case stallDomain.ApplicationCompleted:
			out = toScanResult(app, res, true)
			return nil
		}

		now := time.Now().UTC()
		app.ApplicationStatus = stallDomain.ApplicationCompleted
		app.QRCodeScannedAt = &now
		if in.AdminID != "" {
			admin := in.AdminID
			app.QRCodeScannedByAdmin = &admin
		}
		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}

		res.Status = stallDomain.ReservationCheckedIn
		res.CheckedInAt = &now
		if err := r.Reservations.Save(ctx, res); err != nil {
			return err
		}

		scan := &stallDomain.StallApplicationScan{
			ScanID:             uuid.NewString(),
			StallApplicationID: app.ID,
			Notes:              in.Notes,
			ScannedAt:          now,
		}
		if in.AdminID != "" {
			admin := in.AdminID
			scan.ScannedByAdminID = &admin
		}
		if err := r.Scans.Create(ctx, scan); err != nil {
			return err
		}

		out = toScanResult(app, res, false)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !out.AlreadyCompleted {
		u.rewardCheckIn(ctx, out.DonorID, "stall check-in "+out.ReservationID)
	}
	return out, nil
}

// ScanByReference matches a presented reference token against either a
// stall reservation or a produce donation. Scanning an already
// checked-in record returns it unchanged.
func (u *Usecase) ScanByReference(ctx context.Context, in RefScanInput) (*RefScanResult, error) {
	if in.QRCodeRef == "" {
		return nil, fmt.Errorf("%w: empty qr code ref", stallDomain.ErrNotFound)
	}

	var out *RefScanResult
	var donorID string
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		res, err := r.Reservations.GetByQRCodeRef(ctx, in.QRCodeRef)
		if err == nil {
			return u.scanReservationRef(ctx, r, res, in, &out, &donorID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		d, err := r.Donations.GetByQRCodeRef(ctx, in.QRCodeRef)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return stallDomain.ErrNotFound
			}
			return err
		}
		return u.scanDonationRef(ctx, r, d, &out, &donorID)
	})
	if err != nil {
		return nil, err
	}

	if !out.AlreadyCompleted && donorID != "" {
		u.rewardCheckIn(ctx, donorID, "drop-off check-in "+out.SubjectID)
	}
	return out, nil
}

func (u *Usecase) scanReservationRef(ctx context.Context, r uow.Repos, res *stallDomain.StallReservation, in RefScanInput, out **RefScanResult, donorID *string) error {
	switch res.Status {
	case stallDomain.ReservationCancelled:
		return stallDomain.ErrAlreadyCancelled
	case stallDomain.ReservationCheckedIn:
		*out = &RefScanResult{
			Kind: qr.TypeStallReservation, SubjectID: res.ReservationID,
			Status: string(res.Status), CheckedInAt: res.CheckedInAt, AlreadyCompleted: true,
		}
		return nil
	}

	// the pair moves together: route through the application scan path
	app, err := r.Applications.GetByReservationID(ctx, res.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	app.ApplicationStatus = stallDomain.ApplicationCompleted
	app.QRCodeScannedAt = &now
	if in.AdminID != "" {
		admin := in.AdminID
		app.QRCodeScannedByAdmin = &admin
	}
	if err := r.Applications.Save(ctx, app); err != nil {
		return err
	}

	res.Status = stallDomain.ReservationCheckedIn
	res.CheckedInAt = &now
	if err := r.Reservations.Save(ctx, res); err != nil {
		return err
	}

	scan := &stallDomain.StallApplicationScan{
		ScanID:             uuid.NewString(),
		StallApplicationID: app.ID,
		ScannedAt:          now,
	}
	if in.AdminID != "" {
		admin := in.AdminID
		scan.ScannedByAdminID = &admin
	}
	if err := r.Scans.Create(ctx, scan); err != nil {
		return err
	}

	*donorID = res.DonorID
	*out = &RefScanResult{
		Kind: qr.TypeStallReservation, SubjectID: res.ReservationID,
		Status: string(res.Status), CheckedInAt: res.CheckedInAt,
	}
	return nil
}

func (u *Usecase) scanDonationRef(ctx context.Context, r uow.Repos, d *donationDomain.Donation, out **RefScanResult, donorID *string) error {
	if d.Status == donationDomain.StatusCancelled {
		return donationDomain.ErrAlreadyCancelled
	}
	if d.CheckedInAt != nil {
		*out = &RefScanResult{
			Kind: qr.TypeProduceDonation, SubjectID: d.DonationID,
			Status: string(d.Status), CheckedInAt: d.CheckedInAt, AlreadyCompleted: true,
		}
		return nil
	}

	now := time.Now().UTC()
	d.CheckedInAt = &now
	if err := r.Donations.Save(ctx, d); err != nil {
		return err
	}

	if d.DonorID != nil {
		*donorID = *d.DonorID
	}
	*out = &RefScanResult{
		Kind: qr.TypeProduceDonation, SubjectID: d.DonationID,
		Status: string(d.Status), CheckedInAt: d.CheckedInAt,
	}
	return nil
}

// Stats reports application counts by status.
func (u *Usecase) Stats(ctx context.Context) (*StatsDTO, error) {
	var out StatsDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		counts, err := r.Applications.CountByStatus(ctx)
		if err != nil {
			return err
		}
		out.Pending = counts[stallDomain.ApplicationPending]
		out.Completed = counts[stallDomain.ApplicationCompleted]
		out.Cancelled = counts[stallDomain.ApplicationCancelled]
		out.Total = out.Pending + out.Completed + out.Cancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Usecase) rewardCheckIn(ctx context.Context, donorID, details string) {
	if err := u.donors.AwardPoints(ctx, donorID, checkInPoints); err != nil {
		log.Printf("award points failed: %v", err)
	}
	if err := u.activity.Append(ctx, donorID, "checkin.complete", details); err != nil {
		log.Printf("activity append failed: %v", err)
	}
	if err := u.mailer.Send(ctx, donorID, "Thank you for showing up!",
		"Your check-in was recorded and points were added to your account."); err != nil {
		log.Printf("check-in mail failed: %v", err)
	}
}

func toScanResult(app *stallDomain.StallApplication, res *stallDomain.StallReservation, already bool) *ScanResult {
	return &ScanResult{
		ApplicationID:     app.ApplicationID,
		ReservationID:     res.ReservationID,
		DonorID:           res.DonorID,
		SlotNumber:        res.SlotNumber,
		ApplicationStatus: string(app.ApplicationStatus),
		ReservationStatus: string(res.Status),
		ScannedAt:         app.QRCodeScannedAt,
		CheckedInAt:       res.CheckedInAt,
		AlreadyCompleted:  already,
	}
}

// Package stall allocates numbered stall slots at feeding programs and
// keeps the program capacity ledger honest. Slot selection, the ledger
// increment, the QR mint and the dependent application are one atomic
// unit under the program row lock.
package stall

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	programDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/program"
	stallDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/stall"
	"github.com/zoraEmon/food-o-nation-sub001/internal/domain/uow"
	"github.com/zoraEmon/food-o-nation-sub001/internal/notify"
	"github.com/zoraEmon/food-o-nation-sub001/internal/qr"

	"github.com/google/uuid"
)

type Usecase struct {
	uow      uow.UnitOfWork
	qr       *qr.Service
	mailer   notify.Mailer
	activity notify.ActivityLog
}

func NewUsecase(tx uow.UnitOfWork, qrSvc *qr.Service, mailer notify.Mailer, activity notify.ActivityLog) *Usecase {
	return &Usecase{uow: tx, qr: qrSvc, mailer: mailer, activity: activity}
}

// Reserve grants the lowest free slot to the donor. Reservations are
// auto-approved on creation; the manual vetting in this system applies
// to donated goods, not to stalls.
func (u *Usecase) Reserve(ctx context.Context, in ReserveInput) (*ReservationDTO, error) {
	if in.ProgramID == "" || in.DonorID == "" {
		return nil, fmt.Errorf("%w: program_id and donor_id are required", programDomain.ErrValidation)
	}

	var dto *ReservationDTO
	err := u.uow.WithinProgramTx(ctx, in.ProgramID, func(r uow.Repos, p *programDomain.Program) error {
		if p.StallCapacity <= 0 {
			return fmt.Errorf("%w: program has no stall capacity", programDomain.ErrValidation)
		}

		// one active reservation per donor per program
		_, err := r.Reservations.GetActiveByProgramAndDonor(ctx, p.ID, in.DonorID)
		switch {
		case err == nil:
			return stallDomain.ErrDuplicateReservation
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		// The reservation rows, not the counter, decide whether a slot
		// is free.
		active, err := r.Reservations.ListActiveByProgram(ctx, p.ID)
		if err != nil {
			return err
		}
		slot, ok := lowestFreeSlot(active, p.StallCapacity)
		if !ok {
			return programDomain.ErrCapacityExceeded
		}

		now := time.Now().UTC()
		res := &stallDomain.StallReservation{
			ReservationID: uuid.NewString(),
			ProgramID:     p.ID,
			DonorID:       in.DonorID,
			SlotNumber:    slot,
			Status:        stallDomain.ReservationApproved,
			ReservedAt:    now,
		}

		minted, err := u.qr.Mint(ctx, qr.Payload{
			Type:          qr.TypeStallReservation,
			ReservationID: res.ReservationID,
			ProgramID:     p.ProgramID,
			DonorID:       in.DonorID,
			SlotNumber:    slot,
		})
		if err != nil {
			return err
		}
		res.QRCodeRef = minted.Token
		res.QRCodeURL = minted.ImageURL

		if err := r.Reservations.Create(ctx, res); err != nil {
			return err
		}

		app := &stallDomain.StallApplication{
			ApplicationID:      uuid.NewString(),
			StallReservationID: res.ID,
			QRCodeValue:        minted.Token,
			QRCodeImageURL:     minted.ImageURL,
			ScheduledDate:      p.Date,
			ApplicationStatus:  stallDomain.ApplicationPending,
		}
		if err := r.Applications.Create(ctx, app); err != nil {
			return err
		}

		p.ReservedStalls++
		if err := r.Programs.Save(ctx, p); err != nil {
			return err
		}

		dto = toReservationDTO(res, p.ProgramID, app)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, programDomain.ErrNotFound
		}
		return nil, err
	}

	u.notifyReserved(ctx, dto)
	return dto, nil
}

// lowestFreeSlot scans 1..capacity and returns the first number not
// taken by an active reservation.
func lowestFreeSlot(active []stallDomain.StallReservation, capacity int) (int, bool) {
	taken := make(map[int]bool, len(active))
	for _, r := range active {
		taken[r.SlotNumber] = true
	}
	for n := 1; n <= capacity; n++ {
		if !taken[n] {
			return n, true
		}
	}
	return 0, false
}

// Cancel transitions a reservation/application pair to CANCELLED and
// releases its slot back to the ledger. Cancelling a cancelled pair is
// an error to the caller here; the sweep path treats it as a no-op.
func (u *Usecase) Cancel(ctx context.Context, reservationID, actorID string) (*ReservationDTO, error) {
	var dto *ReservationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		res, err := r.Reservations.GetByReservationIDForUpdate(ctx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return stallDomain.ErrNotFound
			}
			return err
		}
		switch res.Status {
		case stallDomain.ReservationCancelled:
			return stallDomain.ErrAlreadyCancelled
		case stallDomain.ReservationCheckedIn:
			return stallDomain.ErrInvalidTransition
		}

		now := time.Now().UTC()
		app, err := cancelPair(ctx, r, res, now)
		if err != nil {
			return err
		}
		if err := releaseStalls(ctx, r, res.ProgramID, 1); err != nil {
			return err
		}

		p, err := r.Programs.GetByID(ctx, res.ProgramID)
		if err != nil {
			return err
		}
		dto = toReservationDTO(res, p.ProgramID, app)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := u.activity.Append(ctx, actorID, "stall.cancel", "reservation "+reservationID); err != nil {
		log.Printf("activity append failed: %v", err)
	}
	return dto, nil
}

// SetCapacity adjusts a program's stall capacity. Shrinking below the
// currently reserved count would break the ledger invariant, so it is
// rejected as validation input.
func (u *Usecase) SetCapacity(ctx context.Context, programID string, capacity int) (*programDomain.Program, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be >= 0", programDomain.ErrValidation)
	}
	var out *programDomain.Program
	err := u.uow.WithinProgramTx(ctx, programID, func(r uow.Repos, p *programDomain.Program) error {
		if capacity < p.ReservedStalls {
			return fmt.Errorf("%w: capacity %d below %d reserved stalls", programDomain.ErrValidation, capacity, p.ReservedStalls)
		}
		p.StallCapacity = capacity
		if err := r.Programs.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, programDomain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// SweepExpired cancels every still-pending reservation whose program
// date has passed and reclaims its capacity. Releases are aggregated
// per program: one clamped decrement of size N, not N decrements, so
// overlapping sweeps converge instead of double-releasing.
func (u *Usecase) SweepExpired(ctx context.Context, now time.Time) (*SweepReport, error) {
	report := &SweepReport{}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		expired, err := r.Reservations.ListExpiredPending(ctx, now)
		if err != nil {
			return err
		}

		perProgram := make(map[uint64]int)
		for i := range expired {
			res := &expired[i]
			if res.Status == stallDomain.ReservationCancelled {
				continue
			}
			if _, err := cancelPair(ctx, r, res, now); err != nil {
				return err
			}
			perProgram[res.ProgramID]++
			report.CancelledReservations++
		}

		for programID, n := range perProgram {
			if err := releaseStalls(ctx, r, programID, n); err != nil {
				return err
			}
		}
		report.ProgramsTouched = len(perProgram)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if report.CancelledReservations > 0 {
		log.Printf("sweep: cancelled %d stale reservations across %d programs",
			report.CancelledReservations, report.ProgramsTouched)
	}
	return report, nil
}

// cancelPair moves the reservation and its application to CANCELLED
// together. A missing application (legacy rows) is tolerated.
func cancelPair(ctx context.Context, r uow.Repos, res *stallDomain.StallReservation, now time.Time) (*stallDomain.StallApplication, error) {
	res.Status = stallDomain.ReservationCancelled
	res.CanceledAt = &now
	if err := r.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}

	app, err := r.Applications.GetByReservationID(ctx, res.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if app.ApplicationStatus == stallDomain.ApplicationPending {
		app.ApplicationStatus = stallDomain.ApplicationCancelled
		if err := r.Applications.Save(ctx, app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// releaseStalls decrements the ledger counter, clamped at zero. Release
// runs from several triggers (manual cancel, scan cancel, sweep) and a
// double-release must be a no-op.
func releaseStalls(ctx context.Context, r uow.Repos, programNumericID uint64, n int) error {
	p, err := r.Programs.GetByIDForUpdate(ctx, programNumericID)
	if err != nil {
		return err
	}
	p.ReservedStalls -= n
	if p.ReservedStalls < 0 {
		p.ReservedStalls = 0
	}
	return r.Programs.Save(ctx, p)
}

func (u *Usecase) notifyReserved(ctx context.Context, dto *ReservationDTO) {
	if dto == nil {
		return
	}
	subject := fmt.Sprintf("Stall slot %d confirmed", dto.SlotNumber)
	body := fmt.Sprintf("Your stall reservation %s is confirmed. Present the attached QR code at the venue.", dto.ReservationID)
	if err := u.mailer.Send(ctx, dto.DonorID, subject, body); err != nil {
		log.Printf("reservation mail failed: %v", err)
	}
	if err := u.activity.Append(ctx, dto.DonorID, "stall.reserve", fmt.Sprintf("slot %d at program %s", dto.SlotNumber, dto.ProgramID)); err != nil {
		log.Printf("activity append failed: %v", err)
	}
}

func toReservationDTO(res *stallDomain.StallReservation, programID string, app *stallDomain.StallApplication) *ReservationDTO {
	dto := &ReservationDTO{
		ReservationID: res.ReservationID,
		ProgramID:     programID,
		DonorID:       res.DonorID,
		SlotNumber:    res.SlotNumber,
		Status:        string(res.Status),
		QRCodeRef:     res.QRCodeRef,
		QRCodeURL:     res.QRCodeURL,
		ReservedAt:    res.ReservedAt,
		CheckedInAt:   res.CheckedInAt,
		CanceledAt:    res.CanceledAt,
	}
	if app != nil {
		dto.Application = &ApplicationDTO{
			ApplicationID:     app.ApplicationID,
			QRCodeValue:       app.QRCodeValue,
			QRCodeImageURL:    app.QRCodeImageURL,
			ScheduledDate:     app.ScheduledDate,
			ApplicationStatus: string(app.ApplicationStatus),
			QRCodeScannedAt:   app.QRCodeScannedAt,
		}
	}
	return dto
}

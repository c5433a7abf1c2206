package stall

import (
	"context"
	"time"
)

type ReservationRepository interface {
	Create(ctx context.Context, r *StallReservation) error
	Save(ctx context.Context, r *StallReservation) error
	GetByReservationID(ctx context.Context, reservationID string) (*StallReservation, error)
	GetByReservationIDForUpdate(ctx context.Context, reservationID string) (*StallReservation, error)
	GetByID(ctx context.Context, numericID uint64) (*StallReservation, error)
	GetByQRCodeRef(ctx context.Context, ref string) (*StallReservation, error)
	// GetActiveByProgramAndDonor returns the one active reservation for the
	// pair, or gorm.ErrRecordNotFound.
	GetActiveByProgramAndDonor(ctx context.Context, programNumericID uint64, donorID string) (*StallReservation, error)
	// ListActiveByProgram is the authoritative slot-occupancy read for the
	// allocator; it must run under the program row lock.
	ListActiveByProgram(ctx context.Context, programNumericID uint64) ([]StallReservation, error)
	// ListExpiredPending returns PENDING/APPROVED reservations whose
	// program's date is strictly before cutoff.
	ListExpiredPending(ctx context.Context, cutoff time.Time) ([]StallReservation, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *StallApplication) error
	Save(ctx context.Context, a *StallApplication) error
	GetByQRCodeValue(ctx context.Context, value string) (*StallApplication, error)
	GetByReservationID(ctx context.Context, reservationNumericID uint64) (*StallApplication, error)
	CountByStatus(ctx context.Context) (map[ApplicationStatus]int64, error)
}

type ScanRepository interface {
	Create(ctx context.Context, s *StallApplicationScan) error
	CountByApplicationID(ctx context.Context, applicationNumericID uint64) (int64, error)
}

package mysql

import (
	"context"
	"time"

	stallDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/stall"

	"gorm.io/gorm"
)

var activeStatuses = []stallDomain.ReservationStatus{
	stallDomain.ReservationPending,
	stallDomain.ReservationApproved,
	stallDomain.ReservationCheckedIn,
}

type ReservationRepository struct{ db *gorm.DB }

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *stallDomain.StallReservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ReservationRepository) Save(ctx context.Context, res *stallDomain.StallReservation) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ReservationRepository) GetByReservationID(ctx context.Context, reservationID string) (*stallDomain.StallReservation, error) {
	var out stallDomain.StallReservation
	res := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).First(&out)
	return &out, res.Error
}

func (r *ReservationRepository) GetByReservationIDForUpdate(ctx context.Context, reservationID string) (*stallDomain.StallReservation, error) {
	var out stallDomain.StallReservation
	res := forUpdate(r.db.WithContext(ctx)).Where("reservation_id = ?", reservationID).First(&out)
	return &out, res.Error
}

func (r *ReservationRepository) GetByID(ctx context.Context, numericID uint64) (*stallDomain.StallReservation, error) {
	var out stallDomain.StallReservation
	res := r.db.WithContext(ctx).Where("id = ?", numericID).First(&out)
	return &out, res.Error
}

func (r *ReservationRepository) GetByQRCodeRef(ctx context.Context, ref string) (*stallDomain.StallReservation, error) {
	var out stallDomain.StallReservation
	res := r.db.WithContext(ctx).Where("qr_code_ref = ?", ref).First(&out)
	return &out, res.Error
}

func (r *ReservationRepository) GetActiveByProgramAndDonor(ctx context.Context, programNumericID uint64, donorID string) (*stallDomain.StallReservation, error) {
	var out stallDomain.StallReservation
	res := r.db.WithContext(ctx).
		Where("program_id = ? AND donor_id = ? AND status IN ?", programNumericID, donorID, activeStatuses).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ReservationRepository) ListActiveByProgram(ctx context.Context, programNumericID uint64) ([]stallDomain.StallReservation, error) {
	var out []stallDomain.StallReservation
	res := r.db.WithContext(ctx).
		Where("program_id = ? AND status IN ?", programNumericID, activeStatuses).
		Order("slot_number ASC").
		Find(&out)
	return out, res.Error
}

func (r *ReservationRepository) ListExpiredPending(ctx context.Context, cutoff time.Time) ([]stallDomain.StallReservation, error) {
	var out []stallDomain.StallReservation
	res := r.db.WithContext(ctx).
		Joins("JOIN programs ON programs.id = stall_reservations.program_id").
		Where("stall_reservations.status IN ?", []stallDomain.ReservationStatus{
			stallDomain.ReservationPending, stallDomain.ReservationApproved,
		}).
		Where("programs.date < ?", cutoff).
		Find(&out)
	return out, res.Error
}

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *stallDomain.StallApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *stallDomain.StallApplication) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByQRCodeValue(ctx context.Context, value string) (*stallDomain.StallApplication, error) {
	var out stallDomain.StallApplication
	res := r.db.WithContext(ctx).Where("qr_code_value = ?", value).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByReservationID(ctx context.Context, reservationNumericID uint64) (*stallDomain.StallApplication, error) {
	var out stallDomain.StallApplication
	res := r.db.WithContext(ctx).Where("stall_reservation_id = ?", reservationNumericID).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[stallDomain.ApplicationStatus]int64, error) {
	type row struct {
		ApplicationStatus stallDomain.ApplicationStatus
		N                 int64
	}
	var rows []row
	res := r.db.WithContext(ctx).
		Model(&stallDomain.StallApplication{}).
		Select("application_status, COUNT(*) AS n").
		Group("application_status").
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make(map[stallDomain.ApplicationStatus]int64, len(rows))
	for _, r := range rows {
		out[r.ApplicationStatus] = r.N
	}
	return out, nil
}

type ScanRepository struct{ db *gorm.DB }

func NewScanRepository(db *gorm.DB) *ScanRepository { return &ScanRepository{db: db} }

func (r *ScanRepository) Create(ctx context.Context, s *stallDomain.StallApplicationScan) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScanRepository) CountByApplicationID(ctx context.Context, applicationNumericID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&stallDomain.StallApplicationScan{}).
		Where("stall_application_id = ?", applicationNumericID).
		Count(&n)
	return n, res.Error
}

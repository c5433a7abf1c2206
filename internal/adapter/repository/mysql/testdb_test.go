package mysql

import (
	"testing"
	"time"

	donationDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/donation"
	programDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/program"
	stallDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/stall"
	"github.com/zoraEmon/food-o-nation-sub001/pkg/id"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB migrates the full schema into an in-memory sqlite DB. The
// domain models carry no MySQL-only column types, so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&programDomain.Program{},
		&stallDomain.StallReservation{},
		&stallDomain.StallApplication{},
		&stallDomain.StallApplicationScan{},
		&donationDomain.Donation{},
		&donationDomain.DonationItem{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeProgram(capacity int, date time.Time) *programDomain.Program {
	return &programDomain.Program{
		ProgramID:       uuid.NewString(),
		Name:            "Community Feeding Day",
		Date:            date,
		StallCapacity:   capacity,
		MaxParticipants: 100,
	}
}

func makeReservation(programNumericID uint64, donorID string, slot int, status stallDomain.ReservationStatus) *stallDomain.StallReservation {
	return &stallDomain.StallReservation{
		ReservationID: uuid.NewString(),
		ProgramID:     programNumericID,
		DonorID:       donorID,
		SlotNumber:    slot,
		Status:        status,
		QRCodeRef:     id.NewID32(),
		ReservedAt:    time.Now().UTC(),
	}
}

func makeApplication(reservationNumericID uint64, status stallDomain.ApplicationStatus, scheduled time.Time) *stallDomain.StallApplication {
	return &stallDomain.StallApplication{
		ApplicationID:      uuid.NewString(),
		StallReservationID: reservationNumericID,
		QRCodeValue:        id.NewID32(),
		ScheduledDate:      scheduled,
		ApplicationStatus:  status,
	}
}

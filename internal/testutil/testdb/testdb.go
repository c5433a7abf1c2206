// Package testdb opens in-memory sqlite databases with the full schema
// for usecase and repository tests.
package testdb

import (
	"testing"

	donationDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/donation"
	programDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/program"
	stallDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/stall"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Open(t *testing.T) *gorm.DB {
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

package uow

import (
	"context"

	"github.com/zoraEmon/food-o-nation-sub001/internal/domain/donation"
	"github.com/zoraEmon/food-o-nation-sub001/internal/domain/program"
	"github.com/zoraEmon/food-o-nation-sub001/internal/domain/stall"
)

type Repos struct {
	Programs     program.Repository
	Reservations stall.ReservationRepository
	Applications stall.ApplicationRepository
	Scans        stall.ScanRepository
	Donations    donation.Repository
	Items        donation.ItemRepository
}

type UnitOfWork interface {
	// WithinTx runs fn with all repos bound to one transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinProgramTx locks the program row up-front and passes it in.
	// Slot allocation and every ledger mutation go through here so that
	// capacity checks and increments are serialized per program.
	WithinProgramTx(ctx context.Context, programID string, fn func(r Repos, p *program.Program) error) error
}

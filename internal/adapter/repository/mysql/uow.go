package mysql

import (
	"context"

	programDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/program"
	"github.com/zoraEmon/food-o-nation-sub001/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func bindRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Programs:     &ProgramRepository{db: tx},
		Reservations: &ReservationRepository{db: tx},
		Applications: &ApplicationRepository{db: tx},
		Scans:        &ScanRepository{db: tx},
		Donations:    &DonationRepository{db: tx},
		Items:        &ItemRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bindRepos(tx))
	})
}

func (u *GormUoW) WithinProgramTx(ctx context.Context, programID string, fn func(r uow.Repos, p *programDomain.Program) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bindRepos(tx)
		// lock the program row up-front so slot selection and ledger
		// updates for one program never interleave
		p, err := r.Programs.GetByProgramIDForUpdate(ctx, programID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}

package mysql

import (
	"context"

	programDomain "github.com/zoraEmon/food-o-nation-sub001/internal/domain/program"

	"gorm.io/gorm"
)

type ProgramRepository struct{ db *gorm.DB }

func NewProgramRepository(db *gorm.DB) *ProgramRepository { return &ProgramRepository{db: db} }

func (r *ProgramRepository) Create(ctx context.Context, p *programDomain.Program) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProgramRepository) Save(ctx context.Context, p *programDomain.Program) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProgramRepository) GetByProgramID(ctx context.Context, programID string) (*programDomain.Program, error) {
	var out programDomain.Program
	res := r.db.WithContext(ctx).Where("program_id = ?", programID).First(&out)
	return &out, res.Error
}

func (r *ProgramRepository) GetByProgramIDForUpdate(ctx context.Context, programID string) (*programDomain.Program, error) {
	var out programDomain.Program
	res := forUpdate(r.db.WithContext(ctx)).Where("program_id = ?", programID).First(&out)
	return &out, res.Error
}

func (r *ProgramRepository) GetByID(ctx context.Context, numericID uint64) (*programDomain.Program, error) {
	var out programDomain.Program
	res := r.db.WithContext(ctx).Where("id = ?", numericID).First(&out)
	return &out, res.Error
}

func (r *ProgramRepository) GetByIDForUpdate(ctx context.Context, numericID uint64) (*programDomain.Program, error) {
	var out programDomain.Program
	res := forUpdate(r.db.WithContext(ctx)).Where("id = ?", numericID).First(&out)
	return &out, res.Error
}

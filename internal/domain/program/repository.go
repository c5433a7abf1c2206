package program

import "context"

type Repository interface {
	Create(ctx context.Context, p *Program) error
	GetByProgramID(ctx context.Context, programID string) (*Program, error)
	GetByID(ctx context.Context, numericID uint64) (*Program, error)
	// The ForUpdate variants lock the program row for the duration of the
	// enclosing transaction; every ledger mutation starts from one of them.
	GetByProgramIDForUpdate(ctx context.Context, programID string) (*Program, error)
	GetByIDForUpdate(ctx context.Context, numericID uint64) (*Program, error)
	Save(ctx context.Context, p *Program) error
}

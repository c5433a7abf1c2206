package program

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("program not found")
	ErrCapacityExceeded = errors.New("stall capacity exceeded")
	ErrValidation       = errors.New("invalid program input")
)

// Program is the feeding-program read model this subsystem reserves
// stalls against. reserved_stalls is the capacity ledger counter: it is
// mutated only through the ledger operations on Repository, inside a
// transaction that holds the program row lock.
type Program struct {
	ID              uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ProgramID       string         `gorm:"column:program_id;size:36;uniqueIndex:ux_programs_program_id" json:"program_id"`
	Name            string         `gorm:"column:name;size:255" json:"name"`
	Date            time.Time      `gorm:"column:date" json:"date"`
	StallCapacity   int            `gorm:"column:stall_capacity;not null;default:0" json:"stall_capacity"`
	ReservedStalls  int            `gorm:"column:reserved_stalls;not null;default:0" json:"reserved_stalls"`
	MaxParticipants int            `gorm:"column:max_participants;not null;default:0" json:"max_participants"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Program) TableName() string { return "programs" }

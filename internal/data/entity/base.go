package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by rows that change after they are created.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Record is embedded by rows without an updated_at column.
type Record struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

func NewBase(now time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func NewRecord(now time.Time) Record {
	return Record{ID: uuid.New(), CreatedAt: now}
}

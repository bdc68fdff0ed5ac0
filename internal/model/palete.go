package model

import (
	"time"

	"github.com/google/uuid"
)

// Palete is one physical storage unit of raw material in the warehouse,
// identified by NoPalete (the letter P plus a numeric suffix, e.g. "P131").
// Uniqueness of NoPalete is case-insensitive and enforced by a functional
// index on lower(no_palete) — see infra.applySchemaPatches. Paletes are
// created during stock intake or by hand, and are never deleted as a side
// effect of ledger changes.
type Palete struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NoPalete     string    `gorm:"not null;index"`
	FornecedorID *uuid.UUID `gorm:"type:uuid;index"`
	NoGuiaForn   *string
	RefCartao    *string `gorm:"index"`
	QtPalete     *int
	Data         time.Time `gorm:"not null"`
	AuthorID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Fornecedor *Fornecedor `gorm:"foreignKey:FornecedorID"`
}

func (Palete) TableName() string { return "paletes" }

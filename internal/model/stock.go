package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock is one ledger entry: a material-receipt event (or a synthetic manual
// adjustment). NPalet holds the linked pallet numbers joined with ", " in
// generation order. Deleting a Stock row has no effect on the Palete rows —
// they remain as independent physical-inventory records.
type Stock struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	FornecedorID *uuid.UUID `gorm:"type:uuid;index"`
	NoGuiaForn   *string
	Quantidade   int `gorm:"not null"`
	// QuantidadeDisponivel starts equal to Quantidade and diverges only
	// through later consumption or explicit edits.
	QuantidadeDisponivel int `gorm:"not null"`
	SizeX                *int
	SizeY                *int
	VlM2                 *decimal.Decimal `gorm:"type:decimal(12,4)"`
	PrecoUnitario        decimal.Decimal  `gorm:"type:decimal(12,4);not null;default:0"`
	ValorTotal           decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0"`
	NPalet               *string
	Data                 time.Time `gorm:"not null;index"`
	Notas                *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Material   *Material   `gorm:"foreignKey:MaterialID"`
	Fornecedor *Fornecedor `gorm:"foreignKey:FornecedorID"`
}

func (Stock) TableName() string { return "stocks" }

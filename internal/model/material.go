package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a catalog entry for a raw material (cardboard sheet type).
// The catalog itself is owned by the definições module; this service only
// writes the threshold fields and the manual stock correction.
type Material struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Material      string    `gorm:"not null"`
	Cor           *string
	Tipo          *string
	Carateristica *string
	Referencia    *string    `gorm:"index"`
	FornecedorID  *uuid.UUID `gorm:"type:uuid;index"`
	// QtPalete is the supplier's standard sheet count per pallet.
	QtPalete     *int
	ValorM2Custo *decimal.Decimal `gorm:"type:decimal(12,4)"`
	ValorPlaca   *decimal.Decimal `gorm:"type:decimal(12,4)"`
	// StockMinimo / StockCritico drive the BAIXO / CRÍTICO classification.
	// Nil means "use the default" (10 and 0 respectively).
	StockMinimo  *int
	StockCritico *int
	// StockCorrect is the manual physical-count override. When set, the
	// displayed stock is this value instead of the computed one.
	StockCorrect          *int
	StockCorrectUpdatedAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Fornecedor *Fornecedor `gorm:"foreignKey:FornecedorID"`
}

func (Material) TableName() string { return "materiais" }

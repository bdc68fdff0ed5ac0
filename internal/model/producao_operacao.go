package model

import (
	"time"

	"github.com/google/uuid"
)

// ProducaoOperacao is a production cut operation recorded by the produção
// subsystem. This service never writes these rows; it only aggregates
// NumPlacasCorte per material as the consumption side of the current-stock
// projection.
type ProducaoOperacao struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID     *uuid.UUID `gorm:"type:uuid;index"`
	NumPlacasCorte int        `gorm:"not null;default:0"`
	Data           time.Time
	CreatedAt      time.Time
}

func (ProducaoOperacao) TableName() string { return "producao_operacoes" }

package model

import (
	"time"

	"github.com/google/uuid"
)

// Fornecedor is a raw-material supplier. Read-mostly here — managed by the
// gestão module.
type Fornecedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomeForn  string    `gorm:"not null"`
	Morada    *string
	Telefone  *string
	Email     *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Fornecedor) TableName() string { return "fornecedores" }

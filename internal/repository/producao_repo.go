package repository

import (
	"context"

	"github.com/Imacx-maria/app-imacx-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProducaoRepository is the read-only consumption feed: total sheets cut per
// material, recorded by the produção subsystem.
type ProducaoRepository interface {
	SumConsumo(ctx context.Context, materialID uuid.UUID) (int, error)
}

type producaoRepo struct{ db *gorm.DB }

func NewProducaoRepository(db *gorm.DB) ProducaoRepository { return &producaoRepo{db: db} }

func (r *producaoRepo) SumConsumo(ctx context.Context, materialID uuid.UUID) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).Model(&model.ProducaoOperacao{}).
		Where("material_id = ?", materialID).
		Select("SUM(num_placas_corte)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

package repository

import (
	"context"
	"time"

	"github.com/Imacx-maria/app-imacx-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialRepository reads the materials catalog (owned by definições) and
// writes only the threshold / manual-correction fields.
type MaterialRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	FindByReferencia(ctx context.Context, referencia string) (*model.Material, error)
	List(ctx context.Context) ([]model.Material, error)
	SetStockMinimo(ctx context.Context, id uuid.UUID, valor *int) error
	SetStockCritico(ctx context.Context, id uuid.UUID, valor *int) error
	SetStockCorrect(ctx context.Context, id uuid.UUID, valor *int) error
	SetStockCorrectTx(tx *gorm.DB, id uuid.UUID, valor *int) error
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *materialRepo) FindByReferencia(ctx context.Context, referencia string) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).First(&m, "referencia = ?", referencia).Error
	return &m, err
}

func (r *materialRepo) List(ctx context.Context) ([]model.Material, error) {
	var materiais []model.Material
	err := r.db.WithContext(ctx).Order("material ASC").Find(&materiais).Error
	return materiais, err
}

func (r *materialRepo) SetStockMinimo(ctx context.Context, id uuid.UUID, valor *int) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).Where("id = ?", id).
		Update("stock_minimo", valor).Error
}

func (r *materialRepo) SetStockCritico(ctx context.Context, id uuid.UUID, valor *int) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).Where("id = ?", id).
		Update("stock_critico", valor).Error
}

func (r *materialRepo) SetStockCorrect(ctx context.Context, id uuid.UUID, valor *int) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_correct":            valor,
			"stock_correct_updated_at": time.Now(),
		}).Error
}

func (r *materialRepo) SetStockCorrectTx(tx *gorm.DB, id uuid.UUID, valor *int) error {
	return tx.Model(&model.Material{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_correct":            valor,
			"stock_correct_updated_at": time.Now(),
		}).Error
}

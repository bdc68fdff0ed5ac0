package repository

import (
	"context"
	"time"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockRepository interface {
	Create(ctx context.Context, s *model.Stock) error
	CreateTx(tx *gorm.DB, s *model.Stock) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error)
	List(ctx context.Context, filter dto.StockFilter) ([]model.Stock, int64, error)
	Update(ctx context.Context, s *model.Stock) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SumQuantidade / SumDisponivel feed the current-stock projection.
	SumQuantidade(ctx context.Context, materialID uuid.UUID) (int, error)
	SumDisponivel(ctx context.Context, materialID uuid.UUID) (int, error)
	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) DB() *gorm.DB { return r.db }

func (r *stockRepo) Create(ctx context.Context, s *model.Stock) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *stockRepo) CreateTx(tx *gorm.DB, s *model.Stock) error {
	return tx.Create(s).Error
}

func (r *stockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).Preload("Material").Preload("Fornecedor").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *stockRepo) List(ctx context.Context, filter dto.StockFilter) ([]model.Stock, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Stock{}).Preload("Material").Preload("Fornecedor")

	if filter.MaterialID != "" {
		q = q.Where("material_id = ?", filter.MaterialID)
	}
	if filter.FornecedorID != "" {
		q = q.Where("fornecedor_id = ?", filter.FornecedorID)
	}
	if filter.DateFrom != "" {
		q = q.Where("data >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		if t, err := time.Parse("2006-01-02", filter.DateTo); err == nil {
			q = q.Where("data < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var stocks []model.Stock
	err := q.Order("data DESC").Offset((page - 1) * limit).Limit(limit).Find(&stocks).Error
	return stocks, total, err
}

func (r *stockRepo) Update(ctx context.Context, s *model.Stock) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *stockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Stock{}, "id = ?", id).Error
}

func (r *stockRepo) SumQuantidade(ctx context.Context, materialID uuid.UUID) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("material_id = ?", materialID).
		Select("SUM(quantidade)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *stockRepo) SumDisponivel(ctx context.Context, materialID uuid.UUID) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("material_id = ?", materialID).
		Select("SUM(quantidade_disponivel)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

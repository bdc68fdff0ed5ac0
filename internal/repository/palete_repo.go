package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaleteRepository interface {
	Create(ctx context.Context, p *model.Palete) error
	// CreateLoteTx inserts a whole pallet set inside the caller's transaction.
	CreateLoteTx(tx *gorm.DB, paletes []model.Palete) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Palete, error)
	// FindNumerosExistentes returns the stored no_palete values (original
	// casing) whose lowercase form is in numerosLower, optionally excluding
	// the pallet being edited.
	FindNumerosExistentes(ctx context.Context, numerosLower []string, excludeID *uuid.UUID) ([]string, error)
	// ListNumeros returns every stored pallet number (next-number suggestion).
	ListNumeros(ctx context.Context) ([]string, error)
	List(ctx context.Context, filter dto.PaleteFilter) ([]model.Palete, int64, error)
	Update(ctx context.Context, p *model.Palete) error
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type paleteRepo struct{ db *gorm.DB }

func NewPaleteRepository(db *gorm.DB) PaleteRepository { return &paleteRepo{db: db} }

func (r *paleteRepo) DB() *gorm.DB { return r.db }

func (r *paleteRepo) Create(ctx context.Context, p *model.Palete) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paleteRepo) CreateLoteTx(tx *gorm.DB, paletes []model.Palete) error {
	return tx.Create(&paletes).Error
}

func (r *paleteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Palete, error) {
	var p model.Palete
	err := r.db.WithContext(ctx).Preload("Fornecedor").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paleteRepo) FindNumerosExistentes(ctx context.Context, numerosLower []string, excludeID *uuid.UUID) ([]string, error) {
	if len(numerosLower) == 0 {
		return nil, nil
	}
	q := r.db.WithContext(ctx).Model(&model.Palete{}).
		Where("lower(no_palete) IN ?", numerosLower)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var existentes []string
	err := q.Pluck("no_palete", &existentes).Error
	return existentes, err
}

func (r *paleteRepo) ListNumeros(ctx context.Context) ([]string, error) {
	var numeros []string
	err := r.db.WithContext(ctx).Model(&model.Palete{}).Pluck("no_palete", &numeros).Error
	return numeros, err
}

// sortable columns for the pallet listing; anything else falls back to data.
var paleteSortColumns = map[string]string{
	"no_palete":    "no_palete",
	"no_guia_forn": "no_guia_forn",
	"ref_cartao":   "ref_cartao",
	"qt_palete":    "qt_palete",
	"data":         "data",
}

func (r *paleteRepo) List(ctx context.Context, filter dto.PaleteFilter) ([]model.Palete, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Palete{}).Preload("Fornecedor")

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("no_palete ILIKE ? OR no_guia_forn ILIKE ? OR ref_cartao ILIKE ?", like, like, like)
	}
	if filter.Referencia != "" {
		q = q.Where("ref_cartao ILIKE ?", "%"+filter.Referencia+"%")
	}
	if filter.Fornecedor != "" {
		q = q.Where("fornecedor_id IN (?)",
			r.db.Model(&model.Fornecedor{}).Select("id").Where("nome_forn ILIKE ?", "%"+filter.Fornecedor+"%"))
	}
	if filter.AuthorID != "" {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if filter.DateFrom != "" {
		q = q.Where("data >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		// inclusive upper bound on the whole day
		if t, err := time.Parse("2006-01-02", filter.DateTo); err == nil {
			q = q.Where("data < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := paleteSortColumns[filter.SortBy]
	if !ok {
		col = "data"
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var paletes []model.Palete
	err := q.Order(col + " " + dir).Offset((page - 1) * limit).Limit(limit).Find(&paletes).Error
	return paletes, total, err
}

func (r *paleteRepo) Update(ctx context.Context, p *model.Palete) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *paleteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Palete{}, "id = ?", id).Error
}

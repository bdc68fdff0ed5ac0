package service_test

// In-memory repository stubs shared by the service tests. The stubs emulate
// the relevant Postgres behavior: the pallet stub enforces the
// case-insensitive unique index by returning gorm.ErrDuplicatedKey, so the
// transactional save path can be exercised without a database.

import (
	"context"
	"errors"
	"strings"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNaoEncontrado = errors.New("não encontrado")

// ── Materiais ─────────────────────────────────────────────────────────────

type stubMaterialRepo struct {
	materiais map[uuid.UUID]*model.Material
}

func newStubMaterialRepo(materiais ...*model.Material) *stubMaterialRepo {
	r := &stubMaterialRepo{materiais: make(map[uuid.UUID]*model.Material)}
	for _, m := range materiais {
		r.materiais[m.ID] = m
	}
	return r
}

func (r *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Material, error) {
	m, ok := r.materiais[id]
	if !ok {
		return nil, errNaoEncontrado
	}
	return m, nil
}

func (r *stubMaterialRepo) FindByReferencia(_ context.Context, referencia string) (*model.Material, error) {
	for _, m := range r.materiais {
		if m.Referencia != nil && *m.Referencia == referencia {
			return m, nil
		}
	}
	return nil, errNaoEncontrado
}

func (r *stubMaterialRepo) List(_ context.Context) ([]model.Material, error) {
	out := make([]model.Material, 0, len(r.materiais))
	for _, m := range r.materiais {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMaterialRepo) SetStockMinimo(_ context.Context, id uuid.UUID, valor *int) error {
	m, ok := r.materiais[id]
	if !ok {
		return errNaoEncontrado
	}
	m.StockMinimo = valor
	return nil
}

func (r *stubMaterialRepo) SetStockCritico(_ context.Context, id uuid.UUID, valor *int) error {
	m, ok := r.materiais[id]
	if !ok {
		return errNaoEncontrado
	}
	m.StockCritico = valor
	return nil
}

func (r *stubMaterialRepo) SetStockCorrect(_ context.Context, id uuid.UUID, valor *int) error {
	m, ok := r.materiais[id]
	if !ok {
		return errNaoEncontrado
	}
	m.StockCorrect = valor
	return nil
}

func (r *stubMaterialRepo) SetStockCorrectTx(_ *gorm.DB, id uuid.UUID, valor *int) error {
	return r.SetStockCorrect(context.Background(), id, valor)
}

// ── Paletes ───────────────────────────────────────────────────────────────

type stubPaleteRepo struct {
	paletes    []model.Palete
	failCreate bool
}

func (r *stubPaleteRepo) DB() *gorm.DB { return nil }

func (r *stubPaleteRepo) Create(_ context.Context, p *model.Palete) error {
	return r.CreateLoteTx(nil, []model.Palete{*p})
}

func (r *stubPaleteRepo) CreateLoteTx(_ *gorm.DB, paletes []model.Palete) error {
	if r.failCreate {
		return errors.New("insert falhou")
	}
	for _, novo := range paletes {
		for _, existente := range r.paletes {
			if strings.EqualFold(existente.NoPalete, novo.NoPalete) {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	for _, novo := range paletes {
		if novo.ID == uuid.Nil {
			novo.ID = uuid.New()
		}
		r.paletes = append(r.paletes, novo)
	}
	return nil
}

func (r *stubPaleteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Palete, error) {
	for i := range r.paletes {
		if r.paletes[i].ID == id {
			return &r.paletes[i], nil
		}
	}
	return nil, errNaoEncontrado
}

func (r *stubPaleteRepo) FindNumerosExistentes(_ context.Context, numerosLower []string, excludeID *uuid.UUID) ([]string, error) {
	var found []string
	for i := range r.paletes {
		if excludeID != nil && r.paletes[i].ID == *excludeID {
			continue
		}
		for _, n := range numerosLower {
			if strings.ToLower(r.paletes[i].NoPalete) == n {
				found = append(found, r.paletes[i].NoPalete)
			}
		}
	}
	return found, nil
}

func (r *stubPaleteRepo) ListNumeros(_ context.Context) ([]string, error) {
	nums := make([]string, len(r.paletes))
	for i := range r.paletes {
		nums[i] = r.paletes[i].NoPalete
	}
	return nums, nil
}

func (r *stubPaleteRepo) List(_ context.Context, _ dto.PaleteFilter) ([]model.Palete, int64, error) {
	return r.paletes, int64(len(r.paletes)), nil
}

func (r *stubPaleteRepo) Update(_ context.Context, p *model.Palete) error {
	for i := range r.paletes {
		if r.paletes[i].ID == p.ID {
			r.paletes[i] = *p
			return nil
		}
	}
	return errNaoEncontrado
}

func (r *stubPaleteRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.paletes {
		if r.paletes[i].ID == id {
			r.paletes = append(r.paletes[:i], r.paletes[i+1:]...)
			return nil
		}
	}
	return errNaoEncontrado
}

// ── Stocks ────────────────────────────────────────────────────────────────

type stubStockRepo struct {
	stocks        []model.Stock
	failCreate    bool
	falharProxima bool // the next CreateTx fails once, then recovers
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

func (r *stubStockRepo) Create(_ context.Context, s *model.Stock) error {
	return r.CreateTx(nil, s)
}

func (r *stubStockRepo) CreateTx(_ *gorm.DB, s *model.Stock) error {
	if r.failCreate {
		return errors.New("insert falhou")
	}
	if r.falharProxima {
		r.falharProxima = false
		return errors.New("insert falhou")
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.stocks = append(r.stocks, *s)
	return nil
}

func (r *stubStockRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Stock, error) {
	for i := range r.stocks {
		if r.stocks[i].ID == id {
			copia := r.stocks[i]
			return &copia, nil
		}
	}
	return nil, errNaoEncontrado
}

func (r *stubStockRepo) List(_ context.Context, _ dto.StockFilter) ([]model.Stock, int64, error) {
	return r.stocks, int64(len(r.stocks)), nil
}

func (r *stubStockRepo) Update(_ context.Context, s *model.Stock) error {
	for i := range r.stocks {
		if r.stocks[i].ID == s.ID {
			r.stocks[i] = *s
			return nil
		}
	}
	return errNaoEncontrado
}

func (r *stubStockRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.stocks {
		if r.stocks[i].ID == id {
			r.stocks = append(r.stocks[:i], r.stocks[i+1:]...)
			return nil
		}
	}
	return errNaoEncontrado
}

func (r *stubStockRepo) SumQuantidade(_ context.Context, materialID uuid.UUID) (int, error) {
	total := 0
	for i := range r.stocks {
		if r.stocks[i].MaterialID == materialID {
			total += r.stocks[i].Quantidade
		}
	}
	return total, nil
}

func (r *stubStockRepo) SumDisponivel(_ context.Context, materialID uuid.UUID) (int, error) {
	total := 0
	for i := range r.stocks {
		if r.stocks[i].MaterialID == materialID {
			total += r.stocks[i].QuantidadeDisponivel
		}
	}
	return total, nil
}

// ── Produção ──────────────────────────────────────────────────────────────

type stubProducaoRepo struct {
	consumo map[uuid.UUID]int
}

func (r *stubProducaoRepo) SumConsumo(_ context.Context, materialID uuid.UUID) (int, error) {
	return r.consumo[materialID], nil
}

// ── Fixtures ──────────────────────────────────────────────────────────────

func novoMaterial(nome, referencia string, valorPlaca float64) *model.Material {
	vp := decimal.NewFromFloat(valorPlaca)
	ref := referencia
	qt := 250
	return &model.Material{
		ID:         uuid.New(),
		Material:   nome,
		Referencia: &ref,
		QtPalete:   &qt,
		ValorPlaca: &vp,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

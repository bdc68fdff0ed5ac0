package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Stock classification against the material thresholds. The labels live in
// dto so every consumer of the projection shares them. Defaults when the
// material has none set: crítico 0, mínimo 10.
const (
	EstadoCritico = dto.EstadoCritico
	EstadoBaixo   = dto.EstadoBaixo
	EstadoOK      = dto.EstadoOK

	defaultStockCritico = 0
	defaultStockMinimo  = 10
)

const stockAtualCachePrefix = "stockatual:"

// StockAtualService derives the per-material current-stock view:
// received (ledger) minus consumed (produção feed), with the manual
// stock_correct overlay. The computation is a pure projection — repeated
// calls over an unchanged ledger yield identical results. A redis-cached
// materialized copy is kept per material and invalidated on every ledger or
// correction write, so cached reads stay observably equivalent to a full scan.
type StockAtualService interface {
	Recalcular(ctx context.Context, materialID uuid.UUID) (*dto.StockAtualResponse, error)
	RecalcularTodos(ctx context.Context) ([]dto.StockAtualResponse, error)
	// RefrescarProjecao recomputes one material bypassing the cache and
	// stores the fresh value (worker-pool entry point).
	RefrescarProjecao(ctx context.Context, materialID uuid.UUID) error
	InvalidarProjecao(ctx context.Context, materialID uuid.UUID)
	DefinirStockMinimo(ctx context.Context, materialID uuid.UUID, valor *int) error
	DefinirStockCritico(ctx context.Context, materialID uuid.UUID, valor *int) error
	DefinirStockCorrect(ctx context.Context, materialID uuid.UUID, valor *int) error
}

// ProjecaoEnqueuer schedules an async projection refresh after an
// invalidation (satisfied by worker.Dispatcher).
type ProjecaoEnqueuer interface {
	EnqueueProjecao(ctx context.Context, materialID uuid.UUID) error
}

type stockAtualService struct {
	materialRepo repository.MaterialRepository
	stockRepo    repository.StockRepository
	producaoRepo repository.ProducaoRepository
	rdb          *redis.Client
	enqueuer     ProjecaoEnqueuer
	cacheTTL     time.Duration
}

func NewStockAtualService(
	materialRepo repository.MaterialRepository,
	stockRepo repository.StockRepository,
	producaoRepo repository.ProducaoRepository,
	rdb *redis.Client,
	enqueuer ProjecaoEnqueuer,
	cacheTTL time.Duration,
) StockAtualService {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &stockAtualService{
		materialRepo: materialRepo,
		stockRepo:    stockRepo,
		producaoRepo: producaoRepo,
		rdb:          rdb,
		enqueuer:     enqueuer,
		cacheTTL:     cacheTTL,
	}
}

// Classificar applies the threshold rules to a final displayed stock value.
func Classificar(stockFinal int, stockCritico, stockMinimo *int) string {
	critico := defaultStockCritico
	if stockCritico != nil {
		critico = *stockCritico
	}
	minimo := defaultStockMinimo
	if stockMinimo != nil {
		minimo = *stockMinimo
	}
	switch {
	case stockFinal <= critico:
		return EstadoCritico
	case stockFinal <= minimo:
		return EstadoBaixo
	default:
		return EstadoOK
	}
}

func (s *stockAtualService) Recalcular(ctx context.Context, materialID uuid.UUID) (*dto.StockAtualResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, stockAtualCachePrefix+materialID.String()).Bytes(); err == nil {
			var resp dto.StockAtualResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.computar(ctx, materialID)
	if err != nil {
		return nil, err
	}
	s.guardarCache(ctx, materialID, resp)
	return resp, nil
}

func (s *stockAtualService) RecalcularTodos(ctx context.Context) ([]dto.StockAtualResponse, error) {
	materiais, err := s.materialRepo.List(ctx)
	if err != nil {
		return nil, &ErroPersistencia{Op: "listar materiais", Err: err}
	}
	result := make([]dto.StockAtualResponse, 0, len(materiais))
	for i := range materiais {
		resp, err := s.Recalcular(ctx, materiais[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	// lowest stock first, like the gestão screen
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StockAtual < result[j].StockAtual
	})
	return result, nil
}

func (s *stockAtualService) RefrescarProjecao(ctx context.Context, materialID uuid.UUID) error {
	resp, err := s.computar(ctx, materialID)
	if err != nil {
		return err
	}
	s.guardarCache(ctx, materialID, resp)
	return nil
}

// InvalidarProjecao drops the cached value and schedules an async refresh.
// Best-effort on both counts: a lost invalidation only delays freshness until
// the TTL expires.
func (s *stockAtualService) InvalidarProjecao(ctx context.Context, materialID uuid.UUID) {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, stockAtualCachePrefix+materialID.String()).Err(); err != nil {
			log.Warn().Err(err).Str("material_id", materialID.String()).Msg("stock_atual: cache invalidation failed")
		}
	}
	if s.enqueuer != nil {
		_ = s.enqueuer.EnqueueProjecao(ctx, materialID)
	}
}

func (s *stockAtualService) DefinirStockMinimo(ctx context.Context, materialID uuid.UUID, valor *int) error {
	if err := s.materialRepo.SetStockMinimo(ctx, materialID, valor); err != nil {
		return &ErroPersistencia{Op: "definir stock mínimo", Err: err}
	}
	s.InvalidarProjecao(ctx, materialID)
	return nil
}

func (s *stockAtualService) DefinirStockCritico(ctx context.Context, materialID uuid.UUID, valor *int) error {
	if err := s.materialRepo.SetStockCritico(ctx, materialID, valor); err != nil {
		return &ErroPersistencia{Op: "definir stock crítico", Err: err}
	}
	s.InvalidarProjecao(ctx, materialID)
	return nil
}

func (s *stockAtualService) DefinirStockCorrect(ctx context.Context, materialID uuid.UUID, valor *int) error {
	if err := s.materialRepo.SetStockCorrect(ctx, materialID, valor); err != nil {
		return &ErroPersistencia{Op: "definir correção manual", Err: err}
	}
	s.InvalidarProjecao(ctx, materialID)
	return nil
}

// computar is the full-scan projection: no cache, no side effects.
func (s *stockAtualService) computar(ctx context.Context, materialID uuid.UUID) (*dto.StockAtualResponse, error) {
	material, err := s.materialRepo.FindByID(ctx, materialID)
	if err != nil {
		return nil, &ErroPersistencia{Op: "obter material", Err: err}
	}

	totalRecebido, err := s.stockRepo.SumQuantidade(ctx, materialID)
	if err != nil {
		return nil, &ErroPersistencia{Op: "somar quantidades recebidas", Err: err}
	}
	totalConsumido, err := s.producaoRepo.SumConsumo(ctx, materialID)
	if err != nil {
		return nil, &ErroPersistencia{Op: "somar consumo de produção", Err: err}
	}
	disponivel, err := s.stockRepo.SumDisponivel(ctx, materialID)
	if err != nil {
		return nil, &ErroPersistencia{Op: "somar quantidades disponíveis", Err: err}
	}

	stockAtual := totalRecebido - totalConsumido
	stockFinal := stockAtual
	if material.StockCorrect != nil {
		stockFinal = *material.StockCorrect
	}

	resp := &dto.StockAtualResponse{
		MaterialID:           material.ID.String(),
		Material:             material.Material,
		Cor:                  material.Cor,
		Tipo:                 material.Tipo,
		Carateristica:        material.Carateristica,
		Referencia:           material.Referencia,
		TotalRecebido:        totalRecebido,
		TotalConsumido:       totalConsumido,
		StockAtual:           stockAtual,
		QuantidadeDisponivel: disponivel,
		StockMinimo:          material.StockMinimo,
		StockCritico:         material.StockCritico,
		StockCorrect:         material.StockCorrect,
		StockFinal:           stockFinal,
		Estado:               Classificar(stockFinal, material.StockCritico, material.StockMinimo),
	}
	if material.StockCorrectUpdatedAt != nil {
		ts := material.StockCorrectUpdatedAt.Format(time.RFC3339)
		resp.StockCorrectUpdatedAt = &ts
	}
	return resp, nil
}

func (s *stockAtualService) guardarCache(ctx context.Context, materialID uuid.UUID, resp *dto.StockAtualResponse) {
	if s.rdb == nil {
		return
	}
	if b, err := json.Marshal(resp); err == nil {
		_ = s.rdb.Set(ctx, stockAtualCachePrefix+materialID.String(), b, s.cacheTTL).Err()
	}
}

var _ ProjecaoInvalidator = (*stockAtualService)(nil)

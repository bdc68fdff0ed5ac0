package service

import (
	"context"
	"time"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/model"
	"github.com/Imacx-maria/app-imacx-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockService persists and maintains the receipt ledger, including the
// synthetic manual-correction adjustments.
type StockService interface {
	CriarEntrada(ctx context.Context, req dto.CriarStockRequest) (*dto.StockResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarStockRequest) (*dto.StockResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, filter dto.StockFilter) (*dto.StockListResponse, error)
	// AplicarCorrecao inserts the synthetic adjustment row for delta and
	// clears the material's pending stock_correct, atomically. Once the
	// ledger carries the adjustment the override has nothing left to say.
	AplicarCorrecao(ctx context.Context, materialID uuid.UUID, delta int) (*dto.StockResponse, error)
}

type stockService struct {
	repo         repository.StockRepository
	materialRepo repository.MaterialRepository
	projecao     ProjecaoInvalidator
}

// ProjecaoInvalidator lets ledger writes invalidate the cached current-stock
// projection without caring how it is refreshed.
type ProjecaoInvalidator interface {
	InvalidarProjecao(ctx context.Context, materialID uuid.UUID)
}

func NewStockService(repo repository.StockRepository, materialRepo repository.MaterialRepository, projecao ProjecaoInvalidator) StockService {
	return &stockService{repo: repo, materialRepo: materialRepo, projecao: projecao}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *stockService) CriarEntrada(ctx context.Context, req dto.CriarStockRequest) (*dto.StockResponse, error) {
	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		return nil, &ErroValidacao{Campo: "material_id", Detalhe: "UUID inválido"}
	}
	if req.Quantidade <= 0 {
		return nil, &ErroValidacao{Campo: "quantidade", Detalhe: "deve ser maior que zero"}
	}

	material, err := s.materialRepo.FindByID(ctx, materialID)
	if err != nil {
		return nil, &ErroValidacao{Campo: "material_id", Detalhe: "material não encontrado"}
	}

	entrada := &model.Stock{
		MaterialID: materialID,
		NoGuiaForn: req.NoGuiaForn,
		Quantidade: req.Quantidade,
		SizeX:      req.SizeX,
		SizeY:      req.SizeY,
		NPalet:     req.NPalet,
		Notas:      req.Notas,
		Data:       time.Now(),
	}

	if req.FornecedorID != nil {
		fid, err := uuid.Parse(*req.FornecedorID)
		if err != nil {
			return nil, &ErroValidacao{Campo: "fornecedor_id", Detalhe: "UUID inválido"}
		}
		entrada.FornecedorID = &fid
	}

	// Availability defaults to the received quantity; only correction
	// adjustments override it.
	entrada.QuantidadeDisponivel = req.Quantidade
	if req.QuantidadeDisponivel != nil {
		entrada.QuantidadeDisponivel = *req.QuantidadeDisponivel
	}

	switch {
	case req.PrecoUnitario != nil:
		entrada.PrecoUnitario = *req.PrecoUnitario
	case material.ValorPlaca != nil:
		entrada.PrecoUnitario = *material.ValorPlaca
	}

	if req.ValorTotal != nil {
		entrada.ValorTotal = *req.ValorTotal
	} else {
		entrada.ValorTotal = entrada.PrecoUnitario.Mul(decimal.NewFromInt(int64(req.Quantidade)))
	}

	entrada.VlM2 = derivarVlM2(req.SizeX, req.SizeY, entrada.PrecoUnitario, material)

	if err := s.repo.Create(ctx, entrada); err != nil {
		return nil, &ErroPersistencia{Op: "criar entrada de stock", Err: err}
	}
	s.invalidar(ctx, materialID)
	return stockToResponse(entrada), nil
}

func (s *stockService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarStockRequest) (*dto.StockResponse, error) {
	entrada, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &ErroPersistencia{Op: "obter entrada de stock", Err: err}
	}

	qtyMudou := false
	precoMudou := false

	if req.Quantidade != nil {
		if *req.Quantidade <= 0 {
			return nil, &ErroValidacao{Campo: "quantidade", Detalhe: "deve ser maior que zero"}
		}
		entrada.Quantidade = *req.Quantidade
		qtyMudou = true
	}
	if req.PrecoUnitario != nil {
		entrada.PrecoUnitario = *req.PrecoUnitario
		precoMudou = true
	}
	if req.SizeX != nil {
		entrada.SizeX = req.SizeX
	}
	if req.SizeY != nil {
		entrada.SizeY = req.SizeY
	}
	if req.NPalet != nil {
		entrada.NPalet = req.NPalet
	}
	if req.NoGuiaForn != nil {
		entrada.NoGuiaForn = req.NoGuiaForn
	}
	if req.Notas != nil {
		entrada.Notas = req.Notas
	}

	// Derivation rules: a direct total edit back-derives the unit price;
	// otherwise quantity/price edits recompute the total.
	qtd := decimal.NewFromInt(int64(entrada.Quantidade))
	switch {
	case req.ValorTotal != nil && !precoMudou:
		entrada.ValorTotal = *req.ValorTotal
		if entrada.Quantidade > 0 {
			entrada.PrecoUnitario = req.ValorTotal.Div(qtd)
		}
	case qtyMudou || precoMudou:
		entrada.ValorTotal = entrada.PrecoUnitario.Mul(qtd)
	case req.ValorTotal != nil:
		entrada.ValorTotal = *req.ValorTotal
	}

	entrada.VlM2 = derivarVlM2(entrada.SizeX, entrada.SizeY, entrada.PrecoUnitario, entrada.Material)

	if err := s.repo.Update(ctx, entrada); err != nil {
		return nil, &ErroPersistencia{Op: "atualizar entrada de stock", Err: err}
	}
	s.invalidar(ctx, entrada.MaterialID)
	return stockToResponse(entrada), nil
}

// Eliminar removes one ledger entry. Pallet records linked through n_palet
// are untouched — they remain as physical-inventory records.
func (s *stockService) Eliminar(ctx context.Context, id uuid.UUID) error {
	entrada, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return &ErroPersistencia{Op: "obter entrada de stock", Err: err}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return &ErroPersistencia{Op: "eliminar entrada de stock", Err: err}
	}
	s.invalidar(ctx, entrada.MaterialID)
	return nil
}

func (s *stockService) Listar(ctx context.Context, filter dto.StockFilter) (*dto.StockListResponse, error) {
	stocks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, &ErroPersistencia{Op: "listar stocks", Err: err}
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}
	items := make([]dto.StockResponse, 0, len(stocks))
	for i := range stocks {
		items = append(items, *stockToResponse(&stocks[i]))
	}
	return &dto.StockListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *stockService) AplicarCorrecao(ctx context.Context, materialID uuid.UUID, delta int) (*dto.StockResponse, error) {
	if delta == 0 {
		return nil, &ErroValidacao{Campo: "delta", Detalhe: "nenhuma correção para aplicar"}
	}
	if _, err := s.materialRepo.FindByID(ctx, materialID); err != nil {
		return nil, &ErroValidacao{Campo: "material_id", Detalhe: "material não encontrado"}
	}

	disponivel := delta
	if disponivel < 0 {
		disponivel = 0
	}
	notas := "AJUSTE MANUAL - Correção aplicada em " + time.Now().Format("02/01/2006")
	ajuste := &model.Stock{
		MaterialID:           materialID,
		Quantidade:           delta,
		QuantidadeDisponivel: disponivel,
		PrecoUnitario:        decimal.Zero,
		ValorTotal:           decimal.Zero,
		Notas:                &notas,
		Data:                 time.Now(),
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, ajuste); err != nil {
			return err
		}
		return s.materialRepo.SetStockCorrectTx(tx, materialID, nil)
	})
	if txErr != nil {
		return nil, &ErroPersistencia{Op: "aplicar correção", Err: txErr}
	}
	s.invalidar(ctx, materialID)
	return stockToResponse(ajuste), nil
}

func (s *stockService) invalidar(ctx context.Context, materialID uuid.UUID) {
	if s.projecao != nil {
		s.projecao.InvalidarProjecao(ctx, materialID)
	}
}

// derivarVlM2 computes price per m² when both physical dimensions (mm) and a
// unit price are known; otherwise it falls back to the catalog cost.
func derivarVlM2(sizeX, sizeY *int, preco decimal.Decimal, material *model.Material) *decimal.Decimal {
	if sizeX != nil && sizeY != nil && *sizeX > 0 && *sizeY > 0 && preco.IsPositive() {
		areaM2 := decimal.NewFromInt(int64(*sizeX)).
			Mul(decimal.NewFromInt(int64(*sizeY))).
			Div(decimal.NewFromInt(1_000_000))
		vl := preco.Div(areaM2).Round(2)
		return &vl
	}
	if material != nil && material.ValorM2Custo != nil {
		return material.ValorM2Custo
	}
	return nil
}

func stockToResponse(e *model.Stock) *dto.StockResponse {
	resp := &dto.StockResponse{
		ID:                   e.ID.String(),
		MaterialID:           e.MaterialID.String(),
		NoGuiaForn:           e.NoGuiaForn,
		Quantidade:           e.Quantidade,
		QuantidadeDisponivel: e.QuantidadeDisponivel,
		SizeX:                e.SizeX,
		SizeY:                e.SizeY,
		VlM2:                 e.VlM2,
		PrecoUnitario:        e.PrecoUnitario,
		ValorTotal:           e.ValorTotal,
		NPalet:               e.NPalet,
		Data:                 e.Data.Format("2006-01-02"),
		Notas:                e.Notas,
		CreatedAt:            e.CreatedAt.Format(time.RFC3339),
	}
	if e.FornecedorID != nil {
		id := e.FornecedorID.String()
		resp.FornecedorID = &id
	}
	return resp
}

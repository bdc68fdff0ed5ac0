package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/model"
	"github.com/Imacx-maria/app-imacx-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LinhaEntrada is one draft row of an intake batch. Rows live in memory only:
// nothing touches the database until the row is saved, and a saved row leaves
// the batch.
type LinhaEntrada struct {
	MaterialID    *uuid.UUID
	MaterialNome  string
	Referencia    string
	FornecedorID  *uuid.UUID
	Quantidade    int
	NoGuiaForn    string
	NoPalete      string
	NumPaletes    int
	SizeX         int
	SizeY         int
	PrecoUnitario decimal.Decimal
	ValorTotal    decimal.Decimal
	EmCurso       bool
}

type loteEntrada struct {
	id     uuid.UUID
	linhas []*LinhaEntrada
}

// BatchStore keeps the open intake batches. Draft state is deliberately
// volatile: a restart drops unsaved rows, never saved ones.
type BatchStore struct {
	mu    sync.Mutex
	lotes map[uuid.UUID]*loteEntrada
}

func NewBatchStore() *BatchStore {
	return &BatchStore{lotes: make(map[uuid.UUID]*loteEntrada)}
}

// EntradaService coordinates an intake batch: draft-row editing, pallet
// resolution and the save flow. A single row save is atomic (pallets and
// ledger entry in one transaction); a whole-batch save is a sequence of
// independent row saves where one failure never blocks the rest.
type EntradaService interface {
	CriarBatch(ctx context.Context) (*dto.BatchResponse, error)
	ObterBatch(ctx context.Context, batchID uuid.UUID) (*dto.BatchResponse, error)
	NovaLinha(ctx context.Context, batchID uuid.UUID) (*dto.BatchResponse, error)
	AtualizarLinha(ctx context.Context, batchID uuid.UUID, indice int, req dto.AtualizarLinhaRequest) (*dto.BatchResponse, error)
	RemoverLinha(ctx context.Context, batchID uuid.UUID, indice int) (*dto.BatchResponse, error)
	GuardarLinha(ctx context.Context, batchID uuid.UUID, indice int) (*dto.ResultadoLinhaResponse, error)
	GuardarTudo(ctx context.Context, batchID uuid.UUID) (*dto.ResumoGuardarResponse, error)
	// AnexarLinhas appends externally built rows (order import) to a batch.
	AnexarLinhas(ctx context.Context, batchID uuid.UUID, linhas []LinhaEntrada) (int, error)
}

type entradaService struct {
	store         *BatchStore
	materialRepo  repository.MaterialRepository
	paleteRepo    repository.PaleteRepository
	stockRepo     repository.StockRepository
	paleteService PaleteService
	projecao      ProjecaoInvalidator
}

func NewEntradaService(
	store *BatchStore,
	materialRepo repository.MaterialRepository,
	paleteRepo repository.PaleteRepository,
	stockRepo repository.StockRepository,
	paleteService PaleteService,
	projecao ProjecaoInvalidator,
) EntradaService {
	return &entradaService{
		store:         store,
		materialRepo:  materialRepo,
		paleteRepo:    paleteRepo,
		stockRepo:     stockRepo,
		paleteService: paleteService,
		projecao:      projecao,
	}
}

// ── Draft editing ─────────────────────────────────────────────────────────

func (s *entradaService) CriarBatch(ctx context.Context) (*dto.BatchResponse, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	lote := &loteEntrada{id: uuid.New()}
	s.store.lotes[lote.id] = lote
	return loteToResponse(lote), nil
}

func (s *entradaService) ObterBatch(ctx context.Context, batchID uuid.UUID) (*dto.BatchResponse, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	lote, ok := s.store.lotes[batchID]
	if !ok {
		return nil, ErrBatchNaoEncontrado
	}
	return loteToResponse(lote), nil
}

func (s *entradaService) NovaLinha(ctx context.Context, batchID uuid.UUID) (*dto.BatchResponse, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	lote, ok := s.store.lotes[batchID]
	if !ok {
		return nil, ErrBatchNaoEncontrado
	}
	lote.linhas = append(lote.linhas, &LinhaEntrada{NumPaletes: 1})
	return loteToResponse(lote), nil
}

func (s *entradaService) AtualizarLinha(ctx context.Context, batchID uuid.UUID, indice int, req dto.AtualizarLinhaRequest) (*dto.BatchResponse, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	lote, ok := s.store.lotes[batchID]
	if !ok {
		return nil, ErrBatchNaoEncontrado
	}
	if indice < 0 || indice >= len(lote.linhas) {
		return nil, ErrLinhaNaoEncontrada
	}
	linha := lote.linhas[indice]
	if linha.EmCurso {
		return nil, &ErroValidacao{Campo: "linha", Detalhe: "gravação em curso"}
	}

	if req.MaterialID != nil {
		if *req.MaterialID == "" {
			linha.MaterialID = nil
			linha.MaterialNome = ""
		} else {
			id, err := uuid.Parse(*req.MaterialID)
			if err != nil {
				return nil, &ErroValidacao{Campo: "material_id", Detalhe: "identificador inválido"}
			}
			material, err := s.materialRepo.FindByID(ctx, id)
			if err != nil {
				return nil, &ErroValidacao{Campo: "material_id", Detalhe: "material não encontrado"}
			}
			linha.MaterialID = &material.ID
			linha.MaterialNome = material.Material
			if material.Referencia != nil {
				linha.Referencia = *material.Referencia
			}
			if material.FornecedorID != nil && linha.FornecedorID == nil {
				linha.FornecedorID = material.FornecedorID
			}
		}
	}
	if req.FornecedorID != nil {
		if *req.FornecedorID == "" {
			linha.FornecedorID = nil
		} else {
			id, err := uuid.Parse(*req.FornecedorID)
			if err != nil {
				return nil, &ErroValidacao{Campo: "fornecedor_id", Detalhe: "identificador inválido"}
			}
			linha.FornecedorID = &id
		}
	}
	if req.Referencia != nil {
		linha.Referencia = *req.Referencia
	}
	if req.NoGuiaForn != nil {
		linha.NoGuiaForn = *req.NoGuiaForn
	}
	if req.NoPalete != nil {
		linha.NoPalete = strings.TrimSpace(*req.NoPalete)
	}
	if req.NumPaletes != nil {
		linha.NumPaletes = *req.NumPaletes
	}
	if req.SizeX != nil {
		linha.SizeX = *req.SizeX
	}
	if req.SizeY != nil {
		linha.SizeY = *req.SizeY
	}

	// Quantity and unit-price edits recompute the total. A direct total edit
	// without a price edit back-derives the unit price instead.
	if req.Quantidade != nil {
		linha.Quantidade = *req.Quantidade
	}
	if req.PrecoUnitario != nil {
		linha.PrecoUnitario = *req.PrecoUnitario
	}
	switch {
	case req.ValorTotal != nil && req.PrecoUnitario == nil:
		linha.ValorTotal = *req.ValorTotal
		if linha.Quantidade > 0 {
			linha.PrecoUnitario = linha.ValorTotal.Div(decimal.NewFromInt(int64(linha.Quantidade))).Round(4)
		}
	case req.Quantidade != nil || req.PrecoUnitario != nil:
		linha.ValorTotal = linha.PrecoUnitario.Mul(decimal.NewFromInt(int64(linha.Quantidade))).Round(2)
	case req.ValorTotal != nil:
		linha.ValorTotal = *req.ValorTotal
	}

	return loteToResponse(lote), nil
}

func (s *entradaService) RemoverLinha(ctx context.Context, batchID uuid.UUID, indice int) (*dto.BatchResponse, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	lote, ok := s.store.lotes[batchID]
	if !ok {
		return nil, ErrBatchNaoEncontrado
	}
	if indice < 0 || indice >= len(lote.linhas) {
		return nil, ErrLinhaNaoEncontrada
	}
	if lote.linhas[indice].EmCurso {
		return nil, &ErroValidacao{Campo: "linha", Detalhe: "gravação em curso"}
	}
	lote.linhas = append(lote.linhas[:indice], lote.linhas[indice+1:]...)
	return loteToResponse(lote), nil
}

func (s *entradaService) AnexarLinhas(ctx context.Context, batchID uuid.UUID, linhas []LinhaEntrada) (int, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	lote, ok := s.store.lotes[batchID]
	if !ok {
		return 0, ErrBatchNaoEncontrado
	}
	for i := range linhas {
		l := linhas[i]
		lote.linhas = append(lote.linhas, &l)
	}
	return len(lote.linhas), nil
}

// ── Saving ────────────────────────────────────────────────────────────────

func (s *entradaService) GuardarLinha(ctx context.Context, batchID uuid.UUID, indice int) (*dto.ResultadoLinhaResponse, error) {
	s.store.mu.Lock()
	lote, ok := s.store.lotes[batchID]
	if !ok {
		s.store.mu.Unlock()
		return nil, ErrBatchNaoEncontrado
	}
	if indice < 0 || indice >= len(lote.linhas) {
		s.store.mu.Unlock()
		return nil, ErrLinhaNaoEncontrada
	}
	linha := lote.linhas[indice]
	if linha.EmCurso {
		s.store.mu.Unlock()
		return nil, &ErroValidacao{Campo: "linha", Detalhe: "gravação em curso"}
	}
	linha.EmCurso = true
	copia := *linha
	s.store.mu.Unlock()

	resultado, err := s.guardar(ctx, &copia)

	s.store.mu.Lock()
	linha.EmCurso = false
	if err == nil {
		s.removerLinha(lote, linha)
	}
	s.store.mu.Unlock()

	return resultado, err
}

// GuardarTudo saves every eligible row in batch order, one at a time. Rows
// share the pallet number space (a base like "P5" in one row can collide with
// the numbers another row generates), so the saves must not overlap. Rows
// that fail or are not yet fillable stay in the batch untouched; Indice in
// each reported failure refers to the ordering before removal.
func (s *entradaService) GuardarTudo(ctx context.Context, batchID uuid.UUID) (*dto.ResumoGuardarResponse, error) {
	s.store.mu.Lock()
	lote, ok := s.store.lotes[batchID]
	if !ok {
		s.store.mu.Unlock()
		return nil, ErrBatchNaoEncontrado
	}
	type alvo struct {
		indice int
		linha  *LinhaEntrada
		copia  LinhaEntrada
	}
	var alvos []alvo
	for i, linha := range lote.linhas {
		if linha.EmCurso || !elegivel(linha) {
			continue
		}
		linha.EmCurso = true
		alvos = append(alvos, alvo{indice: i, linha: linha, copia: *linha})
	}
	s.store.mu.Unlock()

	resumo := &dto.ResumoGuardarResponse{Falhas: []dto.FalhaLinha{}}
	guardadas := make([]*LinhaEntrada, 0, len(alvos))
	for _, a := range alvos {
		resultado, err := s.guardar(ctx, &a.copia)
		if err != nil {
			log.Warn().Err(err).Int("linha", a.indice).Msg("entrada: falha ao guardar linha do lote")
			resumo.Falhas = append(resumo.Falhas, dto.FalhaLinha{Indice: a.indice, Erro: err.Error()})
			continue
		}
		resumo.Guardadas++
		resumo.Paletes = append(resumo.Paletes, resultado.Paletes...)
		resumo.TotalQuantidade += resultado.Quantidade
		guardadas = append(guardadas, a.linha)
	}

	s.store.mu.Lock()
	for _, a := range alvos {
		a.linha.EmCurso = false
	}
	for _, linha := range guardadas {
		s.removerLinha(lote, linha)
	}
	s.store.mu.Unlock()

	return resumo, nil
}

// guardar persists one row: resolves the pallet set, checks for duplicates
// and writes the pallets plus the ledger entry in a single transaction, so a
// failed ledger insert can never leave orphan pallets behind. The pallet
// specification is optional; a row without one writes the ledger entry alone.
func (s *entradaService) guardar(ctx context.Context, linha *LinhaEntrada) (*dto.ResultadoLinhaResponse, error) {
	if linha.MaterialID == nil {
		return nil, &ErroValidacao{Campo: "material_id", Detalhe: "material obrigatório"}
	}
	if linha.Quantidade <= 0 {
		return nil, &ErroValidacao{Campo: "quantidade", Detalhe: "tem de ser positiva"}
	}

	var numeros []string
	if spec := strings.TrimSpace(linha.NoPalete); spec != "" {
		if !strings.Contains(spec, ",") && linha.NumPaletes <= 0 {
			return nil, &ErroValidacao{Campo: "num_paletes", Detalhe: "tem de ser positivo"}
		}
		var err error
		numeros, err = ResolverPaletes(spec, linha.NumPaletes)
		if err != nil {
			return nil, err
		}
		duplicados, err := s.paleteService.VerificarDuplicados(ctx, numeros, nil)
		if err != nil {
			return nil, err
		}
		if len(duplicados) > 0 {
			return nil, &ErroPaleteDuplicada{Numeros: duplicados}
		}
	}

	material, err := s.materialRepo.FindByID(ctx, *linha.MaterialID)
	if err != nil {
		return nil, &ErroPersistencia{Op: "obter material", Err: err}
	}

	hoje := time.Now()
	paletes := make([]model.Palete, len(numeros))
	for i, numero := range numeros {
		paletes[i] = model.Palete{
			NoPalete:     numero,
			FornecedorID: linha.FornecedorID,
			QtPalete:     material.QtPalete,
			Data:         hoje,
		}
		if linha.NoGuiaForn != "" {
			guia := linha.NoGuiaForn
			paletes[i].NoGuiaForn = &guia
		}
		if linha.Referencia != "" {
			ref := linha.Referencia
			paletes[i].RefCartao = &ref
		}
	}

	preco := linha.PrecoUnitario
	if preco.IsZero() && material.ValorPlaca != nil {
		preco = *material.ValorPlaca
	}
	total := linha.ValorTotal
	if total.IsZero() {
		total = preco.Mul(decimal.NewFromInt(int64(linha.Quantidade))).Round(2)
	}
	entrada := model.Stock{
		MaterialID:           material.ID,
		FornecedorID:         linha.FornecedorID,
		Quantidade:           linha.Quantidade,
		QuantidadeDisponivel: linha.Quantidade,
		PrecoUnitario:        preco,
		ValorTotal:           total,
		Data:                 hoje,
	}
	if linha.NoGuiaForn != "" {
		guia := linha.NoGuiaForn
		entrada.NoGuiaForn = &guia
	}
	if linha.SizeX > 0 {
		x := linha.SizeX
		entrada.SizeX = &x
	}
	if linha.SizeY > 0 {
		y := linha.SizeY
		entrada.SizeY = &y
	}
	entrada.VlM2 = derivarVlM2(entrada.SizeX, entrada.SizeY, preco, material)
	if len(numeros) > 0 {
		nPalet := strings.Join(numeros, ", ")
		entrada.NPalet = &nPalet
	}

	err = runTx(ctx, s.paleteRepo.DB(), func(tx *gorm.DB) error {
		if len(paletes) > 0 {
			if err := s.paleteRepo.CreateLoteTx(tx, paletes); err != nil {
				return err
			}
		}
		return s.stockRepo.CreateTx(tx, &entrada)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ErroPaleteDuplicada{Numeros: numeros}
		}
		return nil, &ErroPersistencia{Op: "guardar entrada", Err: err}
	}

	if s.projecao != nil {
		s.projecao.InvalidarProjecao(ctx, material.ID)
	}
	return &dto.ResultadoLinhaResponse{Paletes: numeros, Quantidade: linha.Quantidade}, nil
}

// elegivel reports whether a row is complete enough for a whole-batch save:
// material and a positive quantity, plus a usable pallet count when a
// sequential base was typed. Imported and half-filled rows simply wait for
// the next round.
func elegivel(l *LinhaEntrada) bool {
	if l.MaterialID == nil || l.Quantidade <= 0 {
		return false
	}
	spec := strings.TrimSpace(l.NoPalete)
	return spec == "" || strings.Contains(spec, ",") || l.NumPaletes > 0
}

func (s *entradaService) removerLinha(lote *loteEntrada, alvo *LinhaEntrada) {
	for i, l := range lote.linhas {
		if l == alvo {
			lote.linhas = append(lote.linhas[:i], lote.linhas[i+1:]...)
			return
		}
	}
}

func loteToResponse(lote *loteEntrada) *dto.BatchResponse {
	resp := &dto.BatchResponse{ID: lote.id.String(), Linhas: make([]dto.LinhaEntradaResponse, len(lote.linhas))}
	for i, l := range lote.linhas {
		resp.Linhas[i] = dto.LinhaEntradaResponse{
			MaterialNome:  l.MaterialNome,
			Referencia:    l.Referencia,
			Quantidade:    l.Quantidade,
			NoGuiaForn:    l.NoGuiaForn,
			NoPalete:      l.NoPalete,
			NumPaletes:    l.NumPaletes,
			SizeX:         l.SizeX,
			SizeY:         l.SizeY,
			PrecoUnitario: l.PrecoUnitario,
			ValorTotal:    l.ValorTotal,
			EmCurso:       l.EmCurso,
		}
		if l.MaterialID != nil {
			id := l.MaterialID.String()
			resp.Linhas[i].MaterialID = &id
		}
		if l.FornecedorID != nil {
			id := l.FornecedorID.String()
			resp.Linhas[i].FornecedorID = &id
		}
	}
	return resp
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/model"
	"github.com/Imacx-maria/app-imacx-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaleteService manages physical pallet records independently of stock
// intake: manual creation (with next-number suggestion), edit, delete and the
// filtered listing. The duplicate check here is advisory — the functional
// unique index on lower(no_palete) is the authoritative guard, and a
// constraint violation on insert is still reported as ErroPaleteDuplicada.
type PaleteService interface {
	VerificarDuplicados(ctx context.Context, candidatos []string, excludeID *uuid.UUID) ([]string, error)
	Criar(ctx context.Context, req dto.CriarPaleteRequest) (*dto.PaleteResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPaleteRequest) (*dto.PaleteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	Listar(ctx context.Context, filter dto.PaleteFilter) (*dto.PaleteListResponse, error)
	ProximoNumero(ctx context.Context) (string, error)
}

type paleteService struct {
	repo repository.PaleteRepository
}

func NewPaleteService(repo repository.PaleteRepository) PaleteService {
	return &paleteService{repo: repo}
}

// VerificarDuplicados returns the subset of candidatos already stored,
// compared case-insensitively, preserving the candidates' casing.
func (s *paleteService) VerificarDuplicados(ctx context.Context, candidatos []string, excludeID *uuid.UUID) ([]string, error) {
	existentes, err := s.repo.FindNumerosExistentes(ctx, lowerAll(candidatos), excludeID)
	if err != nil {
		return nil, &ErroPersistencia{Op: "verificar paletes", Err: err}
	}
	if len(existentes) == 0 {
		return nil, nil
	}
	set := make(map[string]bool, len(existentes))
	for _, e := range existentes {
		set[strings.ToLower(e)] = true
	}
	var duplicados []string
	for _, c := range candidatos {
		if set[strings.ToLower(c)] {
			duplicados = append(duplicados, c)
		}
	}
	return duplicados, nil
}

func (s *paleteService) Criar(ctx context.Context, req dto.CriarPaleteRequest) (*dto.PaleteResponse, error) {
	numero := strings.TrimSpace(req.NoPalete)
	if numero == "" {
		sugestao, err := s.ProximoNumero(ctx)
		if err != nil {
			return nil, err
		}
		numero = sugestao
	}

	duplicados, err := s.VerificarDuplicados(ctx, []string{numero}, nil)
	if err != nil {
		return nil, err
	}
	if len(duplicados) > 0 {
		return nil, &ErroPaleteDuplicada{Numeros: duplicados}
	}

	fornecedorID, err := uuid.Parse(req.FornecedorID)
	if err != nil {
		return nil, &ErroValidacao{Campo: "fornecedor_id", Detalhe: "UUID inválido"}
	}
	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		return nil, &ErroValidacao{Campo: "author_id", Detalhe: "UUID inválido"}
	}

	p := &model.Palete{
		NoPalete:     numero,
		FornecedorID: &fornecedorID,
		NoGuiaForn:   req.NoGuiaForn,
		RefCartao:    req.RefCartao,
		QtPalete:     req.QtPalete,
		Data:         parseDataOuHoje(req.Data),
		AuthorID:     &authorID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ErroPaleteDuplicada{Numeros: []string{numero}}
		}
		return nil, &ErroPersistencia{Op: "criar palete", Err: err}
	}
	return paleteToResponse(p), nil
}

func (s *paleteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarPaleteRequest) (*dto.PaleteResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &ErroPersistencia{Op: "obter palete", Err: err}
	}

	duplicados, err := s.VerificarDuplicados(ctx, []string{req.NoPalete}, &id)
	if err != nil {
		return nil, err
	}
	if len(duplicados) > 0 {
		return nil, &ErroPaleteDuplicada{Numeros: duplicados}
	}

	fornecedorID, err := uuid.Parse(req.FornecedorID)
	if err != nil {
		return nil, &ErroValidacao{Campo: "fornecedor_id", Detalhe: "UUID inválido"}
	}
	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		return nil, &ErroValidacao{Campo: "author_id", Detalhe: "UUID inválido"}
	}

	p.NoPalete = req.NoPalete
	p.FornecedorID = &fornecedorID
	p.NoGuiaForn = req.NoGuiaForn
	p.RefCartao = req.RefCartao
	p.QtPalete = req.QtPalete
	p.AuthorID = &authorID
	if req.Data != nil {
		p.Data = parseDataOuHoje(req.Data)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ErroPaleteDuplicada{Numeros: []string{req.NoPalete}}
		}
		return nil, &ErroPersistencia{Op: "atualizar palete", Err: err}
	}
	return paleteToResponse(p), nil
}

// Eliminar removes one pallet record. Explicit user action only — nothing in
// the ledger flow ever calls this.
func (s *paleteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return &ErroPersistencia{Op: "eliminar palete", Err: err}
	}
	return nil
}

func (s *paleteService) Listar(ctx context.Context, filter dto.PaleteFilter) (*dto.PaleteListResponse, error) {
	paletes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, &ErroPersistencia{Op: "listar paletes", Err: err}
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}
	items := make([]dto.PaleteResponse, 0, len(paletes))
	for i := range paletes {
		items = append(items, *paleteToResponse(&paletes[i]))
	}
	return &dto.PaleteListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *paleteService) ProximoNumero(ctx context.Context) (string, error) {
	numeros, err := s.repo.ListNumeros(ctx)
	if err != nil {
		return "", &ErroPersistencia{Op: "listar números de palete", Err: err}
	}
	return ProximoNumeroPalete(numeros), nil
}

func parseDataOuHoje(data *string) time.Time {
	if data != nil {
		if t, err := time.Parse("2006-01-02", *data); err == nil {
			return t
		}
	}
	return time.Now()
}

func paleteToResponse(p *model.Palete) *dto.PaleteResponse {
	resp := &dto.PaleteResponse{
		ID:        p.ID.String(),
		NoPalete:  p.NoPalete,
		RefCartao: p.RefCartao,
		QtPalete:  p.QtPalete,

		NoGuiaForn: p.NoGuiaForn,
		Data:       p.Data.Format("2006-01-02"),
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
	if p.FornecedorID != nil {
		id := p.FornecedorID.String()
		resp.FornecedorID = &id
	}
	if p.Fornecedor != nil {
		resp.FornecedorNome = p.Fornecedor.NomeForn
	}
	if p.AuthorID != nil {
		id := p.AuthorID.String()
		resp.AuthorID = &id
	}
	return resp
}

package service

import (
	"context"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/repository"
)

// CatalogoService exposes the read-only catálogo lookups the intake screens
// need: materials and active suppliers.
type CatalogoService interface {
	ListarMateriais(ctx context.Context) ([]dto.MaterialResponse, error)
	ListarFornecedores(ctx context.Context) ([]dto.FornecedorResponse, error)
}

type catalogoService struct {
	materialRepo   repository.MaterialRepository
	fornecedorRepo repository.FornecedorRepository
}

func NewCatalogoService(materialRepo repository.MaterialRepository, fornecedorRepo repository.FornecedorRepository) CatalogoService {
	return &catalogoService{materialRepo: materialRepo, fornecedorRepo: fornecedorRepo}
}

func (s *catalogoService) ListarMateriais(ctx context.Context) ([]dto.MaterialResponse, error) {
	materiais, err := s.materialRepo.List(ctx)
	if err != nil {
		return nil, &ErroPersistencia{Op: "listar materiais", Err: err}
	}
	result := make([]dto.MaterialResponse, len(materiais))
	for i := range materiais {
		m := &materiais[i]
		result[i] = dto.MaterialResponse{
			ID:            m.ID.String(),
			Material:      m.Material,
			Cor:           m.Cor,
			Tipo:          m.Tipo,
			Carateristica: m.Carateristica,
			Referencia:    m.Referencia,
			QtPalete:      m.QtPalete,
			ValorM2Custo:  m.ValorM2Custo,
			ValorPlaca:    m.ValorPlaca,
			StockMinimo:   m.StockMinimo,
			StockCritico:  m.StockCritico,
		}
		if m.FornecedorID != nil {
			id := m.FornecedorID.String()
			result[i].FornecedorID = &id
		}
	}
	return result, nil
}

func (s *catalogoService) ListarFornecedores(ctx context.Context) ([]dto.FornecedorResponse, error) {
	fornecedores, err := s.fornecedorRepo.List(ctx)
	if err != nil {
		return nil, &ErroPersistencia{Op: "listar fornecedores", Err: err}
	}
	result := make([]dto.FornecedorResponse, len(fornecedores))
	for i := range fornecedores {
		result[i] = dto.FornecedorResponse{
			ID:       fornecedores[i].ID.String(),
			NomeForn: fornecedores[i].NomeForn,
		}
	}
	return result, nil
}

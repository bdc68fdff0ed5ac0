package service

import (
	"context"
	"errors"
	"math"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/infra"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// EncomendaService imports supplier-order lines from the PHC ERP into an open
// intake batch, through the circuit-breakered sidecar client.
type EncomendaService interface {
	ImportarNE(ctx context.Context, batchID uuid.UUID, ne string) (*dto.ImportarNEResponse, error)
}

type encomendaService struct {
	phc     *infra.PHCClient
	breaker *infra.CircuitBreaker
	entrada EntradaService
}

func NewEncomendaService(phc *infra.PHCClient, breaker *infra.CircuitBreaker, entrada EntradaService) EncomendaService {
	return &encomendaService{phc: phc, breaker: breaker, entrada: entrada}
}

// ImportarNE appends one draft row per order line with positive quantity.
// Imported rows are incomplete on purpose: the material link and the pallet
// numbers are filled in by hand before the row can be saved, so NumPaletes
// starts at zero rather than the usual one.
func (s *encomendaService) ImportarNE(ctx context.Context, batchID uuid.UUID, ne string) (*dto.ImportarNEResponse, error) {
	var encomenda *infra.PHCEncomenda
	err := s.breaker.Execute(func() error {
		var fetchErr error
		encomenda, fetchErr = s.phc.ObterEncomenda(ctx, ne)
		return fetchErr
	})
	if err != nil {
		if errors.Is(err, infra.ErrPHCNotFound) {
			return nil, ErrNENaoEncontrada
		}
		log.Error().Err(err).Str("ne", ne).Msg("encomenda: falha a contactar o sidecar PHC")
		return nil, &ErroPersistencia{Op: "obter encomenda PHC", Err: err}
	}

	var linhas []LinhaEntrada
	for _, l := range encomenda.Linhas {
		if l.Quantidade <= 0 {
			continue
		}
		linhas = append(linhas, LinhaEntrada{
			MaterialNome:  l.Descricao,
			Referencia:    l.Referencia,
			Quantidade:    int(math.Round(l.Quantidade)),
			NoGuiaForn:    ne,
			NumPaletes:    0,
			PrecoUnitario: decimal.NewFromFloat(l.PrecoUnitario).Round(4),
			ValorTotal:    decimal.NewFromFloat(l.TotalLinha).Round(2),
		})
	}
	if len(linhas) == 0 {
		return nil, ErrNESemLinhas
	}

	if _, err := s.entrada.AnexarLinhas(ctx, batchID, linhas); err != nil {
		return nil, err
	}
	log.Info().Str("ne", ne).Int("linhas", len(linhas)).Msg("encomenda: linhas importadas para o lote")
	return &dto.ImportarNEResponse{NE: ne, LinhasImportadas: len(linhas)}, nil
}

package dto

import "github.com/shopspring/decimal"

type CriarStockRequest struct {
	MaterialID   string  `json:"material_id" validate:"required,uuid"`
	FornecedorID *string `json:"fornecedor_id" validate:"omitempty,uuid"`
	NoGuiaForn   *string `json:"no_guia_forn"`
	Quantidade   int     `json:"quantidade" validate:"gt=0"`
	// QuantidadeDisponivel defaults to Quantidade; correction adjustments are
	// the only caller that overrides it.
	QuantidadeDisponivel *int             `json:"quantidade_disponivel"`
	SizeX                *int             `json:"size_x"`
	SizeY                *int             `json:"size_y"`
	PrecoUnitario        *decimal.Decimal `json:"preco_unitario"`
	ValorTotal           *decimal.Decimal `json:"valor_total"`
	NPalet               *string          `json:"n_palet"`
	Notas                *string          `json:"notas"`
}

// AtualizarStockRequest is a partial update. Quantidade/PrecoUnitario changes
// recompute ValorTotal; a direct ValorTotal edit back-derives PrecoUnitario.
type AtualizarStockRequest struct {
	Quantidade    *int             `json:"quantidade" validate:"omitempty,gt=0"`
	SizeX         *int             `json:"size_x"`
	SizeY         *int             `json:"size_y"`
	PrecoUnitario *decimal.Decimal `json:"preco_unitario"`
	ValorTotal    *decimal.Decimal `json:"valor_total"`
	NPalet        *string          `json:"n_palet"`
	NoGuiaForn    *string          `json:"no_guia_forn"`
	Notas         *string          `json:"notas"`
}

type StockResponse struct {
	ID                   string           `json:"id"`
	MaterialID           string           `json:"material_id"`
	FornecedorID         *string          `json:"fornecedor_id"`
	NoGuiaForn           *string          `json:"no_guia_forn"`
	Quantidade           int              `json:"quantidade"`
	QuantidadeDisponivel int              `json:"quantidade_disponivel"`
	SizeX                *int             `json:"size_x"`
	SizeY                *int             `json:"size_y"`
	VlM2                 *decimal.Decimal `json:"vl_m2"`
	PrecoUnitario        decimal.Decimal  `json:"preco_unitario"`
	ValorTotal           decimal.Decimal  `json:"valor_total"`
	NPalet               *string          `json:"n_palet"`
	Data                 string           `json:"data"`
	Notas                *string          `json:"notas"`
	CreatedAt            string           `json:"created_at"`
}

type StockFilter struct {
	MaterialID   string `form:"material_id"`
	FornecedorID string `form:"fornecedor_id"`
	DateFrom     string `form:"date_from"` // YYYY-MM-DD
	DateTo       string `form:"date_to"`
	Page         int    `form:"page,default=1"`
	Limit        int    `form:"limit,default=100"`
}

type StockListResponse struct {
	Data  []StockResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type AplicarCorrecaoRequest struct {
	// Delta is the signed correction quantity; zero is rejected.
	Delta int `json:"delta" validate:"required"`
}

package dto

import "github.com/shopspring/decimal"

// LinhaEntradaResponse mirrors one draft row of an intake batch. Draft rows
// live only in memory — nothing here is persisted until the row is saved.
type LinhaEntradaResponse struct {
	MaterialID    *string         `json:"material_id"`
	MaterialNome  string          `json:"material_nome"`
	Referencia    string          `json:"referencia"`
	FornecedorID  *string         `json:"fornecedor_id"`
	Quantidade    int             `json:"quantidade"`
	NoGuiaForn    string          `json:"no_guia_forn"`
	NoPalete      string          `json:"no_palete"`
	NumPaletes    int             `json:"num_paletes"`
	SizeX         int             `json:"size_x"`
	SizeY         int             `json:"size_y"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	EmCurso       bool            `json:"em_curso"`
}

type BatchResponse struct {
	ID     string                 `json:"id"`
	Linhas []LinhaEntradaResponse `json:"linhas"`
}

// AtualizarLinhaRequest is a partial update — only non-nil fields are applied.
// Quantidade and PrecoUnitario changes recompute ValorTotal; a direct
// ValorTotal change back-derives PrecoUnitario instead.
type AtualizarLinhaRequest struct {
	MaterialID    *string          `json:"material_id"`
	FornecedorID  *string          `json:"fornecedor_id"`
	Referencia    *string          `json:"referencia"`
	Quantidade    *int             `json:"quantidade"`
	NoGuiaForn    *string          `json:"no_guia_forn"`
	NoPalete      *string          `json:"no_palete"`
	NumPaletes    *int             `json:"num_paletes"`
	SizeX         *int             `json:"size_x"`
	SizeY         *int             `json:"size_y"`
	PrecoUnitario *decimal.Decimal `json:"preco_unitario"`
	ValorTotal    *decimal.Decimal `json:"valor_total"`
}

// ResultadoLinhaResponse reports one successfully saved row.
type ResultadoLinhaResponse struct {
	Paletes    []string `json:"paletes"`
	Quantidade int      `json:"quantidade"`
}

// FalhaLinha names one row that failed during GuardarTudo. Indice refers to
// the batch ordering before saved rows were removed.
type FalhaLinha struct {
	Indice int    `json:"indice"`
	Erro   string `json:"erro"`
}

// ResumoGuardarResponse is the aggregate outcome of a whole-batch save.
// Guardadas counts genuine successes only.
type ResumoGuardarResponse struct {
	Guardadas       int          `json:"guardadas"`
	Paletes         []string     `json:"paletes"`
	TotalQuantidade int          `json:"total_quantidade"`
	Falhas          []FalhaLinha `json:"falhas"`
}

type ImportarNERequest struct {
	NE string `json:"ne" validate:"required"`
}

type ImportarNEResponse struct {
	NE               string `json:"ne"`
	LinhasImportadas int    `json:"linhas_importadas"`
}

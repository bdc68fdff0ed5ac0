package dto

import "github.com/shopspring/decimal"

type MaterialResponse struct {
	ID           string           `json:"id"`
	Material     string           `json:"material"`
	Cor          *string          `json:"cor"`
	Tipo         *string          `json:"tipo"`
	Carateristica *string         `json:"carateristica"`
	Referencia   *string          `json:"referencia"`
	FornecedorID *string          `json:"fornecedor_id"`
	QtPalete     *int             `json:"qt_palete"`
	ValorM2Custo *decimal.Decimal `json:"valor_m2_custo"`
	ValorPlaca   *decimal.Decimal `json:"valor_placa"`
	StockMinimo  *int             `json:"stock_minimo"`
	StockCritico *int             `json:"stock_critico"`
}

type FornecedorResponse struct {
	ID       string `json:"id"`
	NomeForn string `json:"nome_forn"`
}

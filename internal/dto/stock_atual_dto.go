package dto

// Estado values carried by StockAtualResponse.
const (
	EstadoCritico = "CRÍTICO"
	EstadoBaixo   = "BAIXO"
	EstadoOK      = "OK"
)

// StockAtualResponse is the per-material current-stock projection:
//
//	stock_atual = Σ quantidade (ledger) − Σ num_placas_corte (produção)
//	stock_final = stock_correct when set, otherwise stock_atual
//
// Estado is CRÍTICO / BAIXO / OK against the material thresholds.
type StockAtualResponse struct {
	MaterialID            string  `json:"material_id"`
	Material              string  `json:"material"`
	Cor                   *string `json:"cor"`
	Tipo                  *string `json:"tipo"`
	Carateristica         *string `json:"carateristica"`
	Referencia            *string `json:"referencia"`
	TotalRecebido         int     `json:"total_recebido"`
	TotalConsumido        int     `json:"total_consumido"`
	StockAtual            int     `json:"stock_atual"`
	QuantidadeDisponivel  int     `json:"quantidade_disponivel"`
	StockMinimo           *int    `json:"stock_minimo"`
	StockCritico          *int    `json:"stock_critico"`
	StockCorrect          *int    `json:"stock_correct"`
	StockCorrectUpdatedAt *string `json:"stock_correct_updated_at"`
	StockFinal            int     `json:"stock_final"`
	Estado                string  `json:"estado"`
}

// DefinirValorRequest sets or clears (null) a per-material integer field:
// stock_minimo, stock_critico or stock_correct.
type DefinirValorRequest struct {
	Valor *int `json:"valor"`
}

package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrPHCNotFound is returned when the sidecar reports no order for the
// requested NE number.
var ErrPHCNotFound = errors.New("phc: encomenda não encontrada")

// PHCEncomenda is the supplier-order header as returned by the PHC Sidecar
// (bo table: "Encomenda a Fornecedor").
type PHCEncomenda struct {
	ID          string             `json:"id"`
	Numero      string             `json:"numero"`
	Observacoes string             `json:"observacoes"`
	Linhas      []PHCLinhaEncomenda `json:"linhas"`
}

// PHCLinhaEncomenda is one order line (bi table).
type PHCLinhaEncomenda struct {
	Descricao     string  `json:"descricao"`
	Referencia    string  `json:"referencia"`
	Quantidade    float64 `json:"quantidade"`
	PrecoUnitario float64 `json:"preco_unitario"`
	TotalLinha    float64 `json:"total_linha"`
}

// PHCClient is an HTTP client that delegates PHC ERP access to the Sidecar.
// The decoupling isolates ERP availability from the core backend: a slow or
// down PHC never blocks the intake API beyond the breaker's fast-fail.
type PHCClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewPHCClient(sidecarURL string) *PHCClient {
	return &PHCClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ObterEncomenda fetches one supplier order by NE number.
func (c *PHCClient) ObterEncomenda(ctx context.Context, ne string) (*PHCEncomenda, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sidecarURL+"/encomendas/"+ne, nil)
	if err != nil {
		return nil, fmt.Errorf("phc: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("phc: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPHCNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("phc: sidecar returned %d", resp.StatusCode)
	}

	var result PHCEncomenda
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("phc: decode response: %w", err)
	}
	return &result, nil
}

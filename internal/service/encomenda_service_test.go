package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Imacx-maria/app-imacx-sub000/internal/infra"
	"github.com/Imacx-maria/app-imacx-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sidecarFake serves canned PHC orders the way the sidecar would.
func sidecarFake(t *testing.T, encomendas map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := encomendas[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newEncomendaSvc(t *testing.T, sidecarURL string) (service.EncomendaService, *entradaEnv) {
	t.Helper()
	env := newEntradaEnv(t)
	svc := service.NewEncomendaService(
		infra.NewPHCClient(sidecarURL),
		infra.NewCircuitBreaker(infra.DefaultCBConfig()),
		env.svc,
	)
	return svc, env
}

func TestImportarNE(t *testing.T) {
	ctx := context.Background()

	t.Run("importa linhas com quantidade positiva", func(t *testing.T) {
		srv := sidecarFake(t, map[string]string{
			"/encomendas/NE-2026-017": `{
				"id": "bo-1",
				"numero": "NE-2026-017",
				"linhas": [
					{"descricao": "Cartão Canelado B", "referencia": "CC-B-3MM", "quantidade": 500, "preco_unitario": 0.82, "total_linha": 410},
					{"descricao": "Portes", "referencia": "", "quantidade": 0, "preco_unitario": 35, "total_linha": 35},
					{"descricao": "Cartão Micro E", "referencia": "CM-E-1.5MM", "quantidade": 249.6, "preco_unitario": 0.65, "total_linha": 162.24}
				]
			}`,
		})
		svc, env := newEncomendaSvc(t, srv.URL)
		batchID := criarBatch(t, env.svc)

		resp, err := svc.ImportarNE(ctx, batchID, "NE-2026-017")
		require.NoError(t, err)
		assert.Equal(t, "NE-2026-017", resp.NE)
		assert.Equal(t, 2, resp.LinhasImportadas)

		batch, err := env.svc.ObterBatch(ctx, batchID)
		require.NoError(t, err)
		require.Len(t, batch.Linhas, 2)

		primeira := batch.Linhas[0]
		assert.Nil(t, primeira.MaterialID)
		assert.Equal(t, "Cartão Canelado B", primeira.MaterialNome)
		assert.Equal(t, "NE-2026-017", primeira.NoGuiaForn)
		assert.Zero(t, primeira.NumPaletes)
		assert.Equal(t, 500, primeira.Quantidade)

		// quantidades fracionárias arredondam à unidade mais próxima
		assert.Equal(t, 250, batch.Linhas[1].Quantidade)
	})

	t.Run("importar acrescenta, nunca substitui", func(t *testing.T) {
		srv := sidecarFake(t, map[string]string{
			"/encomendas/NE-1": `{"numero": "NE-1", "linhas": [{"descricao": "Cartão", "quantidade": 100}]}`,
		})
		svc, env := newEncomendaSvc(t, srv.URL)
		batchID := criarBatch(t, env.svc)
		env.novaLinhaPreenchida(t, batchID, 50, "P1", 1)

		_, err := svc.ImportarNE(ctx, batchID, "NE-1")
		require.NoError(t, err)
		_, err = svc.ImportarNE(ctx, batchID, "NE-1")
		require.NoError(t, err)

		batch, err := env.svc.ObterBatch(ctx, batchID)
		require.NoError(t, err)
		require.Len(t, batch.Linhas, 3)
		assert.Equal(t, "P1", batch.Linhas[0].NoPalete)
	})

	t.Run("NE inexistente", func(t *testing.T) {
		srv := sidecarFake(t, nil)
		svc, env := newEncomendaSvc(t, srv.URL)
		batchID := criarBatch(t, env.svc)

		_, err := svc.ImportarNE(ctx, batchID, "NE-404")
		assert.ErrorIs(t, err, service.ErrNENaoEncontrada)
	})

	t.Run("NE sem linhas com quantidade positiva", func(t *testing.T) {
		srv := sidecarFake(t, map[string]string{
			"/encomendas/NE-2": `{"numero": "NE-2", "linhas": [{"descricao": "Portes", "quantidade": 0}]}`,
		})
		svc, env := newEncomendaSvc(t, srv.URL)
		batchID := criarBatch(t, env.svc)

		_, err := svc.ImportarNE(ctx, batchID, "NE-2")
		assert.ErrorIs(t, err, service.ErrNESemLinhas)
	})

	t.Run("sidecar inacessível devolve erro de persistência", func(t *testing.T) {
		srv := sidecarFake(t, nil)
		srv.Close()
		svc, env := newEncomendaSvc(t, srv.URL)
		batchID := criarBatch(t, env.svc)

		_, err := svc.ImportarNE(ctx, batchID, "NE-3")
		var persist *service.ErroPersistencia
		assert.ErrorAs(t, err, &persist)
	})
}

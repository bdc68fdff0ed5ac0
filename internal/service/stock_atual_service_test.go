package service_test

import (
	"context"
	"testing"

	"github.com/Imacx-maria/app-imacx-sub000/internal/model"
	"github.com/Imacx-maria/app-imacx-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockAtualEnv struct {
	svc          service.StockAtualService
	material     *model.Material
	materialRepo *stubMaterialRepo
	stockRepo    *stubStockRepo
	producaoRepo *stubProducaoRepo
}

func newStockAtualEnv(t *testing.T) *stockAtualEnv {
	t.Helper()
	material := novoMaterial("Cartão Canelado", "CC-B-3MM", 0.82)
	materialRepo := newStubMaterialRepo(material)
	stockRepo := &stubStockRepo{}
	producaoRepo := &stubProducaoRepo{consumo: make(map[uuid.UUID]int)}
	return &stockAtualEnv{
		svc:          service.NewStockAtualService(materialRepo, stockRepo, producaoRepo, nil, nil, 0),
		material:     material,
		materialRepo: materialRepo,
		stockRepo:    stockRepo,
		producaoRepo: producaoRepo,
	}
}

func (e *stockAtualEnv) receber(quantidade int) {
	e.stockRepo.stocks = append(e.stockRepo.stocks, model.Stock{
		ID:                   uuid.New(),
		MaterialID:           e.material.ID,
		Quantidade:           quantidade,
		QuantidadeDisponivel: quantidade,
	})
}

func TestRecalcular(t *testing.T) {
	ctx := context.Background()

	t.Run("recebido menos consumido", func(t *testing.T) {
		env := newStockAtualEnv(t)
		env.receber(300)
		env.receber(200)
		env.producaoRepo.consumo[env.material.ID] = 120
		env.material.StockCritico = intPtr(50)
		env.material.StockMinimo = intPtr(100)

		resp, err := env.svc.Recalcular(ctx, env.material.ID)
		require.NoError(t, err)
		assert.Equal(t, 500, resp.TotalRecebido)
		assert.Equal(t, 120, resp.TotalConsumido)
		assert.Equal(t, 380, resp.StockAtual)
		assert.Equal(t, 380, resp.StockFinal)
		assert.Equal(t, service.EstadoOK, resp.Estado)
		assert.Nil(t, resp.StockCorrect)
	})

	t.Run("correção manual substitui o valor calculado", func(t *testing.T) {
		env := newStockAtualEnv(t)
		env.receber(500)
		env.producaoRepo.consumo[env.material.ID] = 120
		env.material.StockCorrect = intPtr(40)
		env.material.StockCritico = intPtr(50)
		env.material.StockMinimo = intPtr(100)

		resp, err := env.svc.Recalcular(ctx, env.material.ID)
		require.NoError(t, err)
		assert.Equal(t, 380, resp.StockAtual)
		assert.Equal(t, 40, resp.StockFinal)
		assert.Equal(t, service.EstadoCritico, resp.Estado)
	})

	t.Run("repetir sobre razão inalterado dá o mesmo resultado", func(t *testing.T) {
		env := newStockAtualEnv(t)
		env.receber(250)

		primeiro, err := env.svc.Recalcular(ctx, env.material.ID)
		require.NoError(t, err)
		segundo, err := env.svc.Recalcular(ctx, env.material.ID)
		require.NoError(t, err)
		assert.Equal(t, primeiro, segundo)
	})

	t.Run("material sem movimentos fica crítico por omissão", func(t *testing.T) {
		env := newStockAtualEnv(t)
		resp, err := env.svc.Recalcular(ctx, env.material.ID)
		require.NoError(t, err)
		assert.Zero(t, resp.StockAtual)
		assert.Equal(t, service.EstadoCritico, resp.Estado)
	})
}

func TestRecalcularTodos(t *testing.T) {
	env := newStockAtualEnv(t)
	outro := novoMaterial("Cartão Microcanelado", "CM-E-1.5MM", 0.65)
	env.materialRepo.materiais[outro.ID] = outro
	env.receber(400)
	env.stockRepo.stocks = append(env.stockRepo.stocks, model.Stock{
		ID:                   uuid.New(),
		MaterialID:           outro.ID,
		Quantidade:           50,
		QuantidadeDisponivel: 50,
	})

	result, err := env.svc.RecalcularTodos(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	// ordenado do stock mais baixo para o mais alto
	assert.Equal(t, 50, result[0].StockAtual)
	assert.Equal(t, 400, result[1].StockAtual)
}

func TestClassificar(t *testing.T) {
	casos := []struct {
		nome     string
		final    int
		critico  *int
		minimo   *int
		esperado string
	}{
		{"abaixo do crítico", 5, intPtr(10), intPtr(20), service.EstadoCritico},
		{"no limiar crítico", 10, intPtr(10), intPtr(20), service.EstadoCritico},
		{"entre crítico e mínimo", 15, intPtr(10), intPtr(20), service.EstadoBaixo},
		{"no limiar mínimo", 20, intPtr(10), intPtr(20), service.EstadoBaixo},
		{"acima do mínimo", 21, intPtr(10), intPtr(20), service.EstadoOK},
		{"negativo", -3, intPtr(0), intPtr(10), service.EstadoCritico},
		{"defaults: zero é crítico", 0, nil, nil, service.EstadoCritico},
		{"defaults: dez é baixo", 10, nil, nil, service.EstadoBaixo},
		{"defaults: onze é ok", 11, nil, nil, service.EstadoOK},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.esperado, service.Classificar(c.final, c.critico, c.minimo))
		})
	}
}

func TestDefinirLimiares(t *testing.T) {
	ctx := context.Background()
	env := newStockAtualEnv(t)
	env.receber(30)

	require.NoError(t, env.svc.DefinirStockCritico(ctx, env.material.ID, intPtr(40)))
	resp, err := env.svc.Recalcular(ctx, env.material.ID)
	require.NoError(t, err)
	assert.Equal(t, service.EstadoCritico, resp.Estado)

	require.NoError(t, env.svc.DefinirStockCritico(ctx, env.material.ID, intPtr(10)))
	require.NoError(t, env.svc.DefinirStockMinimo(ctx, env.material.ID, intPtr(25)))
	resp, err = env.svc.Recalcular(ctx, env.material.ID)
	require.NoError(t, err)
	assert.Equal(t, service.EstadoOK, resp.Estado)

	require.NoError(t, env.svc.DefinirStockCorrect(ctx, env.material.ID, intPtr(8)))
	resp, err = env.svc.Recalcular(ctx, env.material.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, resp.StockFinal)
	assert.Equal(t, service.EstadoCritico, resp.Estado)

	t.Run("material desconhecido", func(t *testing.T) {
		err := env.svc.DefinirStockMinimo(ctx, uuid.New(), intPtr(5))
		var persist *service.ErroPersistencia
		assert.ErrorAs(t, err, &persist)
	})
}

package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockEnv struct {
	svc          service.StockService
	materialRepo *stubMaterialRepo
	stockRepo    *stubStockRepo
	invalidator  *spyInvalidator
	materialID   uuid.UUID
}

func newStockEnv(t *testing.T) *stockEnv {
	t.Helper()
	material := novoMaterial("Cartão Microcanelado", "CM-E-1.5MM", 0.82)
	materialRepo := newStubMaterialRepo(material)
	stockRepo := &stubStockRepo{}
	invalidator := &spyInvalidator{}
	return &stockEnv{
		svc:          service.NewStockService(stockRepo, materialRepo, invalidator),
		materialRepo: materialRepo,
		stockRepo:    stockRepo,
		invalidator:  invalidator,
		materialID:   material.ID,
	}
}

func TestCriarEntrada(t *testing.T) {
	ctx := context.Background()

	t.Run("aplica os valores por omissão do catálogo", func(t *testing.T) {
		env := newStockEnv(t)
		resp, err := env.svc.CriarEntrada(ctx, dto.CriarStockRequest{
			MaterialID: env.materialID.String(),
			Quantidade: 500,
			SizeX:      intPtr(1000),
			SizeY:      intPtr(2000),
		})
		require.NoError(t, err)

		assert.Equal(t, 500, resp.QuantidadeDisponivel)
		assert.True(t, resp.PrecoUnitario.Equal(decimal.NewFromFloat(0.82)))
		assert.True(t, resp.ValorTotal.Equal(decimal.NewFromFloat(410)))
		// 1000×2000 mm = 2 m² → 0.82 / 2
		require.NotNil(t, resp.VlM2)
		assert.True(t, resp.VlM2.Equal(decimal.NewFromFloat(0.41)))

		assert.Equal(t, []uuid.UUID{env.materialID}, env.invalidator.invalidados)
	})

	t.Run("preço e total explícitos prevalecem", func(t *testing.T) {
		env := newStockEnv(t)
		resp, err := env.svc.CriarEntrada(ctx, dto.CriarStockRequest{
			MaterialID:    env.materialID.String(),
			Quantidade:    100,
			PrecoUnitario: decPtr(1.2),
			ValorTotal:    decPtr(115),
		})
		require.NoError(t, err)
		assert.True(t, resp.PrecoUnitario.Equal(decimal.NewFromFloat(1.2)))
		assert.True(t, resp.ValorTotal.Equal(decimal.NewFromInt(115)))
	})

	t.Run("quantidade não positiva é rejeitada", func(t *testing.T) {
		env := newStockEnv(t)
		_, err := env.svc.CriarEntrada(ctx, dto.CriarStockRequest{
			MaterialID: env.materialID.String(),
			Quantidade: 0,
		})
		var validacao *service.ErroValidacao
		require.ErrorAs(t, err, &validacao)
		assert.Equal(t, "quantidade", validacao.Campo)
	})

	t.Run("material desconhecido é rejeitado", func(t *testing.T) {
		env := newStockEnv(t)
		_, err := env.svc.CriarEntrada(ctx, dto.CriarStockRequest{
			MaterialID: uuid.NewString(),
			Quantidade: 10,
		})
		var validacao *service.ErroValidacao
		require.ErrorAs(t, err, &validacao)
		assert.Equal(t, "material_id", validacao.Campo)
	})
}

func TestAtualizarStock(t *testing.T) {
	ctx := context.Background()

	criar := func(t *testing.T, env *stockEnv) uuid.UUID {
		t.Helper()
		resp, err := env.svc.CriarEntrada(ctx, dto.CriarStockRequest{
			MaterialID:    env.materialID.String(),
			Quantidade:    100,
			PrecoUnitario: decPtr(2),
		})
		require.NoError(t, err)
		id, err := uuid.Parse(resp.ID)
		require.NoError(t, err)
		return id
	}

	t.Run("alterar a quantidade recalcula o total", func(t *testing.T) {
		env := newStockEnv(t)
		id := criar(t, env)

		resp, err := env.svc.Atualizar(ctx, id, dto.AtualizarStockRequest{Quantidade: intPtr(150)})
		require.NoError(t, err)
		assert.True(t, resp.ValorTotal.Equal(decimal.NewFromInt(300)))
	})

	t.Run("editar o total deriva o preço unitário", func(t *testing.T) {
		env := newStockEnv(t)
		id := criar(t, env)

		resp, err := env.svc.Atualizar(ctx, id, dto.AtualizarStockRequest{ValorTotal: decPtr(250)})
		require.NoError(t, err)
		assert.True(t, resp.PrecoUnitario.Equal(decimal.NewFromFloat(2.5)))
		assert.True(t, resp.ValorTotal.Equal(decimal.NewFromInt(250)))
	})

	t.Run("preço e total em simultâneo mantêm o preço", func(t *testing.T) {
		env := newStockEnv(t)
		id := criar(t, env)

		resp, err := env.svc.Atualizar(ctx, id, dto.AtualizarStockRequest{
			PrecoUnitario: decPtr(3),
			ValorTotal:    decPtr(999),
		})
		require.NoError(t, err)
		assert.True(t, resp.PrecoUnitario.Equal(decimal.NewFromInt(3)))
		assert.True(t, resp.ValorTotal.Equal(decimal.NewFromInt(300)))
	})
}

func TestEliminarStock(t *testing.T) {
	ctx := context.Background()
	env := newStockEnv(t)
	resp, err := env.svc.CriarEntrada(ctx, dto.CriarStockRequest{
		MaterialID: env.materialID.String(),
		Quantidade: 100,
		NPalet:     strPtr("P1, P2"),
	})
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.Eliminar(ctx, id))
	assert.Empty(t, env.stockRepo.stocks)
	// invalidação na criação e na eliminação
	assert.Len(t, env.invalidator.invalidados, 2)
}

func TestAplicarCorrecao(t *testing.T) {
	ctx := context.Background()

	t.Run("delta positivo cria ajuste disponível", func(t *testing.T) {
		env := newStockEnv(t)
		resp, err := env.svc.AplicarCorrecao(ctx, env.materialID, 40)
		require.NoError(t, err)

		assert.Equal(t, 40, resp.Quantidade)
		assert.Equal(t, 40, resp.QuantidadeDisponivel)
		require.NotNil(t, resp.Notas)
		assert.True(t, strings.HasPrefix(*resp.Notas, "AJUSTE MANUAL - Correção aplicada em "))

		// a correção pendente é limpa na mesma operação
		material, err := env.materialRepo.FindByID(ctx, env.materialID)
		require.NoError(t, err)
		assert.Nil(t, material.StockCorrect)
	})

	t.Run("delta negativo nunca deixa disponível negativo", func(t *testing.T) {
		env := newStockEnv(t)
		resp, err := env.svc.AplicarCorrecao(ctx, env.materialID, -60)
		require.NoError(t, err)
		assert.Equal(t, -60, resp.Quantidade)
		assert.Zero(t, resp.QuantidadeDisponivel)
	})

	t.Run("delta zero não cria nada", func(t *testing.T) {
		env := newStockEnv(t)
		_, err := env.svc.AplicarCorrecao(ctx, env.materialID, 0)
		var validacao *service.ErroValidacao
		require.ErrorAs(t, err, &validacao)
		assert.Equal(t, "delta", validacao.Campo)
		assert.Empty(t, env.stockRepo.stocks)
	})
}

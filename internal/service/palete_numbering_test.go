package service_test

import (
	"testing"

	"github.com/Imacx-maria/app-imacx-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGerarPaletesSequencial(t *testing.T) {
	t.Run("base e sufixos seguintes", func(t *testing.T) {
		numeros, err := service.GerarPaletesSequencial("P100", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"P100", "P101", "P102"}, numeros)
	})

	t.Run("um único número devolve apenas a base", func(t *testing.T) {
		numeros, err := service.GerarPaletesSequencial("P7", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"P7"}, numeros)
	})

	t.Run("preserva o caso do prefixo", func(t *testing.T) {
		numeros, err := service.GerarPaletesSequencial("p07", 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"p7", "p8"}, numeros)
	})

	t.Run("base sem o prefixo P é rejeitada", func(t *testing.T) {
		for _, base := range []string{"100", "a07", "X5"} {
			_, err := service.GerarPaletesSequencial(base, 2)
			var formato *service.ErroFormatoPalete
			require.ErrorAs(t, err, &formato, base)
		}
	})

	t.Run("contagem zero ou negativa é rejeitada", func(t *testing.T) {
		for _, count := range []int{0, -3} {
			_, err := service.GerarPaletesSequencial("P10", count)
			var formato *service.ErroFormatoPalete
			require.ErrorAs(t, err, &formato)
		}
	})
}

func TestParseListaPaletes(t *testing.T) {
	t.Run("separa, apara e preserva o caso", func(t *testing.T) {
		numeros, err := service.ParseListaPaletes("P10, p11 , P012")
		require.NoError(t, err)
		assert.Equal(t, []string{"P10", "p11", "P012"}, numeros)
	})

	t.Run("tokens vazios são ignorados", func(t *testing.T) {
		numeros, err := service.ParseListaPaletes("P1,,P2,")
		require.NoError(t, err)
		assert.Equal(t, []string{"P1", "P2"}, numeros)
	})

	t.Run("token inválido rejeita a lista inteira e é nomeado", func(t *testing.T) {
		_, err := service.ParseListaPaletes("P10, X5")
		var formato *service.ErroFormatoPalete
		require.ErrorAs(t, err, &formato)
		assert.Equal(t, []string{"X5"}, formato.Tokens)
		assert.Contains(t, formato.Error(), "X5")
	})

	t.Run("lista só com vírgulas é rejeitada", func(t *testing.T) {
		_, err := service.ParseListaPaletes(" , ,")
		var formato *service.ErroFormatoPalete
		require.ErrorAs(t, err, &formato)
	})
}

func TestResolverPaletes(t *testing.T) {
	t.Run("vírgula significa lista explícita", func(t *testing.T) {
		numeros, err := service.ResolverPaletes("P1, P5", 3)
		require.NoError(t, err)
		// numPaletes is ignored for explicit lists
		assert.Equal(t, []string{"P1", "P5"}, numeros)
	})

	t.Run("sem vírgula gera sequencialmente", func(t *testing.T) {
		numeros, err := service.ResolverPaletes("P5", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"P5", "P6", "P7"}, numeros)
	})
}

func TestProximoNumeroPalete(t *testing.T) {
	assert.Equal(t, "P1", service.ProximoNumeroPalete(nil))
	assert.Equal(t, "P132", service.ProximoNumeroPalete([]string{"P131", "P12", "p9"}))
	// non-P prefixes and malformed values do not participate
	assert.Equal(t, "P4", service.ProximoNumeroPalete([]string{"A900", "P3", "Pxx"}))
}

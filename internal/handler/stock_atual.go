package handler

import (
	"context"
	"net/http"

	"github.com/Imacx-maria/app-imacx-sub000/internal/apierror"
	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockAtualHandler exposes the current-stock projection and the per-material
// threshold / correction management.
type StockAtualHandler struct {
	atual service.StockAtualService
	stock service.StockService
}

func NewStockAtualHandler(atual service.StockAtualService, stock service.StockService) *StockAtualHandler {
	return &StockAtualHandler{atual: atual, stock: stock}
}

func (h *StockAtualHandler) ListarTodos(c *gin.Context) {
	resp, err := h.atual.RecalcularTodos(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockAtualHandler) Obter(c *gin.Context) {
	materialID, ok := parseMaterialIDParam(c)
	if !ok {
		return
	}
	resp, err := h.atual.Recalcular(c.Request.Context(), materialID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockAtualHandler) DefinirMinimo(c *gin.Context) {
	h.definir(c, h.atual.DefinirStockMinimo)
}

func (h *StockAtualHandler) DefinirCritico(c *gin.Context) {
	h.definir(c, h.atual.DefinirStockCritico)
}

func (h *StockAtualHandler) DefinirCorrecao(c *gin.Context) {
	h.definir(c, h.atual.DefinirStockCorrect)
}

// AplicarCorrecao converts the pending manual override into a synthetic
// ledger adjustment and resets the override.
func (h *StockAtualHandler) AplicarCorrecao(c *gin.Context) {
	materialID, ok := parseMaterialIDParam(c)
	if !ok {
		return
	}
	var req dto.AplicarCorrecaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.stock.AplicarCorrecao(c.Request.Context(), materialID, req.Delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StockAtualHandler) definir(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, valor *int) error) {
	materialID, ok := parseMaterialIDParam(c)
	if !ok {
		return
	}
	var req dto.DefinirValorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := fn(c.Request.Context(), materialID, req.Valor); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseMaterialIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de material inválido"))
		return uuid.Nil, false
	}
	return id, true
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/Imacx-maria/app-imacx-sub000/internal/apierror"
	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// EntradasHandler exposes the draft-batch intake flow.
type EntradasHandler struct {
	entrada   service.EntradaService
	encomenda service.EncomendaService
}

func NewEntradasHandler(entrada service.EntradaService, encomenda service.EncomendaService) *EntradasHandler {
	return &EntradasHandler{entrada: entrada, encomenda: encomenda}
}

func (h *EntradasHandler) CriarBatch(c *gin.Context) {
	resp, err := h.entrada.CriarBatch(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EntradasHandler) ObterBatch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.entrada.ObterBatch(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EntradasHandler) NovaLinha(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.entrada.NovaLinha(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EntradasHandler) AtualizarLinha(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	indice, ok := parseIndiceParam(c)
	if !ok {
		return
	}
	var req dto.AtualizarLinhaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.entrada.AtualizarLinha(c.Request.Context(), id, indice, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EntradasHandler) RemoverLinha(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	indice, ok := parseIndiceParam(c)
	if !ok {
		return
	}
	resp, err := h.entrada.RemoverLinha(c.Request.Context(), id, indice)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EntradasHandler) GuardarLinha(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	indice, ok := parseIndiceParam(c)
	if !ok {
		return
	}
	resp, err := h.entrada.GuardarLinha(c.Request.Context(), id, indice)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GuardarTudo always answers 200 — per-row failures travel in the summary,
// not in the status code.
func (h *EntradasHandler) GuardarTudo(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.entrada.GuardarTudo(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EntradasHandler) ImportarNE(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ImportarNERequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.encomenda.ImportarNE(c.Request.Context(), id, req.NE)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseIndiceParam(c *gin.Context) (int, bool) {
	indice, err := strconv.Atoi(c.Param("idx"))
	if err != nil || indice < 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Índice de linha inválido"))
		return 0, false
	}
	return indice, true
}

package handler

import (
	"net/http"

	"github.com/Imacx-maria/app-imacx-sub000/internal/apierror"
	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"
	"github.com/Imacx-maria/app-imacx-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// PaletesHandler exposes pallet records independently of the intake flow.
type PaletesHandler struct{ svc service.PaleteService }

func NewPaletesHandler(svc service.PaleteService) *PaletesHandler {
	return &PaletesHandler{svc: svc}
}

func (h *PaletesHandler) Criar(c *gin.Context) {
	var req dto.CriarPaleteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PaletesHandler) Listar(c *gin.Context) {
	var filter dto.PaleteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaletesHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.AtualizarPaleteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaletesHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PaletesHandler) ProximoNumero(c *gin.Context) {
	numero, err := h.svc.ProximoNumero(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProximoNumeroResponse{NoPalete: numero})
}

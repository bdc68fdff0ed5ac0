package handler

import (
	"net/http"

	"github.com/Imacx-maria/app-imacx-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler serves the read-only material and supplier lookups.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

func (h *CatalogoHandler) ListarMateriais(c *gin.Context) {
	resp, err := h.svc.ListarMateriais(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) ListarFornecedores(c *gin.Context) {
	resp, err := h.svc.ListarFornecedores(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

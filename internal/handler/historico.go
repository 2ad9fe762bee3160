package handler

import (
	"net/http"

	"estapark/internal/dto"
	"estapark/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoricoHandler struct{ svc service.PatioService }

func NewHistoricoHandler(svc service.PatioService) *HistoricoHandler {
	return &HistoricoHandler{svc: svc}
}

// List godoc
// @Summary Histórico de movimentações com filtros de data e tipo
// @Tags historico
// @Produce json
// @Security TokenAuth
// @Param dia query int false "Dia (1–31)"
// @Param mes query int false "Mês (1–12)"
// @Param ano query int false "Ano"
// @Param tipo query string false "avulso | mensalista | diarista"
// @Success 200 {array} dto.HistoricoItem
// @Router /v1/historico [get]
func (h *HistoricoHandler) List(c *gin.Context) {
	var filter dto.HistoricoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Historico(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorPlaca godoc
// @Summary Todas as passagens de uma placa
// @Tags historico
// @Produce json
// @Security TokenAuth
// @Param placa path string true "Placa"
// @Success 200 {array} dto.HistoricoItem
// @Failure 400 {object} apierror.APIError
// @Router /v1/historico/{placa} [get]
func (h *HistoricoHandler) PorPlaca(c *gin.Context) {
	resp, err := h.svc.HistoricoPorPlaca(c.Request.Context(), c.Param("placa"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumo godoc
// @Summary Resumo agregado das movimentações
// @Tags historico
// @Produce json
// @Security TokenAuth
// @Param tipo query string false "avulso | mensalista | diarista"
// @Success 200 {object} dto.ResumoRelatorio
// @Router /v1/relatorio/resumo [get]
func (h *HistoricoHandler) Resumo(c *gin.Context) {
	resp, err := h.svc.Resumo(c.Request.Context(), c.Query("tipo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

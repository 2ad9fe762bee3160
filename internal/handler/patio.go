package handler

import (
	"net/http"

	"estapark/internal/dto"
	"estapark/internal/service"

	"github.com/gin-gonic/gin"
)

type PatioHandler struct{ svc service.PatioService }

func NewPatioHandler(svc service.PatioService) *PatioHandler { return &PatioHandler{svc: svc} }

// Entrada godoc
// @Summary Registra a entrada de um veículo
// @Tags patio
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.EntradaRequest true "Dados da entrada"
// @Success 201 {object} dto.EntradaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/patio/entrada [post]
func (h *PatioHandler) Entrada(c *gin.Context) {
	var req dto.EntradaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CheckIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Saida godoc
// @Summary Registra a saída e cobra a permanência
// @Tags patio
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.SaidaRequest true "Identificação e pagamento"
// @Success 200 {object} dto.SaidaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/patio/saida [post]
func (h *PatioHandler) Saida(c *gin.Context) {
	var req dto.SaidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CheckOut(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAtivas godoc
// @Summary Lista os veículos no pátio com tempo e valor correntes
// @Tags patio
// @Produce json
// @Security TokenAuth
// @Success 200 {array} dto.SessaoAtivaResponse
// @Router /v1/patio [get]
func (h *PatioHandler) ListAtivas(c *gin.Context) {
	resp, err := h.svc.ListAtivas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarAtiva godoc
// @Summary Busca uma sessão ativa por ticket ou placa
// @Tags patio
// @Produce json
// @Security TokenAuth
// @Param ticket_id query string false "Ticket"
// @Param placa query string false "Placa"
// @Success 200 {object} dto.SessaoAtivaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/patio/ativo [get]
func (h *PatioHandler) BuscarAtiva(c *gin.Context) {
	resp, err := h.svc.BuscarAtiva(c.Request.Context(), c.Query("placa"), c.Query("ticket_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary Ocupação atual do pátio
// @Tags patio
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/patio/dashboard [get]
func (h *PatioHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"estapark/internal/apierror"
	"estapark/internal/dto"
	"estapark/internal/infra"
	"estapark/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Dashboard godoc
// @Summary Totais do caixa de um dia, direto do livro de movimentos
// @Tags caixa
// @Produce json
// @Security TokenAuth
// @Param data query string false "Data de referência (2006-01-02, padrão hoje)"
// @Success 200 {object} dto.CaixaDashboardResponse
// @Router /v1/caixa/dashboard [get]
func (h *CaixaHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context(), c.Query("data"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Relatorio godoc
// @Summary Agregado por dia e forma de pagamento em um período
// @Tags caixa
// @Produce json
// @Security TokenAuth
// @Param inicio query string false "Data inicial (padrão fim − 30 dias)"
// @Param fim query string false "Data final (padrão hoje)"
// @Success 200 {array} dto.RelatorioCaixaItem
// @Router /v1/caixa/relatorio [get]
func (h *CaixaHandler) Relatorio(c *gin.Context) {
	resp, err := h.svc.Relatorio(c.Request.Context(), c.Query("inicio"), c.Query("fim"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Fechar godoc
// @Summary Fecha o caixa do dia
// @Tags caixa
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.FechamentoRequest true "Data e observação"
// @Success 201 {object} dto.FechamentoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/fechamento [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	var req dto.FechamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListFechamentos godoc
// @Summary Lista os fechamentos mais recentes
// @Tags caixa
// @Produce json
// @Security TokenAuth
// @Param limit query int false "Máximo de linhas (padrão 90)"
// @Success 200 {array} dto.FechamentoResponse
// @Router /v1/caixa/fechamentos [get]
func (h *CaixaHandler) ListFechamentos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "90"))
	resp, err := h.svc.ListFechamentos(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FechamentoPDF godoc
// @Summary Baixa o fechamento em PDF
// @Tags caixa
// @Produce application/pdf
// @Security TokenAuth
// @Param id path string true "ID do fechamento"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixa/fechamentos/{id}/pdf [get]
func (h *CaixaHandler) FechamentoPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	fechamento, err := h.svc.FechamentoPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("fechamento não encontrado"))
		return
	}
	data, err := infra.GerarFechamentoPDF(fechamento)
	if err != nil {
		respondError(c, err)
		return
	}
	nome := fmt.Sprintf("fechamento_%s.pdf", fechamento.DataRef.Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+nome+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// AbrirTurno godoc
// @Summary Abre um turno de caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.TurnoRequest true "Observação opcional"
// @Success 201 {object} dto.TurnoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/turnos [post]
func (h *CaixaHandler) AbrirTurno(c *gin.Context) {
	var req dto.TurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AbrirTurno(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// FecharTurno godoc
// @Summary Fecha o turno aberto
// @Tags caixa
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.FecharTurnoRequest true "Turno e observação"
// @Success 200 {object} dto.TurnoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/turnos/fechar [post]
func (h *CaixaHandler) FecharTurno(c *gin.Context) {
	var req dto.FecharTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.FecharTurno(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TurnoAtual godoc
// @Summary Turno aberto no momento
// @Tags caixa
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.TurnoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixa/turnos/atual [get]
func (h *CaixaHandler) TurnoAtual(c *gin.Context) {
	resp, err := h.svc.TurnoAtual(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

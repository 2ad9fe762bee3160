package handler

import (
	"net/http"

	"estapark/internal/apierror"
	"estapark/internal/dto"
	"estapark/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MensalistaHandler struct{ svc service.MensalistaService }

func NewMensalistaHandler(svc service.MensalistaService) *MensalistaHandler {
	return &MensalistaHandler{svc: svc}
}

// Upsert godoc
// @Summary Cadastra ou atualiza um mensalista pela placa
// @Tags mensalistas
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.MensalistaRequest true "Dados do mensalista"
// @Success 200 {object} dto.MensalistaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/mensalistas [post]
func (h *MensalistaHandler) Upsert(c *gin.Context) {
	var req dto.MensalistaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary Lista os mensalistas com situação de vencimento
// @Tags mensalistas
// @Produce json
// @Security TokenAuth
// @Success 200 {array} dto.MensalistaResponse
// @Router /v1/mensalistas [get]
func (h *MensalistaHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarPagamento godoc
// @Summary Registra o pagamento de mensalidade e estende o vencimento
// @Tags mensalistas
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.PagamentoMensalistaRequest true "Meses e pagamento"
// @Success 200 {object} dto.PagamentoMensalistaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/mensalistas/pagamento [post]
func (h *MensalistaHandler) RegistrarPagamento(c *gin.Context) {
	var req dto.PagamentoMensalistaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPagamento(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetAtivo godoc
// @Summary Ativa ou desativa um mensalista
// @Tags mensalistas
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path string true "ID do mensalista"
// @Param body body dto.AtivoRequest true "Novo estado"
// @Success 200 {object} dto.MensalistaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/mensalistas/{id}/ativo [patch]
func (h *MensalistaHandler) SetAtivo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetAtivo(c.Request.Context(), id, req.Ativo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EnviarLembretes godoc
// @Summary Enfileira lembretes de vencimento para os mensalistas em atraso
// @Tags mensalistas
// @Produce json
// @Security TokenAuth
// @Success 202 {object} dto.LembretesResponse
// @Router /v1/mensalistas/lembretes [post]
func (h *MensalistaHandler) EnviarLembretes(c *gin.Context) {
	n, err := h.svc.EnfileirarLembretes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.LembretesResponse{Enfileirados: n})
}

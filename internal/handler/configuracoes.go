package handler

import (
	"net/http"

	"estapark/internal/dto"
	"estapark/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct{ svc service.ConfigService }

func NewConfigHandler(svc service.ConfigService) *ConfigHandler { return &ConfigHandler{svc: svc} }

// Get godoc
// @Summary Valores atuais de tarifas e lotação
// @Tags configuracoes
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.ConfiguracoesResponse
// @Router /v1/configuracoes [get]
func (h *ConfigHandler) Get(c *gin.Context) {
	valores, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ConfiguracoesResponse{Success: true, Dados: valores})
}

// Atualizar godoc
// @Summary Atualiza tarifas e lotação
// @Tags configuracoes
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.ConfiguracoesRequest true "Novos valores"
// @Success 200 {object} dto.ConfiguracoesResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/configuracoes [put]
func (h *ConfigHandler) Atualizar(c *gin.Context) {
	var req dto.ConfiguracoesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	valores, err := h.svc.Atualizar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ConfiguracoesResponse{Success: true, Dados: valores})
}
